package api

import (
	"context"
	"testing"

	"budget/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedRecords 为用户写入一组示例记录
func seedRecords(t *testing.T, svc *service.RecordService, userID string) {
	t.Helper()
	ctx := context.Background()
	for _, in := range []service.ExpenseInput{
		{Amount: 54.99, Category: "Groceries"},
		{Amount: 120, Category: "Utilities", Name: "Hydro"},
		{Amount: 10.01, Category: "Groceries"},
	} {
		_, res, err := svc.AddExpense(ctx, userID, in)
		require.NoError(t, err)
		require.False(t, res.Skipped)
	}
	_, _, err := svc.AddSaving(ctx, userID, service.SavingInput{Amount: 500, Note: "Emergency fund"})
	require.NoError(t, err)
	_, _, err = svc.AddSaving(ctx, userID, service.SavingInput{Amount: 250})
	require.NoError(t, err)
	_, _, err = svc.AddInvestment(ctx, userID, service.InvestmentInput{Amount: 1000, Instrument: "ETF - VOO"})
	require.NoError(t, err)
	_, _, err = svc.AddGoal(ctx, userID, service.GoalInput{Name: "Trip", TargetAmount: 100, MonthlyIncrement: 10})
	require.NoError(t, err)
}

func TestDashboardHandler_Get(t *testing.T) {
	svc := newTestService()
	seedRecords(t, svc, "alice")
	seedRecords(t, svc, "bob")

	h := NewDashboardHandler(svc, nil)
	router := gin.New()
	router.Use(setUserMiddleware("alice", ""))
	router.GET("/dashboard", h.Get)

	code, resp := doJSON(t, router, "GET", "/dashboard?category=Groceries", "")
	require.Equal(t, 200, code)
	data := resp["data"].(map[string]interface{})

	totals := data["totals"].(map[string]interface{})
	assert.Equal(t, 185.0, totals["expenses"])
	assert.Equal(t, 750.0, totals["savings"])
	assert.Equal(t, 1000.0, totals["investments"])

	byCategory := data["by_category"].([]interface{})
	require.Len(t, byCategory, 2)
	assert.Equal(t, 65.0, byCategory[0].(map[string]interface{})["amount"])

	assert.Equal(t, "Groceries", data["category"])
	assert.Len(t, data["by_month_for_category"], 1)
	assert.Len(t, data["goals"], 1)

	savings := data["savings_breakdown"].([]interface{})
	require.Len(t, savings, 2)
	labels := []interface{}{savings[0].(map[string]interface{})["label"], savings[1].(map[string]interface{})["label"]}
	assert.ElementsMatch(t, []interface{}{"Emergency fund", "Saving"}, labels)
}

func TestDashboardHandler_Empty(t *testing.T) {
	h := NewDashboardHandler(newTestService(), nil)
	router := gin.New()
	router.Use(setUserMiddleware("nobody", ""))
	router.GET("/dashboard", h.Get)

	code, resp := doJSON(t, router, "GET", "/dashboard", "")
	require.Equal(t, 200, code)
	data := resp["data"].(map[string]interface{})
	assert.Empty(t, data["by_category"])
	assert.Empty(t, data["goals"])
	assert.NotContains(t, data, "by_month_for_category")
}
