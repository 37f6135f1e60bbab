package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"budget/models"
	"budget/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedIcons int

func (f fixedIcons) IntN(n int) int { return int(f) % n }

func newTestService(capGoals bool) (*RecordService, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	clock := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	svc := NewRecordService(store, Options{
		CapGoalsAtTarget: capGoals,
		Icons:            fixedIcons(1),
		Now: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			clock = clock.Add(time.Minute)
			return clock
		},
	})
	return svc, store
}

func TestAddExpense_ThenList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)

	exp, res, err := svc.AddExpense(ctx, "alice", ExpenseInput{Amount: 54.99, Category: " Groceries ", Description: "Supermarket run"})
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	require.NotNil(t, exp)
	assert.NotZero(t, exp.ID)
	assert.Equal(t, "Groceries", exp.Category)
	assert.Equal(t, "bolt", exp.IconKey)
	assert.False(t, exp.CreatedAt.IsZero())

	list, err := svc.ListExpenses(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 54.99, list[0].Amount)
	assert.Equal(t, "alice", list[0].UserID)

	// 其他用户看不到
	other, err := svc.ListExpenses(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAddExpense_DefaultCategory(t *testing.T) {
	svc, _ := newTestService(false)
	exp, _, err := svc.AddExpense(context.Background(), "alice", ExpenseInput{Amount: 3})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, exp.Category)
}

func TestAddExpense_InvalidAmountIsSkipped(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		exp, res, err := svc.AddExpense(ctx, "alice", ExpenseInput{Amount: amount, Category: "Bill"})
		require.NoError(t, err)
		assert.Nil(t, exp)
		assert.True(t, res.Skipped)
		assert.Equal(t, ReasonInvalidAmount, res.Reason)
		assert.True(t, res.IsValidation())
	}

	list, err := svc.ListExpenses(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList_OrderedNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)

	for _, amount := range []float64{1, 2, 3} {
		_, _, err := svc.AddSaving(ctx, "alice", SavingInput{Amount: amount})
		require.NoError(t, err)
	}
	list, err := svc.ListSavings(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 3.0, list[0].Amount)
	assert.Equal(t, 1.0, list[2].Amount)
}

func TestUnauthenticated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)

	_, err := svc.ListExpenses(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, _, err = svc.AddSaving(ctx, "", SavingInput{Amount: 5})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.DeleteInvestment(ctx, "", 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, _, err = svc.IncrementGoal(ctx, "", 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.Snapshot(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDelete_OwnershipGuard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)

	exp, _, err := svc.AddExpense(ctx, "alice", ExpenseInput{Amount: 10, Category: "Bill"})
	require.NoError(t, err)

	// 他人删除与删除不存在的记录结果一致
	foreign, err := svc.DeleteExpense(ctx, "bob", exp.ID)
	require.NoError(t, err)
	missing, err := svc.DeleteExpense(ctx, "bob", 9999)
	require.NoError(t, err)
	assert.Equal(t, missing, foreign)
	assert.Equal(t, ReasonNotFoundOrForbidden, foreign.Reason)
	assert.False(t, foreign.IsValidation())

	list, _ := svc.ListExpenses(ctx, "alice")
	assert.Len(t, list, 1)

	res, err := svc.DeleteExpense(ctx, "alice", exp.ID)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	list, _ = svc.ListExpenses(ctx, "alice")
	assert.Empty(t, list)
}

func TestAddInvestment_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)

	_, res, err := svc.AddInvestment(ctx, "alice", InvestmentInput{Amount: 100, Instrument: "   "})
	require.NoError(t, err)
	assert.Equal(t, Skip(ReasonEmptyInstrument), res)

	_, res, err = svc.AddInvestment(ctx, "alice", InvestmentInput{Amount: -1, Instrument: "ETF"})
	require.NoError(t, err)
	assert.Equal(t, Skip(ReasonInvalidAmount), res)

	inv, res, err := svc.AddInvestment(ctx, "alice", InvestmentInput{Amount: 1000, Instrument: " ETF - VOO ", Note: "Monthly DCA"})
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, "ETF - VOO", inv.Instrument)
	assert.Contains(t, models.InvestmentIconKeys, inv.IconKey)

	res, err = svc.DeleteInvestment(ctx, "alice", inv.ID)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
}

func TestAddGoal_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)

	cases := []struct {
		in     GoalInput
		reason SkipReason
	}{
		{GoalInput{Name: " ", TargetAmount: 100, MonthlyIncrement: 10}, ReasonEmptyName},
		{GoalInput{Name: "Trip", TargetAmount: 0, MonthlyIncrement: 10}, ReasonInvalidTarget},
		{GoalInput{Name: "Trip", TargetAmount: 100, MonthlyIncrement: math.NaN()}, ReasonInvalidIncrement},
	}
	for _, tc := range cases {
		goal, res, err := svc.AddGoal(ctx, "alice", tc.in)
		require.NoError(t, err)
		assert.Nil(t, goal)
		assert.Equal(t, tc.reason, res.Reason)
	}

	goal, res, err := svc.AddGoal(ctx, "alice", GoalInput{Name: " Trip ", TargetAmount: 100, MonthlyIncrement: 10})
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, "Trip", goal.Name)
	assert.Equal(t, 0.0, goal.CurrentAmount)
}

func TestIncrementGoal_Uncapped(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)

	goal, _, err := svc.AddGoal(ctx, "alice", GoalInput{Name: "Bike", TargetAmount: 100, MonthlyIncrement: 50})
	require.NoError(t, err)

	var reached []bool
	for i := 0; i < 3; i++ {
		progress, res, err := svc.IncrementGoal(ctx, "alice", goal.ID)
		require.NoError(t, err)
		assert.False(t, res.Skipped)
		reached = append(reached, progress.ReachedTarget)
	}
	assert.Equal(t, []bool{false, true, false}, reached)

	goals, err := svc.ListGoals(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, 150.0, goals[0].CurrentAmount)
}

func TestIncrementGoal_Capped(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(true)

	goal, _, err := svc.AddGoal(ctx, "alice", GoalInput{Name: "Bike", TargetAmount: 120, MonthlyIncrement: 50})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err := svc.IncrementGoal(ctx, "alice", goal.ID)
		require.NoError(t, err)
	}
	progress, res, err := svc.IncrementGoal(ctx, "alice", goal.ID)
	require.NoError(t, err)
	assert.Equal(t, Skip(ReasonGoalAtTarget), res)
	assert.Equal(t, 120.0, progress.Goal.CurrentAmount)
}

func TestIncrementGoal_ForeignOrMissing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)

	goal, _, err := svc.AddGoal(ctx, "alice", GoalInput{Name: "Bike", TargetAmount: 100, MonthlyIncrement: 50})
	require.NoError(t, err)

	progress, res, err := svc.IncrementGoal(ctx, "bob", goal.ID)
	require.NoError(t, err)
	assert.Nil(t, progress)
	assert.Equal(t, Skip(ReasonNotFoundOrForbidden), res)

	goals, _ := svc.ListGoals(ctx, "alice")
	assert.Equal(t, 0.0, goals[0].CurrentAmount)

	_, res, err = svc.IncrementGoal(ctx, "alice", 4242)
	require.NoError(t, err)
	assert.Equal(t, Skip(ReasonNotFoundOrForbidden), res)
}

func TestIncrementGoal_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(false)

	goal, _, err := svc.AddGoal(ctx, "alice", GoalInput{Name: "House", TargetAmount: 1000, MonthlyIncrement: 10})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.IncrementGoal(ctx, "alice", goal.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	goals, _ := svc.ListGoals(ctx, "alice")
	assert.Equal(t, 250.0, goals[0].CurrentAmount)
}

type failingStore struct {
	*repository.MemoryStore
}

type failingTable struct {
	repository.Table[models.Expense]
}

var errStoreDown = errors.New("store unavailable")

func (failingTable) ListByOwner(context.Context, string) ([]models.Expense, error) {
	return nil, errStoreDown
}

func (f failingStore) Expenses() repository.Table[models.Expense] {
	return failingTable{f.MemoryStore.Expenses()}
}

func TestStoreErrorPropagates(t *testing.T) {
	svc := NewRecordService(failingStore{repository.NewMemoryStore()}, Options{})

	_, err := svc.ListExpenses(context.Background(), "alice")
	assert.ErrorIs(t, err, errStoreDown)

	_, err = svc.Snapshot(context.Background(), "alice")
	assert.ErrorIs(t, err, errStoreDown)
}
