package api

import (
	"net/http"
	"testing"
	"time"

	"budget/config"
	"budget/repository"
	"budget/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*service.RecordService, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	svc := service.NewRecordService(repository.NewGormStore(gormDB), service.Options{})
	return svc, mock, func() { sqlDB.Close() }
}

func TestExpenseHandler_List_Gorm(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT \\* FROM `expenses` WHERE user_id = \\?").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "category", "name", "description", "icon_key", "created_at"}).
			AddRow(1, "alice", 54.99, "Groceries", "", "", "wallet", time.Now()))

	router := expenseRouter(svc, "alice", false)
	code, resp := doJSON(t, router, "GET", "/expenses", "")
	assert.Equal(t, 200, code)
	assert.Len(t, resp["data"], 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_GormInsert(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	router := expenseRouter(svc, "alice", false)
	code, resp := doJSON(t, router, "POST", "/expenses", `{"amount":12.5,"category":"Bill"}`)
	assert.Equal(t, 200, code)
	assert.Equal(t, float64(5), resp["data"].(map[string]interface{})["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_List_DBErrorHiddenInRelease(t *testing.T) {
	svc, mock, cleanup := setupMockDB(t)
	defer cleanup()

	config.GlobalConfig = &config.Config{Server: config.ServerConfig{Mode: "release"}}
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT \\* FROM `expenses`").
		WillReturnError(assert.AnError)

	router := expenseRouter(svc, "alice", false)
	code, resp := doJSON(t, router, "GET", "/expenses", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "查询失败", resp["message"])
}
