package repository

import (
	"context"
	"testing"
	"time"

	"budget/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewGormStore(gormDB), mock
}

func TestGormTable_ListByOwner(t *testing.T) {
	store, mock := setupMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT \\* FROM `expenses` WHERE user_id = \\? ORDER BY created_at DESC, id DESC").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "category", "name", "description", "icon_key", "created_at"}).
			AddRow(2, "user-1", 15.5, "Transport", "", "Bus pass", "bus", now).
			AddRow(1, "user-1", 54.99, "Groceries", "", "Supermarket run", "shopping-bag", now.Add(-time.Hour)))

	list, err := store.Expenses().ListByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint(2), list[0].ID)
	assert.Equal(t, 54.99, list[1].Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTable_ListByOwner_Empty(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `savings`").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	list, err := store.Savings().ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTable_Insert(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `investments`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	inv := &models.Investment{
		UserID:     "user-1",
		Amount:     1000,
		Instrument: "ETF - VOO",
		IconKey:    "line-chart",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.Investments().Insert(context.Background(), inv))
	assert.Equal(t, uint(7), inv.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTable_GetByID_NotFound(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `savings_goals` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	goal, err := store.Goals().GetByID(context.Background(), 99)
	assert.Nil(t, goal)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTable_DeleteByID(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `expenses` WHERE id = \\?").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Expenses().DeleteByID(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormGoalTable_AddMonthlyIncrement(t *testing.T) {
	store, mock := setupMockStore(t)

	// 单条 UPDATE 语句完成递增，不存在读改写
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `savings_goals` SET `current_amount`=current_amount \\+ monthly_increment WHERE id = \\?").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Goals().AddMonthlyIncrement(context.Background(), 5, false))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormGoalTable_AddMonthlyIncrement_Capped(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `savings_goals` SET `current_amount`=LEAST\\(current_amount \\+ monthly_increment, target_amount\\)").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Goals().AddMonthlyIncrement(context.Background(), 5, true))
	require.NoError(t, mock.ExpectationsWereMet())
}
