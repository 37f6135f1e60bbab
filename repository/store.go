// Package repository 记录存储层：按用户归属的支出、储蓄、投资和储蓄目标
package repository

import (
	"context"
	"errors"

	"budget/models"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// Table 单一类型记录的存储操作
type Table[T any] interface {
	// ListByOwner 按创建时间倒序返回用户的全部记录
	ListByOwner(ctx context.Context, userID string) ([]T, error)
	// Insert 插入记录，回填 ID
	Insert(ctx context.Context, rec *T) error
	// GetByID 不存在时返回 ErrNotFound
	GetByID(ctx context.Context, id uint) (*T, error)
	DeleteByID(ctx context.Context, id uint) error
}

// GoalTable 储蓄目标存储，额外支持原子递增
type GoalTable interface {
	Table[models.SavingsGoal]
	// AddMonthlyIncrement 原子地执行 current_amount += monthly_increment，
	// capAtTarget 为 true 时结果不超过 target_amount
	AddMonthlyIncrement(ctx context.Context, id uint, capAtTarget bool) error
}

// Store 记录存储
type Store interface {
	Expenses() Table[models.Expense]
	Savings() Table[models.Saving]
	Investments() Table[models.Investment]
	Goals() GoalTable
}
