package repository

import (
	"context"
	"errors"
	"fmt"

	"budget/models"

	"gorm.io/gorm"
)

// GormStore 基于 gorm 的存储实现
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建 gorm 存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Expenses() Table[models.Expense] {
	return gormTable[models.Expense]{db: s.db}
}

func (s *GormStore) Savings() Table[models.Saving] {
	return gormTable[models.Saving]{db: s.db}
}

func (s *GormStore) Investments() Table[models.Investment] {
	return gormTable[models.Investment]{db: s.db}
}

func (s *GormStore) Goals() GoalTable {
	return gormGoalTable{gormTable[models.SavingsGoal]{db: s.db}}
}

type gormTable[T any] struct {
	db *gorm.DB
}

func (t gormTable[T]) ListByOwner(ctx context.Context, userID string) ([]T, error) {
	list := make([]T, 0)
	err := t.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("查询记录失败: %w", err)
	}
	return list, nil
}

func (t gormTable[T]) Insert(ctx context.Context, rec *T) error {
	if err := t.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("创建记录失败: %w", err)
	}
	return nil
}

func (t gormTable[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var rec T
	err := t.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询记录失败: %w", err)
	}
	return &rec, nil
}

func (t gormTable[T]) DeleteByID(ctx context.Context, id uint) error {
	var rec T
	if err := t.db.WithContext(ctx).Where("id = ?", id).Delete(&rec).Error; err != nil {
		return fmt.Errorf("删除记录失败: %w", err)
	}
	return nil
}

type gormGoalTable struct {
	gormTable[models.SavingsGoal]
}

func (t gormGoalTable) AddMonthlyIncrement(ctx context.Context, id uint, capAtTarget bool) error {
	expr := gorm.Expr("current_amount + monthly_increment")
	if capAtTarget {
		expr = gorm.Expr("LEAST(current_amount + monthly_increment, target_amount)")
	}
	err := t.db.WithContext(ctx).
		Model(&models.SavingsGoal{}).
		Where("id = ?", id).
		Update("current_amount", expr).Error
	if err != nil {
		return fmt.Errorf("更新目标进度失败: %w", err)
	}
	return nil
}
