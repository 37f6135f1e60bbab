package service

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"budget/models"
	"budget/repository"
)

// RecordService 记录的增删查与目标递增
type RecordService struct {
	store       repository.Store
	icons       models.RandSource
	now         func() time.Time
	capAtTarget bool
}

// Options RecordService 可选参数
type Options struct {
	// CapGoalsAtTarget 目标进度是否封顶到目标金额
	CapGoalsAtTarget bool
	// Icons 图标随机源，为空时使用全局随机数
	Icons models.RandSource
	// Now 时钟，为空时使用 time.Now
	Now func() time.Time
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NewRecordService 创建记录服务
func NewRecordService(store repository.Store, opts Options) *RecordService {
	s := &RecordService{
		store:       store,
		icons:       opts.Icons,
		now:         opts.Now,
		capAtTarget: opts.CapGoalsAtTarget,
	}
	if s.icons == nil {
		s.icons = globalRand{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ExpenseInput 新增支出参数
type ExpenseInput struct {
	Amount      float64
	Category    string
	Name        string
	Description string
}

// SavingInput 新增储蓄参数
type SavingInput struct {
	Amount float64
	Note   string
}

// InvestmentInput 新增投资参数
type InvestmentInput struct {
	Amount     float64
	Instrument string
	Note       string
}

// GoalInput 新增储蓄目标参数
type GoalInput struct {
	Name             string
	TargetAmount     float64
	MonthlyIncrement float64
}

// GoalProgress 递增后的目标状态
type GoalProgress struct {
	Goal *models.SavingsGoal
	// ReachedTarget 本次递增使目标从未达成变为已达成
	ReachedTarget bool
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ListExpenses 按创建时间倒序列出支出
func (s *RecordService) ListExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	return listOwned(ctx, s.store.Expenses(), userID)
}

// AddExpense 新增支出，金额无效时忽略
func (s *RecordService) AddExpense(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, Result, error) {
	if err := requireUser(userID); err != nil {
		return nil, Result{}, err
	}
	if !validAmount(in.Amount) {
		return nil, Skip(ReasonInvalidAmount), nil
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = models.CategoryOther
	}
	expense := &models.Expense{
		UserID:      userID,
		Amount:      in.Amount,
		Category:    category,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		IconKey:     models.PickIcon(models.ExpenseIconKeys, s.icons),
		CreatedAt:   s.now(),
	}
	if err := s.store.Expenses().Insert(ctx, expense); err != nil {
		return nil, Result{}, err
	}
	return expense, Applied(), nil
}

// DeleteExpense 删除支出，仅限本人
func (s *RecordService) DeleteExpense(ctx context.Context, userID string, id uint) (Result, error) {
	return deleteOwned[models.Expense, *models.Expense](ctx, s.store.Expenses(), userID, id)
}

// ListSavings 按创建时间倒序列出储蓄
func (s *RecordService) ListSavings(ctx context.Context, userID string) ([]models.Saving, error) {
	return listOwned(ctx, s.store.Savings(), userID)
}

// AddSaving 新增储蓄
func (s *RecordService) AddSaving(ctx context.Context, userID string, in SavingInput) (*models.Saving, Result, error) {
	if err := requireUser(userID); err != nil {
		return nil, Result{}, err
	}
	if !validAmount(in.Amount) {
		return nil, Skip(ReasonInvalidAmount), nil
	}

	saving := &models.Saving{
		UserID:    userID,
		Amount:    in.Amount,
		Note:      strings.TrimSpace(in.Note),
		IconKey:   models.PickIcon(models.SavingIconKeys, s.icons),
		CreatedAt: s.now(),
	}
	if err := s.store.Savings().Insert(ctx, saving); err != nil {
		return nil, Result{}, err
	}
	return saving, Applied(), nil
}

// DeleteSaving 删除储蓄，仅限本人
func (s *RecordService) DeleteSaving(ctx context.Context, userID string, id uint) (Result, error) {
	return deleteOwned[models.Saving, *models.Saving](ctx, s.store.Savings(), userID, id)
}

// ListInvestments 按创建时间倒序列出投资
func (s *RecordService) ListInvestments(ctx context.Context, userID string) ([]models.Investment, error) {
	return listOwned(ctx, s.store.Investments(), userID)
}

// AddInvestment 新增投资，品种不能为空
func (s *RecordService) AddInvestment(ctx context.Context, userID string, in InvestmentInput) (*models.Investment, Result, error) {
	if err := requireUser(userID); err != nil {
		return nil, Result{}, err
	}
	if !validAmount(in.Amount) {
		return nil, Skip(ReasonInvalidAmount), nil
	}
	instrument := strings.TrimSpace(in.Instrument)
	if instrument == "" {
		return nil, Skip(ReasonEmptyInstrument), nil
	}

	investment := &models.Investment{
		UserID:     userID,
		Amount:     in.Amount,
		Instrument: instrument,
		Note:       strings.TrimSpace(in.Note),
		IconKey:    models.PickIcon(models.InvestmentIconKeys, s.icons),
		CreatedAt:  s.now(),
	}
	if err := s.store.Investments().Insert(ctx, investment); err != nil {
		return nil, Result{}, err
	}
	return investment, Applied(), nil
}

// DeleteInvestment 删除投资，仅限本人
func (s *RecordService) DeleteInvestment(ctx context.Context, userID string, id uint) (Result, error) {
	return deleteOwned[models.Investment, *models.Investment](ctx, s.store.Investments(), userID, id)
}

// ListGoals 按创建时间倒序列出储蓄目标
func (s *RecordService) ListGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	return listOwned[models.SavingsGoal](ctx, s.store.Goals(), userID)
}

// AddGoal 新增储蓄目标，当前金额从 0 开始
func (s *RecordService) AddGoal(ctx context.Context, userID string, in GoalInput) (*models.SavingsGoal, Result, error) {
	if err := requireUser(userID); err != nil {
		return nil, Result{}, err
	}
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, Skip(ReasonEmptyName), nil
	case !validAmount(in.TargetAmount):
		return nil, Skip(ReasonInvalidTarget), nil
	case !validAmount(in.MonthlyIncrement):
		return nil, Skip(ReasonInvalidIncrement), nil
	}

	goal := &models.SavingsGoal{
		UserID:           userID,
		Name:             name,
		TargetAmount:     in.TargetAmount,
		CurrentAmount:    0,
		MonthlyIncrement: in.MonthlyIncrement,
		IconKey:          models.PickIcon(models.GoalIconKeys, s.icons),
		CreatedAt:        s.now(),
	}
	if err := s.store.Goals().Insert(ctx, goal); err != nil {
		return nil, Result{}, err
	}
	return goal, Applied(), nil
}

// DeleteGoal 删除储蓄目标，仅限本人
func (s *RecordService) DeleteGoal(ctx context.Context, userID string, id uint) (Result, error) {
	return deleteOwned[models.SavingsGoal, *models.SavingsGoal](ctx, s.store.Goals(), userID, id)
}

// IncrementGoal 当前金额增加一次每月递增额。
// 默认不封顶，进度可以超过 100%；开启封顶后已达成的目标不再递增
func (s *RecordService) IncrementGoal(ctx context.Context, userID string, id uint) (*GoalProgress, Result, error) {
	if err := requireUser(userID); err != nil {
		return nil, Result{}, err
	}
	goals := s.store.Goals()
	before, res, err := guardOwner[models.SavingsGoal, *models.SavingsGoal](ctx, goals, userID, id)
	if err != nil || res.Skipped {
		return nil, res, err
	}
	if s.capAtTarget && before.Reached() {
		return &GoalProgress{Goal: before}, Skip(ReasonGoalAtTarget), nil
	}

	if err := goals.AddMonthlyIncrement(ctx, id, s.capAtTarget); err != nil {
		return nil, Result{}, err
	}

	after, err := goals.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		// 递增期间被删除
		return nil, Skip(ReasonNotFoundOrForbidden), nil
	}
	if err != nil {
		return nil, Result{}, err
	}
	return &GoalProgress{
		Goal:          after,
		ReachedTarget: !before.Reached() && after.Reached(),
	}, Applied(), nil
}
