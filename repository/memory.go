package repository

import (
	"context"
	"math"
	"sort"
	"sync"

	"budget/models"
)

// MemoryStore 内存存储，用于测试和 database.driver=memory 的本地运行
type MemoryStore struct {
	expenses    *memTable[models.Expense, *models.Expense]
	savings     *memTable[models.Saving, *models.Saving]
	investments *memTable[models.Investment, *models.Investment]
	goals       *memGoalTable
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		expenses:    newMemTable[models.Expense](),
		savings:     newMemTable[models.Saving](),
		investments: newMemTable[models.Investment](),
		goals:       &memGoalTable{newMemTable[models.SavingsGoal]()},
	}
}

func (s *MemoryStore) Expenses() Table[models.Expense]       { return s.expenses }
func (s *MemoryStore) Savings() Table[models.Saving]         { return s.savings }
func (s *MemoryStore) Investments() Table[models.Investment] { return s.investments }
func (s *MemoryStore) Goals() GoalTable                      { return s.goals }

type memTable[T any, P models.RecordPtr[T]] struct {
	mu     sync.RWMutex
	nextID uint
	rows   map[uint]T
}

func newMemTable[T any, P models.RecordPtr[T]]() *memTable[T, P] {
	return &memTable[T, P]{rows: make(map[uint]T)}
}

func (t *memTable[T, P]) ListByOwner(ctx context.Context, userID string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	list := make([]T, 0)
	for _, row := range t.rows {
		if P(&row).OwnerID() == userID {
			list = append(list, row)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := P(&list[i]), P(&list[j])
		if !a.CreatedTime().Equal(b.CreatedTime()) {
			return a.CreatedTime().After(b.CreatedTime())
		}
		return a.RecordID() > b.RecordID()
	})
	return list, nil
}

func (t *memTable[T, P]) Insert(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	P(rec).SetRecordID(t.nextID)
	t.rows[t.nextID] = *rec
	return nil
}

func (t *memTable[T, P]) GetByID(ctx context.Context, id uint) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (t *memTable[T, P]) DeleteByID(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.rows, id)
	return nil
}

type memGoalTable struct {
	*memTable[models.SavingsGoal, *models.SavingsGoal]
}

func (t *memGoalTable) AddMonthlyIncrement(ctx context.Context, id uint, capAtTarget bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	goal, ok := t.rows[id]
	if !ok {
		return nil
	}
	next := goal.CurrentAmount + goal.MonthlyIncrement
	if capAtTarget {
		next = math.Min(next, goal.TargetAmount)
	}
	goal.CurrentAmount = next
	t.rows[id] = goal
	return nil
}
