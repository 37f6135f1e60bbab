package service

import (
	"context"
	"time"

	"budget/models"

	"golang.org/x/sync/errgroup"
)

// Snapshot 某个用户的全部记录
type Snapshot struct {
	Expenses    []models.Expense
	Savings     []models.Saving
	Investments []models.Investment
	Goals       []models.SavingsGoal
}

// Dashboard 图表所需的汇总数据
type Dashboard struct {
	ByCategory           []CategoryAmount     `json:"by_category"`
	ByMonth              []MonthAmount        `json:"by_month"`
	ByMonthForCategory   []MonthAmount        `json:"by_month_for_category,omitempty"`
	Category             string               `json:"category,omitempty"`
	ByName               []NameAmount         `json:"by_name"`
	SavingsBreakdown     []LabelAmount        `json:"savings_breakdown"`
	InvestmentsBreakdown []LabelAmount        `json:"investments_breakdown"`
	Goals                []models.SavingsGoal `json:"goals"`
	Totals               Totals               `json:"totals"`
}

// Snapshot 并发读取四类记录。各查询之间不保证事务一致
func (s *RecordService) Snapshot(ctx context.Context, userID string) (*Snapshot, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Expenses, err = s.ListExpenses(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snap.Savings, err = s.ListSavings(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snap.Investments, err = s.ListInvestments(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snap.Goals, err = s.ListGoals(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// BuildDashboard 由快照计算图表数据，category 非空时额外给出该类别的月度趋势
func BuildDashboard(snap *Snapshot, category string, loc *time.Location) *Dashboard {
	d := &Dashboard{
		ByCategory:           ByCategory(snap.Expenses),
		ByMonth:              ByMonth(snap.Expenses, loc),
		ByName:               ByName(snap.Expenses),
		SavingsBreakdown:     SavingsBreakdown(snap.Savings),
		InvestmentsBreakdown: InvestmentsBreakdown(snap.Investments),
		Goals:                snap.Goals,
		Totals:               ComputeTotals(snap.Expenses, snap.Savings, snap.Investments),
	}
	if d.Goals == nil {
		d.Goals = []models.SavingsGoal{}
	}
	if category != "" {
		d.Category = category
		d.ByMonthForCategory = ByMonthForCategory(snap.Expenses, category, loc)
	}
	return d
}

// Within 返回创建时间落在 [start, end] 内的记录，零值表示不限
func (snap *Snapshot) Within(start, end time.Time) *Snapshot {
	return &Snapshot{
		Expenses:    filterCreated(snap.Expenses, start, end),
		Savings:     filterCreated(snap.Savings, start, end),
		Investments: filterCreated(snap.Investments, start, end),
		Goals:       filterCreated(snap.Goals, start, end),
	}
}

func filterCreated[T any, P models.RecordPtr[T]](list []T, start, end time.Time) []T {
	out := make([]T, 0, len(list))
	for i := range list {
		created := P(&list[i]).CreatedTime()
		if !start.IsZero() && created.Before(start) {
			continue
		}
		if !end.IsZero() && created.After(end) {
			continue
		}
		out = append(out, list[i])
	}
	return out
}
