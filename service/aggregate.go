package service

import (
	"sort"
	"time"

	"budget/models"

	"github.com/shopspring/decimal"
)

// CategoryAmount 按类别汇总
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MonthAmount 按月份汇总，Month 格式为 YYYY-MM
type MonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// NameAmount 按名称汇总
type NameAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// LabelAmount 单条记录的图表数据
type LabelAmount struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Totals 各类记录金额合计
type Totals struct {
	Expenses    float64 `json:"expenses"`
	Savings     float64 `json:"savings"`
	Investments float64 `json:"investments"`
}

type bucket struct {
	key string
	sum decimal.Decimal
}

// foldBy 按 key 分组求和，保持 key 首次出现的顺序
func foldBy[T any](items []T, key func(T) string, amount func(T) float64) []bucket {
	index := make(map[string]int)
	buckets := make([]bucket, 0)
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, bucket{key: k, sum: decimal.Zero})
		}
		buckets[i].sum = buckets[i].sum.Add(decimal.NewFromFloat(amount(item)))
	}
	return buckets
}

func sum[T any](items []T, amount func(T) float64) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(amount(item)))
	}
	return total.InexactFloat64()
}

func expenseAmount(e models.Expense) float64 { return e.Amount }

func monthKey(loc *time.Location) func(models.Expense) string {
	if loc == nil {
		loc = time.Local
	}
	return func(e models.Expense) string {
		return e.CreatedAt.In(loc).Format("2006-01")
	}
}

// ByCategory 按类别汇总支出
func ByCategory(expenses []models.Expense) []CategoryAmount {
	buckets := foldBy(expenses, func(e models.Expense) string { return e.Category }, expenseAmount)
	out := make([]CategoryAmount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, CategoryAmount{Category: b.key, Amount: b.sum.InexactFloat64()})
	}
	return out
}

// ByMonth 按创建时间所在月份（loc 时区）汇总支出，月份升序
func ByMonth(expenses []models.Expense, loc *time.Location) []MonthAmount {
	buckets := foldBy(expenses, monthKey(loc), expenseAmount)
	out := make([]MonthAmount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, MonthAmount{Month: b.key, Amount: b.sum.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// ByMonthForCategory 单个类别的月度趋势
func ByMonthForCategory(expenses []models.Expense, category string, loc *time.Location) []MonthAmount {
	filtered := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Category == category {
			filtered = append(filtered, e)
		}
	}
	return ByMonth(filtered, loc)
}

// ByName 按名称汇总支出，没有名称时使用类别
func ByName(expenses []models.Expense) []NameAmount {
	buckets := foldBy(expenses, models.Expense.Label, expenseAmount)
	out := make([]NameAmount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, NameAmount{Name: b.key, Amount: b.sum.InexactFloat64()})
	}
	return out
}

// SavingsBreakdown 每条储蓄一项，名称为备注或 "Saving"
func SavingsBreakdown(savings []models.Saving) []LabelAmount {
	out := make([]LabelAmount, 0, len(savings))
	for _, s := range savings {
		out = append(out, LabelAmount{Label: s.Label(), Amount: s.Amount})
	}
	return out
}

// InvestmentsBreakdown 每条投资一项，名称为投资品种
func InvestmentsBreakdown(investments []models.Investment) []LabelAmount {
	out := make([]LabelAmount, 0, len(investments))
	for _, i := range investments {
		out = append(out, LabelAmount{Label: i.Instrument, Amount: i.Amount})
	}
	return out
}

// TotalExpenses 支出合计
func TotalExpenses(expenses []models.Expense) float64 {
	return sum(expenses, expenseAmount)
}

// TotalSavings 储蓄合计
func TotalSavings(savings []models.Saving) float64 {
	return sum(savings, func(s models.Saving) float64 { return s.Amount })
}

// TotalInvestments 投资合计
func TotalInvestments(investments []models.Investment) float64 {
	return sum(investments, func(i models.Investment) float64 { return i.Amount })
}

// ComputeTotals 三类记录合计
func ComputeTotals(expenses []models.Expense, savings []models.Saving, investments []models.Investment) Totals {
	return Totals{
		Expenses:    TotalExpenses(expenses),
		Savings:     TotalSavings(savings),
		Investments: TotalInvestments(investments),
	}
}
