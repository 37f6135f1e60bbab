package models

// 各类记录可选的图标，创建时随机选择一个，之后不再变化
var (
	ExpenseIconKeys    = []string{"shopping-bag", "bolt", "bus", "clapperboard", "home", "credit-card", "flame", "wallet"}
	SavingIconKeys     = []string{"piggy-bank", "wallet", "credit-card", "safe"}
	InvestmentIconKeys = []string{"line-chart", "chart-line", "banknote", "maple"}
	GoalIconKeys       = []string{"trophy", "target", "flag", "rocket", "gift", "piggy-bank", "star", "gem"}
)

// RandSource 随机数来源，math/rand/v2 的 *rand.Rand 即满足该接口
type RandSource interface {
	IntN(n int) int
}

// PickIcon 从 keys 中均匀随机选择一个图标
func PickIcon(keys []string, src RandSource) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[src.IntN(len(keys))]
}
