package models

import "time"

// Record 所有按用户归属的记录都实现该接口，供存储层通用处理
type Record interface {
	RecordID() uint
	SetRecordID(id uint)
	OwnerID() string
	CreatedTime() time.Time
}

// Kind 记录类型
type Kind string

const (
	KindExpense    Kind = "expenses"
	KindSaving     Kind = "savings"
	KindInvestment Kind = "investments"
	KindGoal       Kind = "goals"
)

// ParseKind 解析记录类型，未知类型返回 false
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindExpense, KindSaving, KindInvestment, KindGoal:
		return k, true
	}
	return "", false
}

// RecordPtr 泛型约束：T 的指针实现 Record
type RecordPtr[T any] interface {
	*T
	Record
}
