package models

import "time"

// Expense 支出记录
type Expense struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"size:64;not null;index:idx_expenses_user_created,priority:1"`
	Amount      float64   `json:"amount" gorm:"type:double;not null"`
	Category    string    `json:"category" gorm:"size:50;not null"`
	Name        string    `json:"name,omitempty" gorm:"size:100"`
	Description string    `json:"description,omitempty" gorm:"size:255"`
	IconKey     string    `json:"icon_key" gorm:"size:32;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;index:idx_expenses_user_created,priority:2"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) RecordID() uint         { return e.ID }
func (e *Expense) SetRecordID(id uint)    { e.ID = id }
func (e *Expense) OwnerID() string        { return e.UserID }
func (e *Expense) CreatedTime() time.Time { return e.CreatedAt }

// Label 图表中使用的名称：优先 name，否则使用类别
func (e Expense) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Category
}

// 支出类别
const (
	CategoryGroceries     = "Groceries"
	CategoryUtilities     = "Utilities"
	CategoryTransport     = "Transport"
	CategoryEntertainment = "Entertainment"
	CategoryBill          = "Bill"
	CategorySavings       = "Savings"
	CategoryMisc          = "Misc"
	CategoryOther         = "Other"
)

// GetCategories 获取所有预设支出类别
func GetCategories() []string {
	return []string{
		CategoryGroceries,
		CategoryUtilities,
		CategoryTransport,
		CategoryEntertainment,
		CategoryBill,
		CategorySavings,
		CategoryMisc,
		CategoryOther,
	}
}
