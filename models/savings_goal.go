package models

import "time"

// SavingsGoal 储蓄目标
// CurrentAmount 只会通过递增操作增加，每次增加 MonthlyIncrement，可以超过 TargetAmount
type SavingsGoal struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           string    `json:"user_id" gorm:"size:64;not null;index:idx_goals_user_created,priority:1"`
	Name             string    `json:"name" gorm:"size:100;not null"`
	TargetAmount     float64   `json:"target_amount" gorm:"type:double;not null"`
	CurrentAmount    float64   `json:"current_amount" gorm:"type:double;not null;default:0"`
	MonthlyIncrement float64   `json:"monthly_increment" gorm:"type:double;not null"`
	IconKey          string    `json:"icon_key" gorm:"size:32;not null"`
	CreatedAt        time.Time `json:"created_at" gorm:"not null;index:idx_goals_user_created,priority:2"`
}

// TableName 设置表名
func (SavingsGoal) TableName() string {
	return "savings_goals"
}

func (g *SavingsGoal) RecordID() uint         { return g.ID }
func (g *SavingsGoal) SetRecordID(id uint)    { g.ID = id }
func (g *SavingsGoal) OwnerID() string        { return g.UserID }
func (g *SavingsGoal) CreatedTime() time.Time { return g.CreatedAt }

// Progress 完成百分比，可能超过 100
func (g SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

// Reached 是否已达成目标
func (g SavingsGoal) Reached() bool {
	return g.CurrentAmount >= g.TargetAmount
}
