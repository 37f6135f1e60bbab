package models

import "time"

// DefaultSavingLabel 没有备注的储蓄在图表中显示的名称
const DefaultSavingLabel = "Saving"

// Saving 储蓄记录
type Saving struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"size:64;not null;index:idx_savings_user_created,priority:1"`
	Amount    float64   `json:"amount" gorm:"type:double;not null"`
	Note      string    `json:"note,omitempty" gorm:"size:255"`
	IconKey   string    `json:"icon_key" gorm:"size:32;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index:idx_savings_user_created,priority:2"`
}

// TableName 设置表名
func (Saving) TableName() string {
	return "savings"
}

func (s *Saving) RecordID() uint         { return s.ID }
func (s *Saving) SetRecordID(id uint)    { s.ID = id }
func (s *Saving) OwnerID() string        { return s.UserID }
func (s *Saving) CreatedTime() time.Time { return s.CreatedAt }

// Label 备注为空时使用默认名称
func (s Saving) Label() string {
	if s.Note != "" {
		return s.Note
	}
	return DefaultSavingLabel
}
