package models

import "time"

// Investment 投资记录
type Investment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"size:64;not null;index:idx_investments_user_created,priority:1"`
	Amount     float64   `json:"amount" gorm:"type:double;not null"`
	Instrument string    `json:"instrument" gorm:"size:100;not null"`
	Note       string    `json:"note,omitempty" gorm:"size:255"`
	IconKey    string    `json:"icon_key" gorm:"size:32;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;index:idx_investments_user_created,priority:2"`
}

// TableName 设置表名
func (Investment) TableName() string {
	return "investments"
}

func (i *Investment) RecordID() uint         { return i.ID }
func (i *Investment) SetRecordID(id uint)    { i.ID = id }
func (i *Investment) OwnerID() string        { return i.UserID }
func (i *Investment) CreatedTime() time.Time { return i.CreatedAt }
