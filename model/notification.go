package model

import (
	"time"
)

// Notification rows are written by the reminder job; delivery is handled by
// an external service that polls and flips IsSend.
type Notification struct {
	NotificationID int        `gorm:"column:notification_id;primaryKey;autoIncrement"`
	TaskID         int        `gorm:"column:task_id;not null;index"`
	Status         string     `gorm:"column:status;type:enum('due','overdue');not null"`
	DueAt          *time.Time `gorm:"column:due_at"`
	DaysOverdue    int        `gorm:"column:days_overdue;default:0;not null"`
	IsSend         string     `gorm:"column:is_send;type:enum('0','1');default:'0';not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`

	// Relations
	Task MaintenanceTask `gorm:"foreignKey:TaskID;references:TaskID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE"`
}

func (Notification) TableName() string {
	return "notifications"
}
