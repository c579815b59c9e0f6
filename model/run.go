package model

import (
	"time"
)

type ChecklistRun struct {
	RunID       int        `gorm:"column:run_id;primaryKey;autoIncrement"`
	TemplateID  int        `gorm:"column:template_id;not null;index"`
	MachineID   int        `gorm:"column:machine_id;not null;index"`
	UserID      int        `gorm:"column:user_id;not null;index"`
	Status      string     `gorm:"column:status;type:enum('in_progress','completed','aborted');default:'in_progress';not null"`
	StartedAt   time.Time  `gorm:"column:started_at;autoCreateTime"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	DueDate     *time.Time `gorm:"column:due_date"`

	// Relations
	Template ChecklistTemplate `gorm:"foreignKey:TemplateID;references:TemplateID;constraint:OnUpdate:CASCADE"`
	Machine  Machine           `gorm:"foreignKey:MachineID;references:MachineID;constraint:OnUpdate:CASCADE"`
	User     User              `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE"`
}

func (ChecklistRun) TableName() string {
	return "checklist_runs"
}
