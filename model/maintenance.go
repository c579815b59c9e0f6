package model

import (
	"time"
)

// MaintenanceTask carries a derived due date: DueAt is recomputed from the
// schedule whenever a completion is recorded, never edited directly. Status
// follows the classifier lazily on read except the terminal
// completed/cancelled states, which stick once set.
type MaintenanceTask struct {
	TaskID      int    `gorm:"column:task_id;primaryKey;autoIncrement"`
	MachineID   int    `gorm:"column:machine_id;not null;index"`
	Name        string `gorm:"column:name;type:varchar(255);not null"`
	Description *string `gorm:"column:description;type:text"`
	Type        string `gorm:"column:type;type:enum('preventative','corrective');default:'preventative';not null"`

	ScheduleType   string `gorm:"column:schedule_type;type:enum('time_based','usage_based','mixed');not null"`
	IntervalDays   *int   `gorm:"column:interval_days"`
	IntervalCycles *int   `gorm:"column:interval_cycles"`

	DueAt           *time.Time `gorm:"column:due_at"`
	LastCompletedAt *time.Time `gorm:"column:last_completed_at"`

	// LastCompletedCycles snapshots the machine cycle counter at the last
	// completion, so usage-based due checks can measure the delta.
	LastCompletedCycles *int `gorm:"column:last_completed_cycles"`

	Status   string    `gorm:"column:status;type:enum('upcoming','due','overdue','completed','cancelled');default:'upcoming';not null"`
	CreateAt time.Time `gorm:"column:create_at;autoCreateTime"`

	// Relations
	Machine Machine `gorm:"foreignKey:MachineID;references:MachineID;constraint:OnUpdate:CASCADE"`
}

func (MaintenanceTask) TableName() string {
	return "maintenance_tasks"
}
