package model

import (
	"time"
)

type Machine struct {
	MachineID int    `gorm:"column:machine_id;primaryKey;autoIncrement"`
	Name      string `gorm:"column:name;type:varchar(255);not null"`
	Location  string `gorm:"column:location;type:varchar(255)"`
	Status    string `gorm:"column:status;type:enum('active','inactive');default:'active';not null"`

	// CycleCount is the monotonically increasing usage counter reported by
	// the machine/mould. It only ever goes up.
	CycleCount int `gorm:"column:cycle_count;default:0;not null"`

	CreateAt time.Time `gorm:"column:create_at;autoCreateTime"`
}

func (Machine) TableName() string {
	return "machines"
}
