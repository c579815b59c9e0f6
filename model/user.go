package model

import (
	"time"
)

type User struct {
	UserID   int       `gorm:"column:user_id;primaryKey;autoIncrement"`
	Name     string    `gorm:"column:name;type:varchar(255);not null"`
	Email    string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Role     string    `gorm:"column:role;type:enum('operator','supervisor','admin');default:'operator';not null"`
	CreateAt time.Time `gorm:"column:create_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
