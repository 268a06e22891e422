package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型
type User struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Username   string         `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Password   string         `json:"-" gorm:"size:255;not null"`
	Email      string         `json:"email" gorm:"uniqueIndex;size:100;not null"`
	FirstName  string         `json:"first_name" gorm:"size:50;not null"`
	MiddleName string         `json:"middle_name" gorm:"size:50"`
	LastName   string         `json:"last_name" gorm:"size:50;not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
