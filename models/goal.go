package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal 储蓄目标模型
// percentage_to_goal 与 is_reached 由 service.GoalProgressService 在
// 关联收入变化后重算，不在写入路径上手工维护
type Goal struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	UserID           uint           `json:"user_id" gorm:"index;not null"`
	Title            string         `json:"title" gorm:"size:256;not null"`
	Description      string         `json:"description" gorm:"size:1024"`
	TargetAmount     float64        `json:"target_amount" gorm:"type:decimal(10,2);not null"`
	PercentageToGoal float64        `json:"percentage_to_goal" gorm:"default:0"`
	IsReached        bool           `json:"is_reached" gorm:"default:false"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
	User             User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Goal) TableName() string {
	return "goals"
}
