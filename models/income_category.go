package models

import (
	"time"

	"gorm.io/gorm"
)

// GoalContributionCategoryID "存入目标"类别的保留ID
// 收入记录只有属于该类别时才允许真正关联储蓄目标
const GoalContributionCategoryID uint = 7

// IncomeCategory 收入类别
type IncomeCategory struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Sort      int            `json:"sort" gorm:"default:0;index"`
	Color     string         `json:"color" gorm:"size:20;default:#64748b"` // 颜色代码，如 #10b981
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (IncomeCategory) TableName() string {
	return "income_categories"
}

// IsReserved 保留类别不可删除，删除后目标关联规则会失效
func (c *IncomeCategory) IsReserved() bool {
	return c.ID == GoalContributionCategoryID
}
