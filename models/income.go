package models

import (
	"time"
)

// MonthNames 十二个月份名称（英文），month_of_year 只允许取这些值
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// IsValidMonth 判断是否为合法的月份名称
func IsValidMonth(month string) bool {
	for _, m := range MonthNames {
		if m == month {
			return true
		}
	}
	return false
}

// Income 收入记录模型
// 每个用户每个自然月（year + month_of_year）最多一条记录，由联合唯一索引保证
// 收入记录为硬删除（无 DeletedAt），删除后该月份槽位立即可复用
type Income struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:uniq_user_period,priority:1"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	MonthOfYear string    `json:"month_of_year" gorm:"size:16;not null;uniqueIndex:uniq_user_period,priority:3"`
	Year        int       `json:"year" gorm:"not null;uniqueIndex:uniq_user_period,priority:2"`
	GoalID      *uint     `json:"goal_id" gorm:"index"` // 仅当类别为"存入目标"时非空
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
	Goal        *Goal     `json:"-" gorm:"foreignKey:GoalID"`
}

// TableName 设置表名
func (Income) TableName() string {
	return "incomes"
}
