package service

import (
	"errors"

	"fintrack/database"
	"fintrack/models"

	"gorm.io/gorm"
)

// GoalProgressService 储蓄目标进度服务
// 收入记录与目标的关联发生变化（新增/修改/删除）后同步重算目标进度
type GoalProgressService struct{}

// NewGoalProgressService 创建目标进度服务
func NewGoalProgressService() *GoalProgressService {
	return &GoalProgressService{}
}

// Recompute 重算指定目标的完成进度
// 进度 = 关联到该目标的收入总额 / 目标金额 * 100
func (s *GoalProgressService) Recompute(userID, goalID uint) error {
	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 目标可能在收入写入与进度重算之间被删除，此时无进度可言
			return nil
		}
		return err
	}

	var total float64
	if err := database.DB.Model(&models.Income{}).
		Where("user_id = ? AND goal_id = ?", userID, goalID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return err
	}

	percentage := 0.0
	if goal.TargetAmount > 0 {
		percentage = total / goal.TargetAmount * 100
	}

	return database.DB.Model(&goal).Updates(map[string]interface{}{
		"percentage_to_goal": percentage,
		"is_reached":         percentage >= 100,
	}).Error
}
