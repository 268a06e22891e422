package api

import (
	"strconv"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SummaryHandler 统计处理器
type SummaryHandler struct{}

func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{}
}

// CategorySummary 单个类别的收入汇总
type CategorySummary struct {
	CategoryID uint    `json:"category_id"`
	Total      float64 `json:"total"`
}

// GoalSummary 单个目标的存入汇总
type GoalSummary struct {
	GoalID uint    `json:"goal_id"`
	Total  float64 `json:"total"`
}

// IncomeSummaryResponse 收入汇总返回
type IncomeSummaryResponse struct {
	TotalIncome  float64           `json:"total_income" example:"60000.00"` // 收入总和
	ByCategory   []CategorySummary `json:"by_category"`
	ByGoal       []GoalSummary     `json:"by_goal"`
	RecordMonths int64             `json:"record_months"` // 已记账月份数
}

// GetIncomeSummary 获取收入汇总
// @Summary 获取收入汇总
// @Description 统计当前用户的收入总和、按类别汇总与按目标存入汇总。不传 year 则统计全部年份。
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param year query int false "年份筛选"
// @Success 200 {object} Response{data=IncomeSummaryResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/summary [get]
func (h *SummaryHandler) GetIncomeSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var year int
	hasYear := false
	if yearStr := c.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			BadRequest(c, "无效的年份")
			return
		}
		year = y
		hasYear = true
	}

	// 每个统计各自新建查询，避免复用查询构造器
	newQuery := func() *gorm.DB {
		q := database.DB.Model(&models.Income{}).Where("user_id = ?", userID)
		if hasYear {
			q = q.Where("year = ?", year)
		}
		return q
	}

	var totalIncome float64
	if err := newQuery().Select("COALESCE(SUM(amount), 0)").Scan(&totalIncome).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	var recordMonths int64
	newQuery().Count(&recordMonths)

	var byCategory []CategorySummary
	if err := newQuery().
		Select("category_id, COALESCE(SUM(amount), 0) AS total").
		Group("category_id").
		Scan(&byCategory).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	var byGoal []GoalSummary
	if err := newQuery().
		Where("goal_id IS NOT NULL").
		Select("goal_id, COALESCE(SUM(amount), 0) AS total").
		Group("goal_id").
		Scan(&byGoal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	Success(c, IncomeSummaryResponse{
		TotalIncome:  totalIncome,
		ByCategory:   byCategory,
		ByGoal:       byGoal,
		RecordMonths: recordMonths,
	})
}
