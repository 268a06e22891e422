package api

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// IncomeHandler 收入记录处理器（App端）
type IncomeHandler struct {
	progress *service.GoalProgressService
}

func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{progress: service.NewGoalProgressService()}
}

type CreateIncomeRequest struct {
	Amount      float64 `json:"amount" binding:"gte=0" example:"5000.00"` // 允许为 0，某月没有收入也可以记一笔
	CategoryID  uint    `json:"category_id" binding:"required" example:"7"`
	MonthOfYear string  `json:"month_of_year" binding:"required,oneof=January February March April May June July August September October November December" example:"January"`
	Year        int     `json:"year" binding:"required,gte=1970" example:"2024"`
	GoalID      *uint   `json:"goal_id" example:"10"`
}

type UpdateIncomeRequest struct {
	Amount      *float64 `json:"amount" binding:"omitempty,gte=0"`
	CategoryID  *uint    `json:"category_id"`
	MonthOfYear *string  `json:"month_of_year" binding:"omitempty,oneof=January February March April May June July August September October November December"`
	Year        *int     `json:"year" binding:"omitempty,gte=1970"`
	GoalID      *uint    `json:"goal_id"`
}

// List 获取收入列表
// @Summary 获取收入列表
// @Description 获取当前用户的全部收入记录，可按年份筛选。没有记录时返回空列表。
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param year query int false "年份筛选"
// @Success 200 {object} Response{data=[]models.Income} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			BadRequest(c, "无效的年份")
			return
		}
		query = query.Where("year = ?", year)
	}

	var list []models.Income
	if err := query.Order("year DESC, id DESC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	// 没有记录也是正常结果，返回空数组
	if list == nil {
		list = []models.Income{}
	}
	Success(c, list)
}

// Get 获取单条收入
// @Summary 获取单条收入
// @Description 根据ID获取当前用户的收入详情
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Success 200 {object} Response{data=models.Income} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var in models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&in).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	Success(c, in)
}

// Create 创建收入
// @Summary 创建收入
// @Description 创建一条收入记录。同一用户同一月份（year + month_of_year）只能有一条记录，重复创建返回 409。携带 goal_id 时目标必须属于当前用户；只有"存入目标"类别（category_id=7）会真正建立目标关联，其他类别强制置空。
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "收入信息"
// @Success 200 {object} Response{data=models.Income} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "目标不存在"
// @Failure 409 {object} Response "该月份已存在收入记录"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// 目标归属校验：只要带了 goal_id，无论类别是什么都必须是当前用户自己的目标
	var goalID *uint
	if req.GoalID != nil {
		var goal models.Goal
		if err := database.DB.Where("id = ? AND user_id = ?", *req.GoalID, userID).First(&goal).Error; err != nil {
			NotFound(c, "目标不存在")
			return
		}
		// 只有"存入目标"类别真正建立关联，其他类别强制置空
		if req.CategoryID == models.GoalContributionCategoryID {
			goalID = &goal.ID
		}
	}

	in := models.Income{
		UserID:      userID,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		MonthOfYear: req.MonthOfYear,
		Year:        req.Year,
		GoalID:      goalID,
	}
	if err := database.DB.Create(&in).Error; err != nil {
		// 一人一月一条由联合唯一索引兜底，并发下先查后写不可靠
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, fmt.Sprintf("%d 年 %s 月已存在收入记录", req.Year, req.MonthOfYear))
			return
		}
		// 目标在校验与写入之间被删除时由外键约束兜底
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			NotFound(c, "目标不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "创建收入失败"))
		return
	}

	if in.GoalID != nil {
		if err := h.progress.Recompute(userID, *in.GoalID); err != nil {
			log.Printf("重算目标进度失败 goal=%d: %v", *in.GoalID, err)
		}
	}

	SuccessWithMessage(c, "创建成功", in)
}

// Update 更新收入
// @Summary 更新收入
// @Description 更新指定的收入记录，可更新任意字段子集。仅当请求携带 goal_id 时才重新校验目标归属，未携带则保持原有关联不变。月份变更同样受一人一月一条的约束。
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Param request body UpdateIncomeRequest true "收入信息"
// @Success 200 {object} Response{data=models.Income} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录或目标不存在"
// @Failure 409 {object} Response "该月份已存在收入记录"
// @Router /api/v1/incomes/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var in models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&in).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	// 目标关联策略以更新后的类别为准
	category := in.CategoryID
	if req.CategoryID != nil {
		category = *req.CategoryID
		updates["category_id"] = category
	}
	if req.MonthOfYear != nil {
		updates["month_of_year"] = *req.MonthOfYear
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}

	oldGoalID := in.GoalID
	if req.GoalID != nil {
		// 仅当请求携带 goal_id 时才重新校验目标归属
		var goal models.Goal
		if err := database.DB.Where("id = ? AND user_id = ?", *req.GoalID, userID).First(&goal).Error; err != nil {
			NotFound(c, "目标不存在")
			return
		}
		if category == models.GoalContributionCategoryID {
			updates["goal_id"] = goal.ID
		} else {
			updates["goal_id"] = nil
		}
	} else if req.CategoryID != nil && category != models.GoalContributionCategoryID {
		// 类别改为非"存入目标"时解除已有关联
		updates["goal_id"] = nil
	}

	if len(updates) > 0 {
		// 更新谓词同时限定用户与记录ID
		result := database.DB.Model(&models.Income{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				Conflict(c, "目标月份已存在收入记录")
				return
			}
			if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
				NotFound(c, "目标不存在")
				return
			}
			InternalError(c, SafeErrorMessage(result.Error, "更新失败"))
			return
		}
	}

	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&in).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	// 旧目标与新目标的进度都可能受影响
	if oldGoalID != nil {
		if err := h.progress.Recompute(userID, *oldGoalID); err != nil {
			log.Printf("重算目标进度失败 goal=%d: %v", *oldGoalID, err)
		}
	}
	if in.GoalID != nil && (oldGoalID == nil || *in.GoalID != *oldGoalID) {
		if err := h.progress.Recompute(userID, *in.GoalID); err != nil {
			log.Printf("重算目标进度失败 goal=%d: %v", *in.GoalID, err)
		}
	}

	SuccessWithMessage(c, "更新成功", in)
}

// Delete 删除收入
// @Summary 删除收入
// @Description 删除指定的收入记录（物理删除），返回被删除记录的ID。删除谓词同时限定用户与记录ID，不能跨用户删除。
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var in models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&in).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Income{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "删除失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "记录不存在")
		return
	}

	if in.GoalID != nil {
		if err := h.progress.Recompute(userID, *in.GoalID); err != nil {
			log.Printf("重算目标进度失败 goal=%d: %v", *in.GoalID, err)
		}
	}

	SuccessWithMessage(c, "删除成功", gin.H{"id": in.ID})
}
