package api

import (
	"log"
	"strconv"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// GoalHandler 储蓄目标处理器（App端）
type GoalHandler struct {
	progress *service.GoalProgressService
}

func NewGoalHandler() *GoalHandler {
	return &GoalHandler{progress: service.NewGoalProgressService()}
}

type CreateGoalRequest struct {
	Title        string  `json:"title" binding:"required,min=1,max=256" example:"买房首付"`
	Description  string  `json:"description" binding:"omitempty,max=1024"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0" example:"100000.00"`
}

type UpdateGoalRequest struct {
	Title        *string  `json:"title" binding:"omitempty,min=1,max=256"`
	Description  *string  `json:"description" binding:"omitempty,max=1024"`
	TargetAmount *float64 `json:"target_amount" binding:"omitempty,gt=0"`
}

// List 获取目标列表
// @Summary 获取储蓄目标列表
// @Description 获取当前用户的所有储蓄目标
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Goal} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var list []models.Goal
	if err := database.DB.Where("user_id = ?", userID).Order("id DESC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	if list == nil {
		list = []models.Goal{}
	}
	Success(c, list)
}

// Get 获取单个目标
// @Summary 获取单个储蓄目标
// @Description 根据ID获取当前用户的目标详情
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response{data=models.Goal} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "目标不存在")
		return
	}
	Success(c, goal)
}

// Create 创建目标
// @Summary 创建储蓄目标
// @Description 创建一个新的储蓄目标
// @Tags 目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=models.Goal} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	goal := models.Goal{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
	}
	if err := database.DB.Create(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建目标失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", goal)
}

// Update 更新目标
// @Summary 更新储蓄目标
// @Description 更新指定的储蓄目标。目标金额变更后进度会重新计算。
// @Tags 目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Param request body UpdateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=models.Goal} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "目标不存在")
		return
	}
	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	targetChanged := false
	if req.TargetAmount != nil {
		updates["target_amount"] = *req.TargetAmount
		targetChanged = true
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&models.Goal{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}

	// 目标金额变了，完成百分比要跟着变
	if targetChanged {
		if err := h.progress.Recompute(userID, goal.ID); err != nil {
			log.Printf("重算目标进度失败 goal=%d: %v", goal.ID, err)
		}
	}

	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	SuccessWithMessage(c, "更新成功", goal)
}

// Delete 删除目标
// @Summary 删除储蓄目标
// @Description 删除指定的储蓄目标，已关联该目标的收入记录会解除关联
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "目标不存在")
		return
	}

	// 先解除收入记录的关联，避免外键约束阻止删除
	if err := database.DB.Model(&models.Income{}).
		Where("user_id = ? AND goal_id = ?", userID, goal.ID).
		Update("goal_id", nil).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "解除收入关联失败"))
		return
	}

	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", gin.H{"id": goal.ID})
}
