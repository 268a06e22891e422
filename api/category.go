package api

import (
	"strconv"
	"strings"

	"fintrack/database"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 收入类别处理器
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

type CategoryCreateRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Sort  int    `json:"sort"`
	Color string `json:"color" binding:"omitempty,max=20"` // 颜色代码，如 #ef4444
}

type CategoryUpdateRequest struct {
	Name  string  `json:"name" binding:"omitempty,min=1,max=50"`
	Sort  *int    `json:"sort"`
	Color *string `json:"color" binding:"omitempty,max=20"`
}

// List 获取收入类别列表
// @Summary 获取收入类别列表
// @Description 获取所有收入类别，按排序值排列。ID=7 为保留的"存入目标"类别。
// @Tags 收入类别
// @Produce json
// @Success 200 {object} Response{data=[]models.IncomeCategory} "获取成功"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var list []models.IncomeCategory
	if err := database.DB.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// Create 创建收入类别
// @Summary 创建收入类别
// @Description 创建新的收入类别，支持设置名称、排序和颜色
// @Tags 收入类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "类别信息"
// @Success 200 {object} Response{data=models.IncomeCategory} "创建成功"
// @Failure 400 {object} Response "参数错误或类别名称已存在"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "名称不能为空")
		return
	}

	var existing models.IncomeCategory
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		BadRequest(c, "类别名称已存在")
		return
	}

	cat := models.IncomeCategory{
		Name:  req.Name,
		Sort:  req.Sort,
		Color: req.Color,
	}
	if cat.Color == "" {
		cat.Color = "#64748b"
	}
	if err := database.DB.Create(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建类别失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", cat)
}

// Update 更新收入类别
// @Summary 更新收入类别
// @Description 更新指定的收入类别
// @Tags 收入类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Param request body CategoryUpdateRequest true "类别信息"
// @Success 200 {object} Response{data=models.IncomeCategory} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var cat models.IncomeCategory
	if err := database.DB.First(&cat, id).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}
	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&cat).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}
	SuccessWithMessage(c, "更新成功", cat)
}

// Delete 删除收入类别
// @Summary 删除收入类别
// @Description 删除指定的收入类别。保留类别（存入目标）不可删除。
// @Tags 收入类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "保留类别不可删除"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var cat models.IncomeCategory
	if err := database.DB.First(&cat, id).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}
	if cat.IsReserved() {
		BadRequest(c, "保留类别不可删除")
		return
	}
	if err := database.DB.Delete(&cat).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
