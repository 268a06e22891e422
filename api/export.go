package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// loadIncomes 查询待导出的收入记录及类别名、目标名
func (h *ExportHandler) loadIncomes(c *gin.Context) ([]models.Income, map[uint]string, map[uint]string, bool) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			BadRequest(c, "无效的年份")
			return nil, nil, nil, false
		}
		query = query.Where("year = ?", year)
	}

	var incomes []models.Income
	if err := query.Order("year DESC, id DESC").Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return nil, nil, nil, false
	}

	catNames := map[uint]string{}
	var cats []models.IncomeCategory
	if err := database.DB.Find(&cats).Error; err == nil {
		for _, cat := range cats {
			catNames[cat.ID] = cat.Name
		}
	}

	goalTitles := map[uint]string{}
	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", userID).Find(&goals).Error; err == nil {
		for _, g := range goals {
			goalTitles[g.ID] = g.Title
		}
	}

	return incomes, catNames, goalTitles, true
}

// ExportCSV 导出收入记录为 CSV
// @Summary 导出收入记录（CSV）
// @Description 导出当前用户的收入记录为 CSV 文件，可按年份筛选
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param year query int false "年份筛选"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	incomes, catNames, goalTitles, ok := h.loadIncomes(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"ID", "金额", "类别", "月份", "年份", "关联目标", "创建时间"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	for _, in := range incomes {
		goalTitle := ""
		if in.GoalID != nil {
			goalTitle = goalTitles[*in.GoalID]
		}
		row := []string{
			fmt.Sprintf("%d", in.ID),
			fmt.Sprintf("%.2f", in.Amount),
			catNames[in.CategoryID],
			in.MonthOfYear,
			fmt.Sprintf("%d", in.Year),
			goalTitle,
			in.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}
	writer.Flush()

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''incomes.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportExcel 导出收入记录为 Excel
// @Summary 导出收入记录（Excel）
// @Description 导出当前用户的收入记录为 xlsx 文件，可按年份筛选
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param year query int false "年份筛选"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	incomes, catNames, goalTitles, ok := h.loadIncomes(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "收入记录"
	f.SetSheetName("Sheet1", sheetName)

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"10B981"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 14)
	f.SetColWidth(sheetName, "E", "E", 10)
	f.SetColWidth(sheetName, "F", "F", 25)
	f.SetColWidth(sheetName, "G", "G", 20)

	headers := []string{"ID", "金额", "类别", "月份", "年份", "关联目标", "创建时间"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	var totalAmount float64
	for i, in := range incomes {
		row := i + 2
		goalTitle := ""
		if in.GoalID != nil {
			goalTitle = goalTitles[*in.GoalID]
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), in.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), in.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), catNames[in.CategoryID])
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), in.MonthOfYear)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), in.Year)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), goalTitle)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), in.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), dataStyle)
		totalAmount += in.Amount
	}

	// 汇总行
	summaryRow := len(incomes) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "合计")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), totalAmount)
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("共 %d 条记录", len(incomes)))
	f.MergeCell(sheetName, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("G%d", summaryRow))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow), summaryStyle)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''incomes.xlsx")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}
