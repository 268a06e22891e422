package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryHandler_GetIncomeSummary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 总收入
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(1, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(60000.0))

	// 已记账月份数
	mock.ExpectQuery("SELECT count").
		WithArgs(1, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	// 按类别汇总
	mock.ExpectQuery("SELECT category_id").
		WithArgs(1, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "total"}).
			AddRow(1, 48000.0).
			AddRow(7, 12000.0))

	// 按目标汇总
	mock.ExpectQuery("SELECT goal_id").
		WithArgs(1, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"goal_id", "total"}).
			AddRow(10, 12000.0))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/statistics/summary", NewSummaryHandler().GetIncomeSummary)

	req := httptest.NewRequest("GET", "/statistics/summary?year=2024", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(60000), data["total_income"])
	assert.Equal(t, float64(12), data["record_months"])
	assert.Len(t, data["by_category"], 2)
	assert.Len(t, data["by_goal"], 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryHandler_GetIncomeSummary_InvalidYear(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/statistics/summary", NewSummaryHandler().GetIncomeSummary)

	req := httptest.NewRequest("GET", "/statistics/summary?year=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
