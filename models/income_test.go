package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidMonth(t *testing.T) {
	for _, m := range MonthNames {
		assert.True(t, IsValidMonth(m), m)
	}

	assert.False(t, IsValidMonth("Januar"))
	assert.False(t, IsValidMonth("january"))
	assert.False(t, IsValidMonth(""))
	assert.False(t, IsValidMonth("13"))
}

func TestIncomeCategory_IsReserved(t *testing.T) {
	reserved := &IncomeCategory{ID: GoalContributionCategoryID, Name: "存入目标"}
	assert.True(t, reserved.IsReserved())

	normal := &IncomeCategory{ID: 1, Name: "工资"}
	assert.False(t, normal.IsReserved())
}
