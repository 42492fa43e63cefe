package models

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMonthName(t *testing.T) {
	assert.Equal(t, "March", NormalizeMonthName("march"))
	assert.Equal(t, "March", NormalizeMonthName("MARCH"))
	assert.Equal(t, "March", NormalizeMonthName(" mArCh "))
	assert.Equal(t, "", NormalizeMonthName(""))
}

func TestParseMonthName(t *testing.T) {
	name, err := ParseMonthName("december")
	require.NoError(t, err)
	assert.Equal(t, "December", name)

	_, err = ParseMonthName("Smarch")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "is not a valid month")
}

func TestMonthIndex(t *testing.T) {
	assert.Equal(t, 1, MonthIndex("January"))
	assert.Equal(t, 12, MonthIndex("december"))
	assert.Equal(t, 0, MonthIndex("foo"))
	assert.Equal(t, 0, MonthIndex(""))
}

func TestValidateYear(t *testing.T) {
	assert.NoError(t, ValidateYear(2000))
	assert.NoError(t, ValidateYear(2100))
	assert.Error(t, ValidateYear(1999))
	assert.Error(t, ValidateYear(2101))
}

func TestMonth_Less(t *testing.T) {
	months := []Month{
		{Year: 2024, Name: "March"},
		{Year: 2023, Name: "December"},
		{Year: 2024, Name: "January"},
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Less(months[j]) })
	assert.Equal(t, "December", months[0].Name)
	assert.Equal(t, "January", months[1].Name)
	assert.Equal(t, "March", months[2].Name)
}

func TestParseTransactionType(t *testing.T) {
	typ, err := ParseTransactionType("savings")
	require.NoError(t, err)
	assert.Equal(t, TypeSavings, typ)

	_, err = ParseTransactionType("Savings")
	assert.True(t, IsValidationError(err))
}
