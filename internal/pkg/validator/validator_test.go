package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2025-06-15")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), d)

	_, ok = IsValidDate("15-06-2025")
	assert.False(t, ok)
	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidYearMonth(t *testing.T) {
	y, m, ok := IsValidYearMonth("2025-06")
	assert.True(t, ok)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.June, m)

	_, _, ok = IsValidYearMonth("2025-6")
	assert.False(t, ok)
	_, _, ok = IsValidYearMonth("June 2025")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date_from", Message: "is required"},
		{Field: "employee_id", Message: "must be a UUID"},
	}
	assert.Equal(t, "date_from: is required; employee_id: must be a UUID", errs.Error())
	assert.Equal(t, map[string]string{
		"date_from":   "is required",
		"employee_id": "must be a UUID",
	}, errs.ToMap())
}
