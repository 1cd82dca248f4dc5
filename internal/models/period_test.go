package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_DayStart(t *testing.T) {
	r := NewResolver(time.Sunday)
	// Wednesday afternoon
	now := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.Local)

	day := r.DayStart(now)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.Local), day)
}

func TestResolver_WeekStart_Sunday(t *testing.T) {
	r := NewResolver(time.Sunday)
	// 2024-05-15 is a Wednesday; the preceding Sunday is 2024-05-12
	now := time.Date(2024, 5, 15, 14, 30, 45, 0, time.Local)

	week := r.WeekStart(now)
	assert.Equal(t, time.Date(2024, 5, 12, 0, 0, 0, 0, time.Local), week)
}

func TestResolver_WeekStart_Monday(t *testing.T) {
	r := NewResolver(time.Monday)
	now := time.Date(2024, 5, 15, 14, 30, 45, 0, time.Local)

	week := r.WeekStart(now)
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.Local), week)
}

func TestResolver_WeekStart_OnBoundaryDay(t *testing.T) {
	r := NewResolver(time.Sunday)
	// A Sunday maps to its own midnight
	now := time.Date(2024, 5, 12, 23, 59, 59, 0, time.Local)

	week := r.WeekStart(now)
	assert.Equal(t, time.Date(2024, 5, 12, 0, 0, 0, 0, time.Local), week)
}

func TestResolver_WeekStart_CrossesMonthBoundary(t *testing.T) {
	r := NewResolver(time.Sunday)
	// 2024-05-01 is a Wednesday; the preceding Sunday is 2024-04-28
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)

	week := r.WeekStart(now)
	assert.Equal(t, time.Date(2024, 4, 28, 0, 0, 0, 0, time.Local), week)
}

func TestResolver_MonthStart(t *testing.T) {
	r := NewResolver(time.Sunday)
	now := time.Date(2024, 5, 15, 14, 30, 45, 0, time.Local)

	month := r.MonthStart(now)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local), month)
}

func TestResolver_MonthStart_FirstOfMonth(t *testing.T) {
	r := NewResolver(time.Sunday)
	now := time.Date(2024, 5, 1, 0, 0, 0, 1, time.Local)

	month := r.MonthStart(now)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local), month)
}

func TestParseWeekday(t *testing.T) {
	wd, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, wd)

	wd, err = ParseWeekday("Sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, wd)

	_, err = ParseWeekday("someday")
	assert.Error(t, err)
}
