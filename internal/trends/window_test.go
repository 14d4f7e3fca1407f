package trends

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTargetDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	target := TargetDate(now, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), target)
}

func TestTargetDate_RespectsTimezone(t *testing.T) {
	// 00:30 UTC on the 15th is still the 14th in a UTC-2 zone, so the
	// target day there is the 13th.
	loc := time.FixedZone("UTC-2", -2*60*60)
	now := time.Date(2024, 3, 15, 0, 30, 0, 0, time.UTC)

	target := TargetDate(now, loc)

	assert.Equal(t, 13, target.Day())
	assert.Equal(t, time.March, target.Month())
}

func TestTargetDate_MonthBoundary(t *testing.T) {
	now := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)

	target := TargetDate(now, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), target)
}

func TestInWindow(t *testing.T) {
	target := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ts       time.Time
		expected bool
	}{
		{
			name:     "Midnight at start of day belongs to the day",
			ts:       time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			expected: true,
		},
		{
			name:     "Last instant of the day belongs to the day",
			ts:       time.Date(2024, 3, 14, 23, 59, 59, 0, time.UTC),
			expected: true,
		},
		{
			name:     "Midnight of the next day does not",
			ts:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "Previous day does not",
			ts:       time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InWindow(tt.ts, target, time.UTC))
		})
	}
}

func TestInWindow_ConvertsToLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	target := time.Date(2024, 3, 14, 0, 0, 0, 0, loc)

	// 22:30 UTC on the 13th is 01:30 on the 14th in UTC+3
	ts := time.Date(2024, 3, 13, 22, 30, 0, 0, time.UTC)

	assert.True(t, InWindow(ts, target, loc))
	assert.False(t, InWindow(ts, target, time.UTC))
}
