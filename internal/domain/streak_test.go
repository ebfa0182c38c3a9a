package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected string
	}{
		{
			name:     "date 2025-01-02",
			now:      time.Date(2025, 1, 2, 10, 30, 0, 0, time.UTC),
			expected: "2025-01-02",
		},
		{
			name:     "midnight",
			now:      time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			expected: "2024-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Today(tt.now))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name        string
		from        string
		to          string
		expected    int
		expectError bool
	}{
		{
			name:     "consecutive days",
			from:     "2025-01-01",
			to:       "2025-01-02",
			expected: 1,
		},
		{
			name:     "same day",
			from:     "2025-01-01",
			to:       "2025-01-01",
			expected: 0,
		},
		{
			name:     "three day gap",
			from:     "2025-01-01",
			to:       "2025-01-04",
			expected: 3,
		},
		{
			name:     "across month boundary",
			from:     "2025-01-31",
			to:       "2025-02-01",
			expected: 1,
		},
		{
			name:     "across year boundary",
			from:     "2024-12-31",
			to:       "2025-01-01",
			expected: 1,
		},
		{
			name:     "backwards",
			from:     "2025-01-05",
			to:       "2025-01-02",
			expected: -3,
		},
		{
			name:        "malformed from date",
			from:        "yesterday",
			to:          "2025-01-02",
			expectError: true,
		},
		{
			name:        "malformed to date",
			from:        "2025-01-02",
			to:          "02/01/2025",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := DaysBetween(tt.from, tt.to)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, days)
			}
		})
	}
}
