package service

import (
	"errors"
	"testing"

	"idiomastery/internal/domain"
	"idiomastery/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestStreakService_Update(t *testing.T) {
	tests := []struct {
		name      string
		today     string
		stored    *domain.Streak
		expectSet *domain.Streak
	}{
		{
			name:      "first ever activity",
			today:     "2025-01-02",
			stored:    nil,
			expectSet: &domain.Streak{CurrentStreak: 1, LastActiveDate: "2025-01-02"},
		},
		{
			name:      "consecutive day increments",
			today:     "2025-01-02",
			stored:    &domain.Streak{CurrentStreak: 3, LastActiveDate: "2025-01-01"},
			expectSet: &domain.Streak{CurrentStreak: 4, LastActiveDate: "2025-01-02"},
		},
		{
			name:      "same day is a no-op",
			today:     "2025-01-02",
			stored:    &domain.Streak{CurrentStreak: 4, LastActiveDate: "2025-01-02"},
			expectSet: nil,
		},
		{
			name:      "three day gap resets",
			today:     "2025-01-05",
			stored:    &domain.Streak{CurrentStreak: 4, LastActiveDate: "2025-01-02"},
			expectSet: &domain.Streak{CurrentStreak: 1, LastActiveDate: "2025-01-05"},
		},
		{
			name:      "malformed stored date resets",
			today:     "2025-01-05",
			stored:    &domain.Streak{CurrentStreak: 4, LastActiveDate: "garbage"},
			expectSet: &domain.Streak{CurrentStreak: 1, LastActiveDate: "2025-01-05"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockStreakRepository)
			svc := NewStreakService(repo, testutil.NewTestLogger())

			if tt.stored != nil {
				repo.On("GetStreak", int64(123)).Return(tt.stored, nil)
			} else {
				repo.On("GetStreak", int64(123)).Return(nil, nil)
			}
			if tt.expectSet != nil {
				repo.On("SetStreak", int64(123), *tt.expectSet).Return(nil)
			}

			err := svc.Update(123, tt.today)

			assert.NoError(t, err)
			repo.AssertExpectations(t)
			if tt.expectSet == nil {
				repo.AssertNotCalled(t, "SetStreak")
			}
		})
	}
}

func TestStreakService_Update_ReadError(t *testing.T) {
	repo := new(testutil.MockStreakRepository)
	svc := NewStreakService(repo, testutil.NewTestLogger())

	repo.On("GetStreak", int64(123)).Return(nil, errors.New("db down"))

	err := svc.Update(123, "2025-01-02")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "SetStreak")
}

func TestStreakService_Current(t *testing.T) {
	tests := []struct {
		name     string
		stored   *domain.Streak
		expected int
	}{
		{
			name:     "existing streak",
			stored:   &domain.Streak{CurrentStreak: 7, LastActiveDate: "2025-01-02"},
			expected: 7,
		},
		{
			name:     "no streak recorded",
			stored:   nil,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockStreakRepository)
			svc := NewStreakService(repo, testutil.NewTestLogger())

			if tt.stored != nil {
				repo.On("GetStreak", int64(123)).Return(tt.stored, nil)
			} else {
				repo.On("GetStreak", int64(123)).Return(nil, nil)
			}

			current, err := svc.Current(123)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, current)
		})
	}
}
