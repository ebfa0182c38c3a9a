package service

import (
	"errors"
	"testing"

	"idiomastery/internal/domain"
	"idiomastery/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestStatsService_Dashboard(t *testing.T) {
	dictRepo := new(testutil.MockDictionaryRepository)
	resultRepo := new(testutil.MockResultRepository)
	streakRepo := new(testutil.MockStreakRepository)
	streaks := NewStreakService(streakRepo, testutil.NewTestLogger())

	svc := NewStatsService(dictRepo, resultRepo, streaks, 365, testutil.NewTestLogger())

	dictRepo.On("CountEntries", int64(123)).Return(42, nil)
	resultRepo.On("GetQuizAggregate", int64(123)).Return(domain.QuizAggregate{Taken: 5, BestScore: 9, BestTotal: 10}, nil)
	resultRepo.On("GetMatchAggregate", int64(123)).Return(domain.MatchAggregate{Played: 3, HighestCombo: 8}, nil)
	streakRepo.On("GetStreak", int64(123)).Return(&domain.Streak{CurrentStreak: 6, LastActiveDate: "2025-01-02"}, nil)

	stats, err := svc.Dashboard(123)

	assert.NoError(t, err)
	assert.Equal(t, domain.DashboardStats{
		TotalEntries:  42,
		QuizzesTaken:  5,
		BestScore:     9,
		BestTotal:     10,
		MatchesPlayed: 3,
		HighestCombo:  8,
		CurrentStreak: 6,
	}, stats)
}

func TestStatsService_CleanupOldResults(t *testing.T) {
	tests := []struct {
		name        string
		pruneErr    error
		expectError bool
	}{
		{
			name: "successful cleanup",
		},
		{
			name:        "prune fails",
			pruneErr:    errors.New("db down"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resultRepo := new(testutil.MockResultRepository)
			svc := NewStatsService(nil, resultRepo, nil, 90, testutil.NewTestLogger())

			resultRepo.On("PruneOldResults", 90).Return(tt.pruneErr)

			err := svc.CleanupOldResults()

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			resultRepo.AssertExpectations(t)
		})
	}
}
