package service

import (
	"idiomastery/internal/domain"
	"idiomastery/internal/repository"

	"go.uber.org/zap"
)

// StatsService handles dashboard aggregates and result retention
type StatsService struct {
	dictRepo      repository.DictionaryRepository
	resultRepo    repository.ResultRepository
	streaks       *StreakService
	retentionDays int
	logger        *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(
	dictRepo repository.DictionaryRepository,
	resultRepo repository.ResultRepository,
	streaks *StreakService,
	retentionDays int,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		dictRepo:      dictRepo,
		resultRepo:    resultRepo,
		streaks:       streaks,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Dashboard collects the user's learning summary
func (s *StatsService) Dashboard(userID int64) (domain.DashboardStats, error) {
	var stats domain.DashboardStats

	total, err := s.dictRepo.CountEntries(userID)
	if err != nil {
		return stats, err
	}
	stats.TotalEntries = total

	quiz, err := s.resultRepo.GetQuizAggregate(userID)
	if err != nil {
		return stats, err
	}
	stats.QuizzesTaken = quiz.Taken
	stats.BestScore = quiz.BestScore
	stats.BestTotal = quiz.BestTotal

	match, err := s.resultRepo.GetMatchAggregate(userID)
	if err != nil {
		return stats, err
	}
	stats.MatchesPlayed = match.Played
	stats.HighestCombo = match.HighestCombo

	streak, err := s.streaks.Current(userID)
	if err != nil {
		return stats, err
	}
	stats.CurrentStreak = streak

	return stats, nil
}

// CleanupOldResults prunes quiz and match results past the retention
// window
func (s *StatsService) CleanupOldResults() error {
	s.logger.Info("Starting cleanup of old results", zap.Int("retention_days", s.retentionDays))

	if err := s.resultRepo.PruneOldResults(s.retentionDays); err != nil {
		s.logger.Error("Failed to cleanup old results", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}
