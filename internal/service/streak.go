package service

import (
	"idiomastery/internal/domain"
	"idiomastery/internal/repository"

	"go.uber.org/zap"
)

// StreakService maintains the per-user consecutive-day counter
type StreakService struct {
	streakRepo repository.StreakRepository
	logger     *zap.Logger
}

// NewStreakService creates a new streak service
func NewStreakService(streakRepo repository.StreakRepository, logger *zap.Logger) *StreakService {
	return &StreakService{
		streakRepo: streakRepo,
		logger:     logger,
	}
}

// Update credits the given ISO date towards the user's streak. Same-day
// repeats are a no-op, the day after the last active date extends the
// streak, and any longer gap resets it to 1.
func (s *StreakService) Update(userID int64, today string) error {
	current, err := s.streakRepo.GetStreak(userID)
	if err != nil {
		return err
	}

	next := domain.Streak{CurrentStreak: 1, LastActiveDate: today}

	if current != nil {
		if current.LastActiveDate == today {
			// Already credited today
			return nil
		}

		days, err := domain.DaysBetween(current.LastActiveDate, today)
		if err != nil {
			// Unparseable stored date: start over rather than fail the caller
			s.logger.Warn("Resetting streak with malformed last active date",
				zap.Int64("user_id", userID),
				zap.String("last_active_date", current.LastActiveDate),
				zap.Error(err),
			)
		} else if days <= 1 {
			next.CurrentStreak = current.CurrentStreak + 1
		}
	}

	return s.streakRepo.SetStreak(userID, next)
}

// Current returns the user's streak count, 0 when none is recorded
func (s *StreakService) Current(userID int64) (int, error) {
	streak, err := s.streakRepo.GetStreak(userID)
	if err != nil {
		return 0, err
	}
	if streak == nil {
		return 0, nil
	}
	return streak.CurrentStreak, nil
}
