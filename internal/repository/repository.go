package repository

import (
	"time"

	"idiomastery/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	EnsureUserExists(userID int64) error
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	GetUser(userID int64) (*domain.User, error)
	UpdateProfile(userID int64, displayName, photoURL string) error
	DeleteUser(userID int64) error
	GetLastFetch(userID int64) (time.Time, error)
	SetLastFetch(userID int64, at time.Time) error
}

// DictionaryRepository defines saved-entry data operations
type DictionaryRepository interface {
	SaveEntry(entry domain.Entry) (string, error)
	GetEntries(userID int64) ([]domain.Entry, error)
	GetEntriesByCategory(userID int64, category string) ([]domain.Entry, error)
	GetCategories(userID int64) ([]string, error)
	DeleteEntry(userID int64, entryID string) error
	CountEntries(userID int64) (int, error)
}

// ResultRepository defines the append-only quiz/match result logs
type ResultRepository interface {
	AddQuizResult(result domain.QuizResult) error
	AddMatchResult(result domain.MatchResult) error
	GetQuizAggregate(userID int64) (domain.QuizAggregate, error)
	GetMatchAggregate(userID int64) (domain.MatchAggregate, error)
	PruneOldResults(days int) error
}

// StreakRepository defines the per-user streak singleton
type StreakRepository interface {
	// GetStreak returns nil when the user has no streak recorded yet
	GetStreak(userID int64) (*domain.Streak, error)
	SetStreak(userID int64, streak domain.Streak) error
}
