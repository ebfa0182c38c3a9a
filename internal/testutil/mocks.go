package testutil

import (
	"time"

	"idiomastery/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(userID int64) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(userID int64, displayName, photoURL string) error {
	args := m.Called(userID, displayName, photoURL)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetLastFetch(userID int64) (time.Time, error) {
	args := m.Called(userID)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockUserRepository) SetLastFetch(userID int64, at time.Time) error {
	args := m.Called(userID, at)
	return args.Error(0)
}

// MockDictionaryRepository is a mock for DictionaryRepository
type MockDictionaryRepository struct {
	mock.Mock
}

func (m *MockDictionaryRepository) SaveEntry(entry domain.Entry) (string, error) {
	args := m.Called(entry)
	return args.String(0), args.Error(1)
}

func (m *MockDictionaryRepository) GetEntries(userID int64) ([]domain.Entry, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockDictionaryRepository) GetEntriesByCategory(userID int64, category string) ([]domain.Entry, error) {
	args := m.Called(userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockDictionaryRepository) GetCategories(userID int64) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDictionaryRepository) DeleteEntry(userID int64, entryID string) error {
	args := m.Called(userID, entryID)
	return args.Error(0)
}

func (m *MockDictionaryRepository) CountEntries(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

// MockResultRepository is a mock for ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) AddQuizResult(result domain.QuizResult) error {
	args := m.Called(result)
	return args.Error(0)
}

func (m *MockResultRepository) AddMatchResult(result domain.MatchResult) error {
	args := m.Called(result)
	return args.Error(0)
}

func (m *MockResultRepository) GetQuizAggregate(userID int64) (domain.QuizAggregate, error) {
	args := m.Called(userID)
	return args.Get(0).(domain.QuizAggregate), args.Error(1)
}

func (m *MockResultRepository) GetMatchAggregate(userID int64) (domain.MatchAggregate, error) {
	args := m.Called(userID)
	return args.Get(0).(domain.MatchAggregate), args.Error(1)
}

func (m *MockResultRepository) PruneOldResults(days int) error {
	args := m.Called(days)
	return args.Error(0)
}

// MockStreakRepository is a mock for StreakRepository
type MockStreakRepository struct {
	mock.Mock
}

func (m *MockStreakRepository) GetStreak(userID int64) (*domain.Streak, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Streak), args.Error(1)
}

func (m *MockStreakRepository) SetStreak(userID int64, streak domain.Streak) error {
	args := m.Called(userID, streak)
	return args.Error(0)
}
