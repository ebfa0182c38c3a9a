package service

import (
	"errors"
	"fmt"
	"time"

	"idiomastery/internal/domain"
	"idiomastery/internal/repository"

	"go.uber.org/zap"
)

// ErrFetchCooldown is returned when the user asks for generated
// vocabulary before the cooldown window has passed
var ErrFetchCooldown = errors.New("vocabulary fetch cooldown is still active")

// VocabProvider produces new vocabulary rows for a topic
type VocabProvider interface {
	FetchEntries(topic string) ([]domain.Entry, error)
}

// CSVSource loads the bundled vocabulary asset
type CSVSource interface {
	Load() ([]domain.Entry, error)
}

// DictionaryService handles saved-entry business logic
type DictionaryService struct {
	dictRepo repository.DictionaryRepository
	userRepo repository.UserRepository
	vocab    VocabProvider
	csv      CSVSource
	cooldown time.Duration
	logger   *zap.Logger
}

// NewDictionaryService creates a new dictionary service
func NewDictionaryService(
	dictRepo repository.DictionaryRepository,
	userRepo repository.UserRepository,
	vocab VocabProvider,
	csv CSVSource,
	cooldown time.Duration,
	logger *zap.Logger,
) *DictionaryService {
	return &DictionaryService{
		dictRepo: dictRepo,
		userRepo: userRepo,
		vocab:    vocab,
		csv:      csv,
		cooldown: cooldown,
		logger:   logger,
	}
}

// SaveEntry validates and stores an entry, returning its generated id
func (s *DictionaryService) SaveEntry(entry domain.Entry) (string, error) {
	if entry.Translations.English == "" || entry.Translations.Spanish == "" {
		return "", fmt.Errorf("english and spanish translations cannot be empty")
	}
	return s.dictRepo.SaveEntry(entry)
}

// Entries returns all entries saved by the user
func (s *DictionaryService) Entries(userID int64) ([]domain.Entry, error) {
	return s.dictRepo.GetEntries(userID)
}

// EntriesByCategory returns the user's entries, optionally filtered.
// An empty or "All" category returns everything.
func (s *DictionaryService) EntriesByCategory(userID int64, category string) ([]domain.Entry, error) {
	if category == "" || category == "All" {
		return s.dictRepo.GetEntries(userID)
	}
	return s.dictRepo.GetEntriesByCategory(userID, category)
}

// Categories returns the distinct categories the user has entries in
func (s *DictionaryService) Categories(userID int64) ([]string, error) {
	return s.dictRepo.GetCategories(userID)
}

// Remove deletes one entry owned by the user
func (s *DictionaryService) Remove(userID int64, entryID string) error {
	return s.dictRepo.DeleteEntry(userID, entryID)
}

// Count returns how many entries the user has saved
func (s *DictionaryService) Count(userID int64) (int, error) {
	return s.dictRepo.CountEntries(userID)
}

// FetchFromAPI asks the generative endpoint for new vocabulary on the
// given topic and saves every returned row. Rate limited per user by
// the configured cooldown window.
func (s *DictionaryService) FetchFromAPI(userID int64, topic string, now time.Time) ([]domain.Entry, error) {
	if s.vocab == nil {
		return nil, fmt.Errorf("vocabulary fetching is not configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	lastFetch, err := s.userRepo.GetLastFetch(userID)
	if err != nil {
		return nil, err
	}
	if !lastFetch.IsZero() && now.Sub(lastFetch) < s.cooldown {
		return nil, ErrFetchCooldown
	}

	rows, err := s.vocab.FetchEntries(topic)
	if err != nil {
		return nil, err
	}

	saved := make([]domain.Entry, 0, len(rows))
	for _, row := range rows {
		row.UserID = userID
		id, err := s.dictRepo.SaveEntry(row)
		if err != nil {
			s.logger.Warn("Failed to save fetched entry",
				zap.Int64("user_id", userID),
				zap.String("english", row.Translations.English),
				zap.Error(err),
			)
			continue
		}
		row.ID = id
		saved = append(saved, row)
	}

	if err := s.userRepo.SetLastFetch(userID, now); err != nil {
		s.logger.Warn("Failed to stamp fetch time", zap.Int64("user_id", userID), zap.Error(err))
	}

	return saved, nil
}

// ImportCSV saves every row of the bundled CSV asset into the user's
// dictionary and returns how many were imported
func (s *DictionaryService) ImportCSV(userID int64) (int, error) {
	if s.csv == nil {
		return 0, fmt.Errorf("csv import is not configured")
	}

	rows, err := s.csv.Load()
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, row := range rows {
		row.UserID = userID
		if _, err := s.dictRepo.SaveEntry(row); err != nil {
			s.logger.Warn("Failed to import csv row",
				zap.Int64("user_id", userID),
				zap.String("english", row.Translations.English),
				zap.Error(err),
			)
			continue
		}
		imported++
	}

	return imported, nil
}
