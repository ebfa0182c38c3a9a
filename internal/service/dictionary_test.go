package service

import (
	"errors"
	"testing"
	"time"

	"idiomastery/internal/domain"
	"idiomastery/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubVocabProvider struct {
	entries []domain.Entry
	err     error
	topic   string
}

func (s *stubVocabProvider) FetchEntries(topic string) ([]domain.Entry, error) {
	s.topic = topic
	return s.entries, s.err
}

type stubCSVSource struct {
	entries []domain.Entry
	err     error
}

func (s *stubCSVSource) Load() ([]domain.Entry, error) {
	return s.entries, s.err
}

func TestDictionaryService_SaveEntry(t *testing.T) {
	tests := []struct {
		name        string
		entry       domain.Entry
		expectError bool
	}{
		{
			name:  "valid entry",
			entry: testutil.NewTestEntry("", 123, "biegać", "run", "correr"),
		},
		{
			name:        "missing english",
			entry:       testutil.NewTestEntry("", 123, "biegać", "", "correr"),
			expectError: true,
		},
		{
			name:        "missing spanish",
			entry:       testutil.NewTestEntry("", 123, "biegać", "run", ""),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dictRepo := new(testutil.MockDictionaryRepository)
			svc := NewDictionaryService(dictRepo, nil, nil, nil, time.Minute, testutil.NewTestLogger())

			if !tt.expectError {
				dictRepo.On("SaveEntry", tt.entry).Return("generated-id", nil)
			}

			id, err := svc.SaveEntry(tt.entry)

			if tt.expectError {
				assert.Error(t, err)
				dictRepo.AssertNotCalled(t, "SaveEntry")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "generated-id", id)
			}
		})
	}
}

func TestDictionaryService_FetchFromAPI(t *testing.T) {
	now := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

	t.Run("cooldown active", func(t *testing.T) {
		dictRepo := new(testutil.MockDictionaryRepository)
		userRepo := new(testutil.MockUserRepository)
		vocab := &stubVocabProvider{}
		svc := NewDictionaryService(dictRepo, userRepo, vocab, nil, time.Minute, testutil.NewTestLogger())

		userRepo.On("GetLastFetch", int64(123)).Return(now.Add(-30*time.Second), nil)

		entries, err := svc.FetchFromAPI(123, "food", now)

		assert.ErrorIs(t, err, ErrFetchCooldown)
		assert.Nil(t, entries)
		assert.Empty(t, vocab.topic, "provider must not be called during cooldown")
	})

	t.Run("cooldown passed", func(t *testing.T) {
		dictRepo := new(testutil.MockDictionaryRepository)
		userRepo := new(testutil.MockUserRepository)
		vocab := &stubVocabProvider{entries: testutil.NewTestEntries(0, 2)}
		svc := NewDictionaryService(dictRepo, userRepo, vocab, nil, time.Minute, testutil.NewTestLogger())

		userRepo.On("GetLastFetch", int64(123)).Return(now.Add(-2*time.Minute), nil)
		dictRepo.On("SaveEntry", mock.AnythingOfType("domain.Entry")).Return("generated-id", nil).Times(2)
		userRepo.On("SetLastFetch", int64(123), now).Return(nil)

		entries, err := svc.FetchFromAPI(123, "food", now)

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, "food", vocab.topic)
		for _, e := range entries {
			assert.Equal(t, int64(123), e.UserID)
			assert.Equal(t, "generated-id", e.ID)
		}
		dictRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("never fetched before", func(t *testing.T) {
		dictRepo := new(testutil.MockDictionaryRepository)
		userRepo := new(testutil.MockUserRepository)
		vocab := &stubVocabProvider{entries: testutil.NewTestEntries(0, 1)}
		svc := NewDictionaryService(dictRepo, userRepo, vocab, nil, time.Minute, testutil.NewTestLogger())

		userRepo.On("GetLastFetch", int64(123)).Return(time.Time{}, nil)
		dictRepo.On("SaveEntry", mock.AnythingOfType("domain.Entry")).Return("generated-id", nil)
		userRepo.On("SetLastFetch", int64(123), now).Return(nil)

		entries, err := svc.FetchFromAPI(123, "food", now)

		assert.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("provider error", func(t *testing.T) {
		dictRepo := new(testutil.MockDictionaryRepository)
		userRepo := new(testutil.MockUserRepository)
		vocab := &stubVocabProvider{err: errors.New("upstream 500")}
		svc := NewDictionaryService(dictRepo, userRepo, vocab, nil, time.Minute, testutil.NewTestLogger())

		userRepo.On("GetLastFetch", int64(123)).Return(time.Time{}, nil)

		_, err := svc.FetchFromAPI(123, "food", now)

		assert.Error(t, err)
		dictRepo.AssertNotCalled(t, "SaveEntry")
		userRepo.AssertNotCalled(t, "SetLastFetch")
	})

	t.Run("not configured", func(t *testing.T) {
		svc := NewDictionaryService(nil, nil, nil, nil, time.Minute, testutil.NewTestLogger())

		_, err := svc.FetchFromAPI(123, "food", now)

		assert.Error(t, err)
	})
}

func TestDictionaryService_ImportCSV(t *testing.T) {
	t.Run("imports all rows", func(t *testing.T) {
		dictRepo := new(testutil.MockDictionaryRepository)
		csv := &stubCSVSource{entries: testutil.NewTestEntries(0, 3)}
		svc := NewDictionaryService(dictRepo, nil, nil, csv, time.Minute, testutil.NewTestLogger())

		dictRepo.On("SaveEntry", mock.AnythingOfType("domain.Entry")).Return("generated-id", nil).Times(3)

		imported, err := svc.ImportCSV(123)

		assert.NoError(t, err)
		assert.Equal(t, 3, imported)
		dictRepo.AssertExpectations(t)
	})

	t.Run("skips failed rows", func(t *testing.T) {
		dictRepo := new(testutil.MockDictionaryRepository)
		csv := &stubCSVSource{entries: testutil.NewTestEntries(0, 2)}
		svc := NewDictionaryService(dictRepo, nil, nil, csv, time.Minute, testutil.NewTestLogger())

		dictRepo.On("SaveEntry", mock.AnythingOfType("domain.Entry")).Return("", errors.New("boom")).Once()
		dictRepo.On("SaveEntry", mock.AnythingOfType("domain.Entry")).Return("generated-id", nil).Once()

		imported, err := svc.ImportCSV(123)

		assert.NoError(t, err)
		assert.Equal(t, 1, imported)
	})

	t.Run("load error", func(t *testing.T) {
		csv := &stubCSVSource{err: errors.New("file not found")}
		svc := NewDictionaryService(nil, nil, nil, csv, time.Minute, testutil.NewTestLogger())

		_, err := svc.ImportCSV(123)

		assert.Error(t, err)
	})
}

func TestDictionaryService_EntriesByCategory(t *testing.T) {
	entries := testutil.NewTestEntries(123, 2)

	tests := []struct {
		name     string
		category string
		byCat    bool
	}{
		{name: "all pseudo-category", category: "All"},
		{name: "empty category", category: ""},
		{name: "specific category", category: "food", byCat: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dictRepo := new(testutil.MockDictionaryRepository)
			svc := NewDictionaryService(dictRepo, nil, nil, nil, time.Minute, testutil.NewTestLogger())

			if tt.byCat {
				dictRepo.On("GetEntriesByCategory", int64(123), tt.category).Return(entries, nil)
			} else {
				dictRepo.On("GetEntries", int64(123)).Return(entries, nil)
			}

			got, err := svc.EntriesByCategory(123, tt.category)

			assert.NoError(t, err)
			assert.Equal(t, entries, got)
			dictRepo.AssertExpectations(t)
		})
	}
}
