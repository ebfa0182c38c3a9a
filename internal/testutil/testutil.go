package testutil

import (
	"fmt"
	"time"

	"idiomastery/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestEntry creates a test dictionary entry
func NewTestEntry(id string, userID int64, polish, english, spanish string) domain.Entry {
	return domain.Entry{
		ID:     id,
		UserID: userID,
		Translations: domain.Translations{
			Polish:  polish,
			English: english,
			Spanish: spanish,
		},
		CreatedAt: time.Now(),
	}
}

// NewTestEntries creates n distinct test entries
func NewTestEntries(userID int64, n int) []domain.Entry {
	entries := make([]domain.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, NewTestEntry(
			fmt.Sprintf("id-%d", i),
			userID,
			fmt.Sprintf("polski_%d", i),
			fmt.Sprintf("english_%d", i),
			fmt.Sprintf("espanol_%d", i),
		))
	}
	return entries
}
