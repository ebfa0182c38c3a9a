package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format streaks are recorded in
const DateLayout = "2006-01-02"

// Streak is the per-user consecutive-day counter singleton
type Streak struct {
	CurrentStreak  int
	LastActiveDate string
}

// Today formats the given time as an ISO date
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// DaysBetween returns the number of calendar days from one ISO date
// to another. Negative when "to" precedes "from".
func DaysBetween(from, to string) (int, error) {
	f, err := time.Parse(DateLayout, from)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", from, err)
	}
	t, err := time.Parse(DateLayout, to)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", to, err)
	}
	return int(t.Sub(f).Hours() / 24), nil
}
