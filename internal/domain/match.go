package domain

import "time"

// Side marks which column of the match board a card sits in
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// MatchSlots is the number of visible cards per column
const MatchSlots = 4

// Card is one visible cell of the match board. EntryID is the id of
// the dictionary entry the card was built from.
type Card struct {
	Text    string
	EntryID string
	Side    Side
	Slot    int
}

// MatchScores is the running score of a match session. HighestCombo
// never decreases within a session; Combo drops to 0 on a wrong pair.
type MatchScores struct {
	Correct      int
	Wrong        int
	Combo        int
	HighestCombo int
}

// MatchResult is an append-only record of a finished match session
type MatchResult struct {
	ID           string
	UserID       int64
	Correct      int
	Wrong        int
	HighestCombo int
	Timestamp    time.Time
}

// MatchAggregate summarizes a user's match history
type MatchAggregate struct {
	Played       int
	HighestCombo int
}
