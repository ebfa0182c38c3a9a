package domain

import "time"

// User represents a bot user
type User struct {
	UserID      int64
	Authorized  bool
	DisplayName string
	PhotoURL    string
	CreatedAt   time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle                  UserState = "idle"
	StateWaitingPassword       UserState = "waiting_password"
	StateWaitingWord           UserState = "waiting_word"
	StateWaitingTranslation    UserState = "waiting_translation"
	StateWaitingTopic          UserState = "waiting_topic"
	StateWaitingDisplayName    UserState = "waiting_display_name"
	StateWaitingDeletePassword UserState = "waiting_delete_password"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State       UserState
	CurrentWord string
	MessageID   int // For editing messages
}
