package domain

import "time"

// Translations holds one text per supported language
type Translations struct {
	Polish  string
	English string
	Spanish string
}

// Get returns the text for the given language
func (t Translations) Get(lang Language) string {
	switch lang {
	case Polish:
		return t.Polish
	case English:
		return t.English
	case Spanish:
		return t.Spanish
	}
	return ""
}

// Entry is a saved word owned by a user. ID is assigned by the store
// on creation and never changes afterwards.
type Entry struct {
	ID           string
	UserID       int64
	Category     string
	Translations Translations
	Sentences    Translations
	Definitions  Translations
	CreatedAt    time.Time
}
