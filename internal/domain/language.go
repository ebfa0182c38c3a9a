package domain

import (
	"fmt"
	"strings"
)

// Language is one of the three supported vocabulary languages
type Language string

const (
	Polish  Language = "polish"
	English Language = "english"
	Spanish Language = "spanish"
)

// ParseLanguage parses a language name (case-insensitive)
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case Polish:
		return Polish, nil
	case English:
		return English, nil
	case Spanish:
		return Spanish, nil
	}
	return "", fmt.Errorf("unknown language: %q", s)
}

// Mode is a practice direction, e.g. "english-spanish"
type Mode string

const (
	ModePolishSpanish  Mode = "polish-spanish"
	ModeSpanishPolish  Mode = "spanish-polish"
	ModeEnglishSpanish Mode = "english-spanish"
	ModeSpanishEnglish Mode = "spanish-english"
)

// Modes lists all supported practice directions
var Modes = []Mode{ModePolishSpanish, ModeSpanishPolish, ModeEnglishSpanish, ModeSpanishEnglish}

// ParseMode parses a practice direction string
func ParseMode(s string) (Mode, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "-", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid mode: %q", s)
	}

	source, err := ParseLanguage(parts[0])
	if err != nil {
		return "", fmt.Errorf("invalid mode: %q: %w", s, err)
	}
	target, err := ParseLanguage(parts[1])
	if err != nil {
		return "", fmt.Errorf("invalid mode: %q: %w", s, err)
	}
	if source == target {
		return "", fmt.Errorf("invalid mode: %q: source and target are equal", s)
	}

	return Mode(string(source) + "-" + string(target)), nil
}

// Source returns the language the prompt word is shown in
func (m Mode) Source() Language {
	parts := strings.SplitN(string(m), "-", 2)
	return Language(parts[0])
}

// Target returns the language the user has to produce
func (m Mode) Target() Language {
	parts := strings.SplitN(string(m), "-", 2)
	if len(parts) != 2 {
		return ""
	}
	return Language(parts[1])
}
