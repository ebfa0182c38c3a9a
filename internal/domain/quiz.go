package domain

import "time"

// Question is a single multiple-choice quiz question. Options always
// contains the correct translation exactly once.
type Question struct {
	Word               string
	CorrectTranslation string
	Options            []string
	SourceLang         Language
	TargetLang         Language
	UserAnswer         *string
}

// Answered reports whether the user has answered this question
func (q *Question) Answered() bool {
	return q.UserAnswer != nil
}

// AnsweredCorrectly reports whether the recorded answer matches the
// correct translation
func (q *Question) AnsweredCorrectly() bool {
	return q.UserAnswer != nil && *q.UserAnswer == q.CorrectTranslation
}

// QuizResult is an append-only record of a finished quiz
type QuizResult struct {
	ID             string
	UserID         int64
	Score          int
	TotalQuestions int
	Timestamp      time.Time
}

// QuizAggregate summarizes a user's quiz history
type QuizAggregate struct {
	Taken     int
	BestScore int
	BestTotal int
}
