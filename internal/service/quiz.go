package service

import (
	"fmt"
	"math/rand"
	"time"

	"idiomastery/internal/domain"
	"idiomastery/internal/repository"

	"go.uber.org/zap"
)

// QuizSession tracks one run through a generated question sequence
type QuizSession struct {
	UserID    int64
	Questions []domain.Question
	Index     int
	Score     int
	StartedAt time.Time
	EndedAt   time.Time
}

// Finished reports whether every question has been answered
func (s *QuizSession) Finished() bool {
	return s.Index >= len(s.Questions)
}

// Current returns the question awaiting an answer, or nil when done
func (s *QuizSession) Current() *domain.Question {
	if s.Finished() {
		return nil
	}
	return &s.Questions[s.Index]
}

// QuizService generates multiple-choice quizzes and records results
type QuizService struct {
	resultRepo  repository.ResultRepository
	streaks     *StreakService
	distractors int
	rng         *rand.Rand
	logger      *zap.Logger
}

// NewQuizService creates a new quiz service. distractors is how many
// wrong options accompany the correct translation.
func NewQuizService(
	resultRepo repository.ResultRepository,
	streaks *StreakService,
	distractors int,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		resultRepo:  resultRepo,
		streaks:     streaks,
		distractors: distractors,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:      logger,
	}
}

// Generate builds numQuestions questions from the entry pool. The pool
// must be at least numQuestions large.
func (s *QuizService) Generate(entries []domain.Entry, numQuestions int, mode domain.Mode) ([]domain.Question, error) {
	if numQuestions <= 0 {
		return nil, fmt.Errorf("question count must be positive")
	}
	if len(entries) < numQuestions {
		return nil, fmt.Errorf("not enough saved words: have %d, need %d", len(entries), numQuestions)
	}

	source := mode.Source()
	target := mode.Target()

	selected := make([]domain.Entry, len(entries))
	copy(selected, entries)
	s.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	selected = selected[:numQuestions]

	questions := make([]domain.Question, 0, numQuestions)
	for _, entry := range selected {
		correct := entry.Translations.Get(target)
		questions = append(questions, domain.Question{
			Word:               entry.Translations.Get(source),
			CorrectTranslation: correct,
			Options:            s.buildOptions(entries, entry.ID, correct, target),
			SourceLang:         source,
			TargetLang:         target,
		})
	}

	return questions, nil
}

// buildOptions picks distractors from other entries by rejection
// sampling, padding with placeholders when the pool runs dry, and
// shuffles the correct answer in among them.
func (s *QuizService) buildOptions(entries []domain.Entry, entryID, correct string, target domain.Language) []string {
	others := make([]domain.Entry, 0, len(entries)-1)
	for _, e := range entries {
		if e.ID != entryID {
			others = append(others, e)
		}
	}

	seen := map[string]bool{correct: true}
	distractors := make([]string, 0, s.distractors)
	for len(distractors) < s.distractors && len(others) > 0 {
		i := s.rng.Intn(len(others))
		option := others[i].Translations.Get(target)
		others = append(others[:i], others[i+1:]...)

		if option == "" || seen[option] {
			continue
		}
		seen[option] = true
		distractors = append(distractors, option)
	}

	// Degraded but defined: too few real candidates
	for len(distractors) < s.distractors {
		distractors = append(distractors, fmt.Sprintf("incorrect_%d", len(distractors)+1))
	}

	options := append([]string{correct}, distractors...)
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}

// NewSession generates questions and starts a session over them
func (s *QuizService) NewSession(userID int64, entries []domain.Entry, numQuestions int, mode domain.Mode) (*QuizSession, error) {
	questions, err := s.Generate(entries, numQuestions, mode)
	if err != nil {
		return nil, err
	}

	return &QuizSession{
		UserID:    userID,
		Questions: questions,
		StartedAt: time.Now(),
	}, nil
}

// Answer records the user's answer to the current question and
// advances the session. On the last question it finalizes: the result
// is persisted and the streak updated, both fire-and-forget. Returns
// true when the session is finished.
func (s *QuizService) Answer(session *QuizSession, answer string) bool {
	question := session.Current()
	if question == nil {
		return true
	}

	question.UserAnswer = &answer
	if question.AnsweredCorrectly() {
		session.Score++
	}
	session.Index++

	if !session.Finished() {
		return false
	}

	session.EndedAt = time.Now()
	s.finalize(session)
	return true
}

// finalize persists the result and credits the streak. Failures are
// logged and never roll back the in-memory score.
func (s *QuizService) finalize(session *QuizSession) {
	result := domain.QuizResult{
		UserID:         session.UserID,
		Score:          session.Score,
		TotalQuestions: len(session.Questions),
		Timestamp:      session.EndedAt,
	}

	if err := s.resultRepo.AddQuizResult(result); err != nil {
		s.logger.Warn("Failed to save quiz result",
			zap.Int64("user_id", session.UserID),
			zap.Error(err),
		)
	}

	if err := s.streaks.Update(session.UserID, domain.Today(session.EndedAt)); err != nil {
		s.logger.Warn("Failed to update streak",
			zap.Int64("user_id", session.UserID),
			zap.Error(err),
		)
	}
}
