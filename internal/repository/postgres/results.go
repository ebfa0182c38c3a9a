package postgres

import (
	"database/sql"

	"idiomastery/internal/domain"

	"github.com/google/uuid"
)

// ResultRepo implements repository.ResultRepository
type ResultRepo struct {
	db *sql.DB
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// AddQuizResult appends a finished quiz to the user's log
func (r *ResultRepo) AddQuizResult(result domain.QuizResult) error {
	query := `
		INSERT INTO quiz_results (id, user_id, score, total_questions, taken_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(query,
		uuid.NewString(), result.UserID, result.Score, result.TotalQuestions, result.Timestamp,
	)
	return err
}

// AddMatchResult appends a finished match session to the user's log
func (r *ResultRepo) AddMatchResult(result domain.MatchResult) error {
	query := `
		INSERT INTO match_results (id, user_id, correct, wrong, highest_combo, played_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query,
		uuid.NewString(), result.UserID, result.Correct, result.Wrong, result.HighestCombo, result.Timestamp,
	)
	return err
}

// GetQuizAggregate summarizes the user's quiz history. The best result
// is the one with the highest score-to-total ratio; score and total
// come from that same row.
func (r *ResultRepo) GetQuizAggregate(userID int64) (domain.QuizAggregate, error) {
	var agg domain.QuizAggregate
	query := `
		SELECT
			(SELECT COUNT(*) FROM quiz_results WHERE user_id = $1),
			COALESCE(best.score, 0),
			COALESCE(best.total_questions, 0)
		FROM (SELECT 1) AS one
		LEFT JOIN (
			SELECT score, total_questions FROM quiz_results
			WHERE user_id = $1 AND total_questions > 0
			ORDER BY score::float / total_questions DESC, taken_at DESC
			LIMIT 1
		) AS best ON TRUE
	`
	err := r.db.QueryRow(query, userID).Scan(&agg.Taken, &agg.BestScore, &agg.BestTotal)
	return agg, err
}

// GetMatchAggregate summarizes the user's match history
func (r *ResultRepo) GetMatchAggregate(userID int64) (domain.MatchAggregate, error) {
	var agg domain.MatchAggregate
	query := `
		SELECT COUNT(*), COALESCE(MAX(highest_combo), 0)
		FROM match_results
		WHERE user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(&agg.Played, &agg.HighestCombo)
	return agg, err
}

// PruneOldResults deletes quiz and match results older than the given
// number of days
func (r *ResultRepo) PruneOldResults(days int) error {
	queries := []string{
		`DELETE FROM quiz_results WHERE taken_at < NOW() - INTERVAL '1 day' * $1`,
		`DELETE FROM match_results WHERE played_at < NOW() - INTERVAL '1 day' * $1`,
	}
	for _, query := range queries {
		if _, err := r.db.Exec(query, days); err != nil {
			return err
		}
	}
	return nil
}
