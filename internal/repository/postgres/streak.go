package postgres

import (
	"database/sql"

	"idiomastery/internal/domain"
)

// StreakRepo implements repository.StreakRepository
type StreakRepo struct {
	db *sql.DB
}

// NewStreakRepo creates a new streak repository
func NewStreakRepo(db *sql.DB) *StreakRepo {
	return &StreakRepo{db: db}
}

// GetStreak returns the user's streak, or nil when none is recorded
func (r *StreakRepo) GetStreak(userID int64) (*domain.Streak, error) {
	var s domain.Streak
	query := `SELECT current_streak, last_active_date FROM streaks WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&s.CurrentStreak, &s.LastActiveDate)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// SetStreak writes the user's streak singleton
func (r *StreakRepo) SetStreak(userID int64, streak domain.Streak) error {
	query := `
		INSERT INTO streaks (user_id, current_streak, last_active_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET current_streak = $2, last_active_date = $3
	`
	_, err := r.db.Exec(query, userID, streak.CurrentStreak, streak.LastActiveDate)
	return err
}
