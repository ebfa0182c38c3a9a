package postgres

import (
	"database/sql"
	"time"

	"idiomastery/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUserExists creates user if not exists
func (r *UserRepo) EnsureUserExists(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, FALSE)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// IsAuthorized checks if user is authorized
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	var authorized bool
	query := `SELECT authorized FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&authorized)

	if err == sql.ErrNoRows {
		// User doesn't exist yet
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return authorized, nil
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// GetUser returns the user's profile, or nil if unknown
func (r *UserRepo) GetUser(userID int64) (*domain.User, error) {
	var u domain.User
	query := `
		SELECT user_id, authorized, display_name, photo_url, created_at
		FROM users
		WHERE user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(
		&u.UserID, &u.Authorized, &u.DisplayName, &u.PhotoURL, &u.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// UpdateProfile sets the user's display name and photo URL
func (r *UserRepo) UpdateProfile(userID int64, displayName, photoURL string) error {
	query := `
		UPDATE users
		SET display_name = $2, photo_url = $3
		WHERE user_id = $1
	`
	_, err := r.db.Exec(query, userID, displayName, photoURL)
	return err
}

// DeleteUser removes the user and, via cascading foreign keys, every
// dictionary entry, result and streak they own
func (r *UserRepo) DeleteUser(userID int64) error {
	query := `DELETE FROM users WHERE user_id = $1`
	_, err := r.db.Exec(query, userID)
	return err
}

// GetLastFetch returns when the user last fetched generated vocabulary.
// Zero time when they never have.
func (r *UserRepo) GetLastFetch(userID int64) (time.Time, error) {
	var lastFetch sql.NullTime
	query := `SELECT last_fetch_at FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&lastFetch)

	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	if !lastFetch.Valid {
		return time.Time{}, nil
	}
	return lastFetch.Time, nil
}

// SetLastFetch stamps the user's vocabulary fetch time
func (r *UserRepo) SetLastFetch(userID int64, at time.Time) error {
	query := `UPDATE users SET last_fetch_at = $2 WHERE user_id = $1`
	_, err := r.db.Exec(query, userID, at)
	return err
}
