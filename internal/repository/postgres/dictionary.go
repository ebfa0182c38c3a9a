package postgres

import (
	"database/sql"

	"idiomastery/internal/domain"

	"github.com/google/uuid"
)

// DictionaryRepo implements repository.DictionaryRepository
type DictionaryRepo struct {
	db *sql.DB
}

// NewDictionaryRepo creates a new dictionary repository
func NewDictionaryRepo(db *sql.DB) *DictionaryRepo {
	return &DictionaryRepo{db: db}
}

const entryColumns = `
	id, user_id, category,
	polish, english, spanish,
	polish_sentence, english_sentence, spanish_sentence,
	polish_definition, english_definition, spanish_definition,
	created_at
`

// SaveEntry stores a new entry and returns its generated id
func (r *DictionaryRepo) SaveEntry(entry domain.Entry) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO dictionary_entries (
			id, user_id, category,
			polish, english, spanish,
			polish_sentence, english_sentence, spanish_sentence,
			polish_definition, english_definition, spanish_definition
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(query,
		id, entry.UserID, entry.Category,
		entry.Translations.Polish, entry.Translations.English, entry.Translations.Spanish,
		entry.Sentences.Polish, entry.Sentences.English, entry.Sentences.Spanish,
		entry.Definitions.Polish, entry.Definitions.English, entry.Definitions.Spanish,
	)
	if err != nil {
		return "", err
	}

	return id, nil
}

// GetEntries returns all entries saved by the user, newest first
func (r *DictionaryRepo) GetEntries(userID int64) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM dictionary_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetEntriesByCategory returns the user's entries for one category
func (r *DictionaryRepo) GetEntriesByCategory(userID int64, category string) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM dictionary_entries
		WHERE user_id = $1 AND category = $2
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, userID, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetCategories returns the distinct categories the user has entries in
func (r *DictionaryRepo) GetCategories(userID int64) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM dictionary_entries
		WHERE user_id = $1 AND category <> ''
		ORDER BY category
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// DeleteEntry removes one entry owned by the user
func (r *DictionaryRepo) DeleteEntry(userID int64, entryID string) error {
	query := `DELETE FROM dictionary_entries WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(query, userID, entryID)
	return err
}

// CountEntries returns how many entries the user has saved
func (r *DictionaryRepo) CountEntries(userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM dictionary_entries WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func scanEntries(rows *sql.Rows) ([]domain.Entry, error) {
	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Category,
			&e.Translations.Polish, &e.Translations.English, &e.Translations.Spanish,
			&e.Sentences.Polish, &e.Sentences.English, &e.Sentences.Spanish,
			&e.Definitions.Polish, &e.Definitions.English, &e.Definitions.Spanish,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
