package postgres

import (
	"testing"
	"time"

	"idiomastery/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDictionaryRepo_SaveEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewDictionaryRepo(db)

	entry := domain.Entry{
		UserID:   123,
		Category: "food",
		Translations: domain.Translations{
			Polish:  "jeść",
			English: "eat",
			Spanish: "comer",
		},
	}

	mock.ExpectExec("INSERT INTO dictionary_entries").
		WithArgs(
			sqlmock.AnyArg(), entry.UserID, entry.Category,
			"jeść", "eat", "comer",
			"", "", "",
			"", "", "",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.SaveEntry(entry)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// The store assigns a fresh uuid on every save
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestDictionaryRepo_GetEntries(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewDictionaryRepo(db)

	createdAt := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	columns := []string{
		"id", "user_id", "category",
		"polish", "english", "spanish",
		"polish_sentence", "english_sentence", "spanish_sentence",
		"polish_definition", "english_definition", "spanish_definition",
		"created_at",
	}

	rows := sqlmock.NewRows(columns).
		AddRow("id-1", int64(123), "food", "jeść", "eat", "comer", "", "", "", "", "", "", createdAt).
		AddRow("id-2", int64(123), "travel", "biegać", "run", "correr", "", "", "", "", "", "", createdAt)

	mock.ExpectQuery("FROM dictionary_entries").
		WithArgs(int64(123)).
		WillReturnRows(rows)

	entries, err := repo.GetEntries(123)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "id-1", entries[0].ID)
	assert.Equal(t, "eat", entries[0].Translations.English)
	assert.Equal(t, "correr", entries[1].Translations.Spanish)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDictionaryRepo_GetCategories(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewDictionaryRepo(db)

	rows := sqlmock.NewRows([]string{"category"}).
		AddRow("food").
		AddRow("travel")

	mock.ExpectQuery("SELECT DISTINCT category").
		WithArgs(int64(123)).
		WillReturnRows(rows)

	categories, err := repo.GetCategories(123)

	assert.NoError(t, err)
	assert.Equal(t, []string{"food", "travel"}, categories)
}

func TestDictionaryRepo_DeleteEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewDictionaryRepo(db)

	mock.ExpectExec("DELETE FROM dictionary_entries WHERE user_id = \\$1 AND id = \\$2").
		WithArgs(int64(123), "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.DeleteEntry(123, "id-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDictionaryRepo_CountEntries(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewDictionaryRepo(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM dictionary_entries WHERE user_id = \\$1").
		WithArgs(int64(123)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountEntries(123)

	assert.NoError(t, err)
	assert.Equal(t, 7, count)
}
