package postgres

import (
	"database/sql/driver"
	"testing"
	"time"

	"idiomastery/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestResultRepo_AddQuizResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewResultRepo(db)

	now := time.Now()
	mock.ExpectExec("INSERT INTO quiz_results").
		WithArgs(sqlmock.AnyArg(), int64(123), 8, 10, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.AddQuizResult(domain.QuizResult{
		UserID:         123,
		Score:          8,
		TotalQuestions: 10,
		Timestamp:      now,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepo_AddMatchResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewResultRepo(db)

	now := time.Now()
	mock.ExpectExec("INSERT INTO match_results").
		WithArgs(sqlmock.AnyArg(), int64(123), 12, 3, 5, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.AddMatchResult(domain.MatchResult{
		UserID:       123,
		Correct:      12,
		Wrong:        3,
		HighestCombo: 5,
		Timestamp:    now,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepo_GetQuizAggregate(t *testing.T) {
	tests := []struct {
		name     string
		row      []driver.Value
		expected domain.QuizAggregate
	}{
		{
			name:     "best score and total from the same result",
			row:      []driver.Value{7, 9, 10},
			expected: domain.QuizAggregate{Taken: 7, BestScore: 9, BestTotal: 10},
		},
		{
			// With results 10/30 and 5/5 the best ratio is 5/5; the
			// score must come from that row, not MAX over all rows
			name:     "high raw score does not leak into a different best total",
			row:      []driver.Value{2, 5, 5},
			expected: domain.QuizAggregate{Taken: 2, BestScore: 5, BestTotal: 5},
		},
		{
			name:     "no results",
			row:      []driver.Value{0, 0, 0},
			expected: domain.QuizAggregate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewResultRepo(db)

			rows := sqlmock.NewRows([]string{"count", "best_score", "best_total"}).
				AddRow(tt.row...)
			mock.ExpectQuery("LEFT JOIN").
				WithArgs(int64(123)).
				WillReturnRows(rows)

			agg, err := repo.GetQuizAggregate(123)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, agg)
		})
	}
}

func TestResultRepo_GetMatchAggregate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewResultRepo(db)

	rows := sqlmock.NewRows([]string{"count", "highest_combo"}).
		AddRow(4, 6)
	mock.ExpectQuery("FROM match_results").
		WithArgs(int64(123)).
		WillReturnRows(rows)

	agg, err := repo.GetMatchAggregate(123)

	assert.NoError(t, err)
	assert.Equal(t, domain.MatchAggregate{Played: 4, HighestCombo: 6}, agg)
}

func TestResultRepo_PruneOldResults(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewResultRepo(db)

	mock.ExpectExec("DELETE FROM quiz_results").
		WithArgs(365).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM match_results").
		WithArgs(365).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.PruneOldResults(365)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
