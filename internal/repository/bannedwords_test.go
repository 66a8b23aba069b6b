package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsbot/internal/domain"
)

func newMockBannedWords(t *testing.T) (*BannedWords, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBannedWords(sqlx.NewDb(db, "sqlmock")), mock
}

func TestBannedWordsGet(t *testing.T) {
	repo, mock := newMockBannedWords(t)

	mock.ExpectQuery(`SELECT words FROM banned_words WHERE category = \$1`).
		WithArgs("banned").
		WillReturnRows(sqlmock.NewRows([]string{"words"}).AddRow(`{idiot,fool}`))

	words, err := repo.Words(context.Background(), domain.CategoryBanned)
	require.NoError(t, err)
	assert.Equal(t, []string{"idiot", "fool"}, words)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBannedWordsMissingCategory(t *testing.T) {
	repo, mock := newMockBannedWords(t)

	mock.ExpectQuery(`SELECT words FROM banned_words WHERE category = \$1`).
		WithArgs("ultrabanned").
		WillReturnRows(sqlmock.NewRows([]string{"words"}))

	words, err := repo.Words(context.Background(), domain.CategoryUltraBanned)
	require.NoError(t, err)
	assert.Empty(t, words)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBannedWordsSave(t *testing.T) {
	repo, mock := newMockBannedWords(t)

	mock.ExpectExec(`INSERT INTO banned_words (.+) ON CONFLICT \(category\) DO UPDATE`).
		WithArgs("banned", pq.StringArray{"idiot"}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), domain.CategoryBanned, []string{"idiot"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
