package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsbot/internal/domain"
)

func newMockCommands(t *testing.T) (*CustomCommands, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCustomCommands(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCustomCommandsGet(t *testing.T) {
	repo, mock := newMockCommands(t)

	content, _ := json.Marshal(domain.CommandContent{Kind: domain.ContentText, Text: "meow"})
	mock.ExpectQuery(`SELECT content FROM custom_commands WHERE name = \$1`).
		WithArgs("meow").
		WillReturnRows(sqlmock.NewRows([]string{"content"}).AddRow(content))

	cmd, err := repo.Get(context.Background(), "meow")
	require.NoError(t, err)
	assert.Equal(t, "meow", cmd.Name)
	assert.Equal(t, domain.ContentText, cmd.Content.Kind)
	assert.Equal(t, "meow", cmd.Content.Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomCommandsGetNotFound(t *testing.T) {
	repo, mock := newMockCommands(t)

	mock.ExpectQuery(`SELECT content FROM custom_commands WHERE name = \$1`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"content"}))

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomCommandsSave(t *testing.T) {
	repo, mock := newMockCommands(t)

	mock.ExpectExec(`INSERT INTO custom_commands (.+) ON CONFLICT \(name\) DO UPDATE`).
		WithArgs("meow", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), domain.CustomCommand{
		Name:    "meow",
		Content: domain.CommandContent{Kind: domain.ContentText, Text: "meow"},
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomCommandsDelete(t *testing.T) {
	repo, mock := newMockCommands(t)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM custom_commands WHERE name = \$1`).
		WithArgs("meow").
		WillReturnResult(sqlmock.NewResult(0, 1))
	existed, err := repo.Delete(ctx, "meow")
	require.NoError(t, err)
	assert.True(t, existed)

	mock.ExpectExec(`DELETE FROM custom_commands WHERE name = \$1`).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))
	existed, err = repo.Delete(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, existed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
