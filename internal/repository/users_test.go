package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsbot/internal/domain"
)

var userCols = []string{
	"user_id", "chat_id", "first_name", "last_name", "username", "is_bot",
	"display_name", "sentence", "language", "gender", "notifications", "admin",
	"permissions", "event", "updated_at",
}

func newMockUsers(t *testing.T) (*Users, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUsers(sqlx.NewDb(db, "sqlmock")), mock
}

func TestUsersGet(t *testing.T) {
	repo, mock := newMockUsers(t)

	perms, _ := json.Marshal(domain.PermissionSet{"qrcode": false})
	rows := sqlmock.NewRows(userCols).AddRow(
		int64(1), int64(10), "Alice", "Smith", "alice", false,
		"Ali", nil, "en", "f", true, true,
		perms, nil, time.Now(),
	)
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE user_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	u, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.UserID)
	assert.Equal(t, "Alice", u.FirstName)
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, "Ali", *u.DisplayName)
	assert.Nil(t, u.Sentence)
	require.NotNil(t, u.Admin)
	assert.True(t, *u.Admin)
	assert.Equal(t, domain.PermissionSet{"qrcode": false}, u.Permissions)
	assert.Nil(t, u.Event)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersGetNotFound(t *testing.T) {
	repo, mock := newMockUsers(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE user_id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := repo.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersUpsert(t *testing.T) {
	repo, mock := newMockUsers(t)

	mock.ExpectExec(`INSERT INTO users (.+) ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs(int64(1), int64(10), "Alice", "Smith", "alice", false, "en").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), 1, 10, "Alice", "Smith", "alice", false, "en")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersSetDisplayName(t *testing.T) {
	repo, mock := newMockUsers(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE users SET display_name = \$2`).
		WithArgs(int64(1), "Ali").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetDisplayName(ctx, 1, strPtr("Ali")))

	mock.ExpectExec(`UPDATE users SET display_name = \$2`).
		WithArgs(int64(1), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetDisplayName(ctx, 1, nil))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersSetColumnMissingRow(t *testing.T) {
	repo, mock := newMockUsers(t)

	mock.ExpectExec(`UPDATE users SET language = \$2`).
		WithArgs(int64(404), "it").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetLanguage(context.Background(), 404, "it")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersTakeEvent(t *testing.T) {
	repo, mock := newMockUsers(t)

	ev := domain.Event{Next: domain.HandlerSetName, Payload: "42", CreatedAt: time.Now().UTC()}
	data, _ := json.Marshal(ev)
	mock.ExpectQuery(`UPDATE users SET event = NULL`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"event"}).AddRow(data))

	got, err := repo.TakeEvent(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.HandlerSetName, got.Next)
	assert.Equal(t, "42", got.Payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersTakeEventEmptySlot(t *testing.T) {
	repo, mock := newMockUsers(t)

	mock.ExpectQuery(`UPDATE users SET event = NULL`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"event"}).AddRow(nil))

	got, err := repo.TakeEvent(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersFindByViewedName(t *testing.T) {
	repo, mock := newMockUsers(t)

	rows := sqlmock.NewRows(userCols).
		AddRow(int64(1), int64(10), "Bob", "", "bob", false, nil, nil, "en", "m", true, nil, nil, nil, time.Now()).
		AddRow(int64(2), int64(20), "Robert", "", "", false, "Bob", nil, "it", "m", true, nil, nil, nil, time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE display_name = \$1 OR \(display_name IS NULL AND first_name = \$1\)`).
		WithArgs("Bob").
		WillReturnRows(rows)

	matches, err := repo.FindByViewedName(context.Background(), "Bob")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, int64(1), matches[0].UserID)
	assert.Equal(t, "Bob", matches[1].ViewedName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func strPtr(s string) *string { return &s }
