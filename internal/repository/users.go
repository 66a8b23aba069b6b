package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"toolsbot/internal/domain"
)

// Users stores per-user profiles.
type Users struct {
	db *sqlx.DB
}

// NewUsers creates the users repository.
func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

type userRow struct {
	UserID        int64          `db:"user_id"`
	ChatID        int64          `db:"chat_id"`
	FirstName     sql.NullString `db:"first_name"`
	LastName      sql.NullString `db:"last_name"`
	Username      sql.NullString `db:"username"`
	IsBot         bool           `db:"is_bot"`
	DisplayName   sql.NullString `db:"display_name"`
	Sentence      sql.NullString `db:"sentence"`
	Language      string         `db:"language"`
	Gender        string         `db:"gender"`
	Notifications bool           `db:"notifications"`
	Admin         sql.NullBool   `db:"admin"`
	Permissions   []byte         `db:"permissions"`
	Event         []byte         `db:"event"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

const userColumns = `user_id, chat_id, first_name, last_name, username, is_bot,
	display_name, sentence, language, gender, notifications, admin,
	permissions, event, updated_at`

func (r userRow) toDomain() (*domain.User, error) {
	u := &domain.User{
		UserID:        r.UserID,
		ChatID:        r.ChatID,
		FirstName:     r.FirstName.String,
		LastName:      r.LastName.String,
		Username:      r.Username.String,
		IsBot:         r.IsBot,
		Language:      r.Language,
		Gender:        domain.Gender(r.Gender),
		Notifications: r.Notifications,
		Permissions:   domain.PermissionSet{},
		UpdatedAt:     r.UpdatedAt,
	}
	if r.DisplayName.Valid {
		v := r.DisplayName.String
		u.DisplayName = &v
	}
	if r.Sentence.Valid {
		v := r.Sentence.String
		u.Sentence = &v
	}
	if r.Admin.Valid {
		v := r.Admin.Bool
		u.Admin = &v
	}
	if len(r.Permissions) > 0 {
		if err := json.Unmarshal(r.Permissions, &u.Permissions); err != nil {
			return nil, fmt.Errorf("decode permissions for user %d: %w", r.UserID, err)
		}
	}
	if len(r.Event) > 0 {
		var ev domain.Event
		if err := json.Unmarshal(r.Event, &ev); err != nil {
			return nil, fmt.Errorf("decode event for user %d: %w", r.UserID, err)
		}
		u.Event = &ev
	}
	return u, nil
}

// Get returns a user by id or ErrNotFound.
func (r *Users) Get(ctx context.Context, userID int64) (*domain.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return row.toDomain()
}

// GetByUsername returns the user with the given Telegram username.
func (r *Users) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	if err := r.db.GetContext(ctx, &row, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by username %q: %w", username, err)
	}
	return row.toDomain()
}

// FindByViewedName returns every user whose viewed name equals name: a set
// display name matches directly, otherwise the platform first name counts.
func (r *Users) FindByViewedName(ctx context.Context, name string) ([]*domain.User, error) {
	var rows []userRow
	query := `SELECT ` + userColumns + ` FROM users
		WHERE display_name = $1 OR (display_name IS NULL AND first_name = $1)
		ORDER BY user_id`
	if err := r.db.SelectContext(ctx, &rows, query, name); err != nil {
		return nil, fmt.Errorf("find users by name %q: %w", name, err)
	}
	return rowsToDomain(rows)
}

// List returns all users ordered by id.
func (r *Users) List(ctx context.Context) ([]*domain.User, error) {
	var rows []userRow
	query := `SELECT ` + userColumns + ` FROM users ORDER BY user_id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return rowsToDomain(rows)
}

func rowsToDomain(rows []userRow) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		u, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// Upsert refreshes the platform-provided profile fields, creating the row on
// first contact. Bot-managed fields (display name, language, permissions,
// event slot) are left untouched on conflict.
func (r *Users) Upsert(ctx context.Context, userID, chatID int64, firstName, lastName, username string, isBot bool, defaultLanguage string) error {
	query := `
		INSERT INTO users (user_id, chat_id, first_name, last_name, username, is_bot, language, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			username = EXCLUDED.username,
			is_bot = EXCLUDED.is_bot,
			updated_at = now()`
	if _, err := r.db.ExecContext(ctx, query, userID, chatID, firstName, lastName, username, isBot, defaultLanguage); err != nil {
		return fmt.Errorf("upsert user %d: %w", userID, err)
	}
	return nil
}

// SetDisplayName stores or clears the in-bot name.
func (r *Users) SetDisplayName(ctx context.Context, userID int64, name *string) error {
	return r.setColumn(ctx, userID, "display_name", nullableString(name))
}

// SetSentence stores or clears the personal sentence.
func (r *Users) SetSentence(ctx context.Context, userID int64, sentence *string) error {
	return r.setColumn(ctx, userID, "sentence", nullableString(sentence))
}

// SetLanguage stores the preferred language code.
func (r *Users) SetLanguage(ctx context.Context, userID int64, lang string) error {
	return r.setColumn(ctx, userID, "language", lang)
}

// SetGender stores the gender used for random names.
func (r *Users) SetGender(ctx context.Context, userID int64, gender domain.Gender) error {
	return r.setColumn(ctx, userID, "gender", string(gender))
}

// SetNotifications toggles the on/off broadcast preference.
func (r *Users) SetNotifications(ctx context.Context, userID int64, enabled bool) error {
	return r.setColumn(ctx, userID, "notifications", enabled)
}

// SetAdmin stores an explicit admin flag.
func (r *Users) SetAdmin(ctx context.Context, userID int64, admin bool) error {
	return r.setColumn(ctx, userID, "admin", admin)
}

// SetPermissions replaces the whole permission map.
func (r *Users) SetPermissions(ctx context.Context, userID int64, perms domain.PermissionSet) error {
	data, err := json.Marshal(perms)
	if err != nil {
		return fmt.Errorf("encode permissions for user %d: %w", userID, err)
	}
	return r.setColumn(ctx, userID, "permissions", data)
}

// SetEvent stores a pending event, replacing any prior one. A nil event
// clears the slot.
func (r *Users) SetEvent(ctx context.Context, userID int64, ev *domain.Event) error {
	var data any
	if ev != nil {
		encoded, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encode event for user %d: %w", userID, err)
		}
		data = encoded
	}
	return r.setColumn(ctx, userID, "event", data)
}

// TakeEvent atomically reads and clears the pending event slot. Returns
// (nil, nil) when the slot was empty.
func (r *Users) TakeEvent(ctx context.Context, userID int64) (*domain.Event, error) {
	query := `
		WITH prev AS (
			SELECT event FROM users WHERE user_id = $1
		)
		UPDATE users SET event = NULL, updated_at = now()
		WHERE user_id = $1
		RETURNING (SELECT event FROM prev)`
	var data []byte
	if err := r.db.QueryRowxContext(ctx, query, userID).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("take event for user %d: %w", userID, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var ev domain.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("decode event for user %d: %w", userID, err)
	}
	return &ev, nil
}

func (r *Users) setColumn(ctx context.Context, userID int64, column string, value any) error {
	query := fmt.Sprintf(`UPDATE users SET %s = $2, updated_at = now() WHERE user_id = $1`, column)
	res, err := r.db.ExecContext(ctx, query, userID, value)
	if err != nil {
		return fmt.Errorf("update %s for user %d: %w", column, userID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
