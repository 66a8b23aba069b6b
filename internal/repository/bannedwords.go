package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"toolsbot/internal/domain"
)

// BannedWords stores the word lists used by name moderation.
type BannedWords struct {
	db *sqlx.DB
}

// NewBannedWords creates the banned words repository.
func NewBannedWords(db *sqlx.DB) *BannedWords {
	return &BannedWords{db: db}
}

// Words returns the list for a category; a missing category is an empty list.
func (r *BannedWords) Words(ctx context.Context, category domain.WordCategory) ([]string, error) {
	var words pq.StringArray
	query := `SELECT words FROM banned_words WHERE category = $1`
	if err := r.db.QueryRowxContext(ctx, query, string(category)).Scan(&words); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get banned words %q: %w", category, err)
	}
	return []string(words), nil
}

// Save replaces the list for a category.
func (r *BannedWords) Save(ctx context.Context, category domain.WordCategory, words []string) error {
	query := `
		INSERT INTO banned_words (category, words)
		VALUES ($1, $2)
		ON CONFLICT (category) DO UPDATE SET words = EXCLUDED.words`
	if _, err := r.db.ExecContext(ctx, query, string(category), pq.StringArray(words)); err != nil {
		return fmt.Errorf("save banned words %q: %w", category, err)
	}
	return nil
}
