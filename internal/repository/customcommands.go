package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"toolsbot/internal/domain"
)

// CustomCommands stores admin-defined commands.
type CustomCommands struct {
	db *sqlx.DB
}

// NewCustomCommands creates the custom commands repository.
func NewCustomCommands(db *sqlx.DB) *CustomCommands {
	return &CustomCommands{db: db}
}

// Get returns the command by its lowercase name or ErrNotFound.
func (r *CustomCommands) Get(ctx context.Context, name string) (*domain.CustomCommand, error) {
	var data []byte
	query := `SELECT content FROM custom_commands WHERE name = $1`
	if err := r.db.QueryRowxContext(ctx, query, name).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get custom command %q: %w", name, err)
	}
	cmd := &domain.CustomCommand{Name: name}
	if err := json.Unmarshal(data, &cmd.Content); err != nil {
		return nil, fmt.Errorf("decode custom command %q: %w", name, err)
	}
	return cmd, nil
}

// Names lists all command names in alphabetical order.
func (r *CustomCommands) Names(ctx context.Context) ([]string, error) {
	var names []string
	query := `SELECT name FROM custom_commands ORDER BY name`
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("list custom commands: %w", err)
	}
	return names, nil
}

// Save creates or updates a command.
func (r *CustomCommands) Save(ctx context.Context, cmd domain.CustomCommand) error {
	data, err := json.Marshal(cmd.Content)
	if err != nil {
		return fmt.Errorf("encode custom command %q: %w", cmd.Name, err)
	}
	query := `
		INSERT INTO custom_commands (name, content)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET content = EXCLUDED.content`
	if _, err := r.db.ExecContext(ctx, query, cmd.Name, data); err != nil {
		return fmt.Errorf("save custom command %q: %w", cmd.Name, err)
	}
	return nil
}

// Delete removes a command, reporting whether it existed.
func (r *CustomCommands) Delete(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM custom_commands WHERE name = $1`, name)
	if err != nil {
		return false, fmt.Errorf("delete custom command %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
