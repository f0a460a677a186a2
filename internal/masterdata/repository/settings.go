package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/prozessdok/prozessdok-backend/pkg/database"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
)

// Setting represents a single application setting. Keys are unique;
// writing an existing key overwrites its value.
type Setting struct {
	ID        string    `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SettingsRepository handles settings persistence.
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// List lists all settings ordered by key.
func (r *SettingsRepository) List(ctx context.Context) ([]*Setting, error) {
	var settings []*Setting

	query := `
		SELECT id, key, value, created_at, updated_at
		FROM settings
		ORDER BY key
	`

	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, err
	}

	return settings, nil
}

// Get gets a setting by key.
func (r *SettingsRepository) Get(ctx context.Context, key string) (*Setting, error) {
	var s Setting

	query := `
		SELECT id, key, value, created_at, updated_at
		FROM settings
		WHERE key = $1
	`

	err := r.db.GetContext(ctx, &s, query, key)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("setting")
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Set creates or overwrites a setting by key.
func (r *SettingsRepository) Set(ctx context.Context, s *Setting) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	query := `
		INSERT INTO settings (id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET value = $3, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, s.ID, s.Key, s.Value).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return database.MapPQError(err)
	}

	return nil
}

// Delete deletes a setting by key.
func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("setting")
	}

	return nil
}
