package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/prozessdok/prozessdok-backend/pkg/database"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
)

// ProcessStatus represents an administrator-defined process status.
// The process record stores the status name, not the ID, so renaming a
// status does not rewrite existing processes.
type ProcessStatus struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     *string   `db:"color" json:"color,omitempty"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

var statusSortColumns = map[string]string{
	"name":       "name",
	"sort_order": "sort_order",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// StatusRepository handles process status persistence.
type StatusRepository struct {
	db *database.DB
}

// NewStatusRepository creates a new status repository.
func NewStatusRepository(db *database.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// Create creates a new process status.
func (r *StatusRepository) Create(ctx context.Context, s *ProcessStatus) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	query := `
		INSERT INTO process_statuses (id, name, color, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		s.ID, s.Name, s.Color, s.SortOrder,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return database.MapPQError(err)
	}

	return nil
}

// GetByID gets a process status by ID.
func (r *StatusRepository) GetByID(ctx context.Context, id string) (*ProcessStatus, error) {
	var s ProcessStatus

	query := `
		SELECT id, name, color, sort_order, created_at, updated_at
		FROM process_statuses
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &s, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("process status")
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// List lists all process statuses ordered by the given sort spec.
func (r *StatusRepository) List(ctx context.Context, sort string) ([]*ProcessStatus, error) {
	orderBy, err := database.SortClause(sort, statusSortColumns, "sort_order")
	if err != nil {
		return nil, err
	}

	var statuses []*ProcessStatus

	query := `
		SELECT id, name, color, sort_order, created_at, updated_at
		FROM process_statuses
		ORDER BY ` + orderBy

	if err := r.db.SelectContext(ctx, &statuses, query); err != nil {
		return nil, err
	}

	return statuses, nil
}

// Update updates a process status.
func (r *StatusRepository) Update(ctx context.Context, s *ProcessStatus) error {
	query := `
		UPDATE process_statuses SET
			name = $2, color = $3, sort_order = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		s.ID, s.Name, s.Color, s.SortOrder,
	).Scan(&s.UpdatedAt)
	if err == sql.ErrNoRows {
		return errors.NotFound("process status")
	}
	if err != nil {
		return database.MapPQError(err)
	}

	return nil
}

// Delete deletes a process status. Processes keep their stored status
// name even after the status definition is removed.
func (r *StatusRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM process_statuses WHERE id = $1`, id)
	if err != nil {
		return database.MapPQError(err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("process status")
	}

	return nil
}
