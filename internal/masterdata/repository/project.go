package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/prozessdok/prozessdok-backend/pkg/database"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
)

// Project represents a project master record. Projects group processes
// for one customer engagement.
type Project struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	CustomerID  *string    `db:"customer_id" json:"customer_id,omitempty"`
	Description *string    `db:"description" json:"description,omitempty"`
	Status      string     `db:"status" json:"status"`
	StartDate   *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

var projectSortColumns = map[string]string{
	"name":       "name",
	"status":     "status",
	"start_date": "start_date",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ProjectRepository handles project persistence.
type ProjectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project.
func (r *ProjectRepository) Create(ctx context.Context, p *Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = "active"
	}

	query := `
		INSERT INTO projects (id, name, customer_id, description, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.Name, p.CustomerID, p.Description, p.Status, p.StartDate, p.EndDate,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return database.MapPQError(err)
	}

	return nil
}

// GetByID gets a project by ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*Project, error) {
	var p Project

	query := `
		SELECT id, name, customer_id, description, status, start_date, end_date,
		       created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &p, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("project")
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// List lists all projects ordered by the given sort spec.
func (r *ProjectRepository) List(ctx context.Context, sort string) ([]*Project, error) {
	orderBy, err := database.SortClause(sort, projectSortColumns, "-updated_at")
	if err != nil {
		return nil, err
	}

	var projects []*Project

	query := `
		SELECT id, name, customer_id, description, status, start_date, end_date,
		       created_at, updated_at
		FROM projects
		ORDER BY ` + orderBy

	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, err
	}

	return projects, nil
}

// Update updates a project.
func (r *ProjectRepository) Update(ctx context.Context, p *Project) error {
	query := `
		UPDATE projects SET
			name = $2, customer_id = $3, description = $4, status = $5,
			start_date = $6, end_date = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.Name, p.CustomerID, p.Description, p.Status, p.StartDate, p.EndDate,
	).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return errors.NotFound("project")
	}
	if err != nil {
		return database.MapPQError(err)
	}

	return nil
}

// Delete deletes a project.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return database.MapPQError(err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("project")
	}

	return nil
}
