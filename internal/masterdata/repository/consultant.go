package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/prozessdok/prozessdok-backend/pkg/database"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
)

// Consultant represents a consultant master record.
type Consultant struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

var consultantSortColumns = map[string]string{
	"name":       "name",
	"specialty":  "specialty",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ConsultantRepository handles consultant persistence.
type ConsultantRepository struct {
	db *database.DB
}

// NewConsultantRepository creates a new consultant repository.
func NewConsultantRepository(db *database.DB) *ConsultantRepository {
	return &ConsultantRepository{db: db}
}

// Create creates a new consultant. New consultants are active unless
// stated otherwise.
func (r *ConsultantRepository) Create(ctx context.Context, c *Consultant) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO consultants (id, name, email, phone, specialty, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Specialty, c.Active,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return database.MapPQError(err)
	}

	return nil
}

// GetByID gets a consultant by ID.
func (r *ConsultantRepository) GetByID(ctx context.Context, id string) (*Consultant, error) {
	var c Consultant

	query := `
		SELECT id, name, email, phone, specialty, active, created_at, updated_at
		FROM consultants
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &c, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("consultant")
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// List lists all consultants ordered by the given sort spec.
func (r *ConsultantRepository) List(ctx context.Context, sort string) ([]*Consultant, error) {
	orderBy, err := database.SortClause(sort, consultantSortColumns, "name")
	if err != nil {
		return nil, err
	}

	var consultants []*Consultant

	query := `
		SELECT id, name, email, phone, specialty, active, created_at, updated_at
		FROM consultants
		ORDER BY ` + orderBy

	if err := r.db.SelectContext(ctx, &consultants, query); err != nil {
		return nil, err
	}

	return consultants, nil
}

// Update updates a consultant.
func (r *ConsultantRepository) Update(ctx context.Context, c *Consultant) error {
	query := `
		UPDATE consultants SET
			name = $2, email = $3, phone = $4, specialty = $5, active = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Specialty, c.Active,
	).Scan(&c.UpdatedAt)
	if err == sql.ErrNoRows {
		return errors.NotFound("consultant")
	}
	if err != nil {
		return database.MapPQError(err)
	}

	return nil
}

// Delete deletes a consultant.
func (r *ConsultantRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM consultants WHERE id = $1`, id)
	if err != nil {
		return database.MapPQError(err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("consultant")
	}

	return nil
}
