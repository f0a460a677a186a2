// Package repository contains the persistence layer for master data
// entities (customers, consultants, projects, statuses, settings).
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/prozessdok/prozessdok-backend/pkg/database"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
)

// Customer represents a customer master record (Kundenstamm).
type Customer struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactPerson *string   `db:"contact_person" json:"contact_person,omitempty"`
	Email         *string   `db:"email" json:"email,omitempty"`
	Phone         *string   `db:"phone" json:"phone,omitempty"`
	Address       *string   `db:"address" json:"address,omitempty"`
	Industry      *string   `db:"industry" json:"industry,omitempty"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

var customerSortColumns = map[string]string{
	"name":       "name",
	"industry":   "industry",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// CustomerRepository handles customer persistence.
type CustomerRepository struct {
	db *database.DB
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *database.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer.
func (r *CustomerRepository) Create(ctx context.Context, c *Customer) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO customers (id, name, contact_person, email, phone, address, industry, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID, c.Name, c.ContactPerson, c.Email, c.Phone, c.Address, c.Industry, c.Notes,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return database.MapPQError(err)
	}

	return nil
}

// GetByID gets a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*Customer, error) {
	var c Customer

	query := `
		SELECT id, name, contact_person, email, phone, address, industry, notes,
		       created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &c, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("customer")
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// List lists all customers ordered by the given sort spec.
func (r *CustomerRepository) List(ctx context.Context, sort string) ([]*Customer, error) {
	orderBy, err := database.SortClause(sort, customerSortColumns, "name")
	if err != nil {
		return nil, err
	}

	var customers []*Customer

	query := `
		SELECT id, name, contact_person, email, phone, address, industry, notes,
		       created_at, updated_at
		FROM customers
		ORDER BY ` + orderBy

	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, err
	}

	return customers, nil
}

// Update updates a customer.
func (r *CustomerRepository) Update(ctx context.Context, c *Customer) error {
	query := `
		UPDATE customers SET
			name = $2, contact_person = $3, email = $4, phone = $5,
			address = $6, industry = $7, notes = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID, c.Name, c.ContactPerson, c.Email, c.Phone, c.Address, c.Industry, c.Notes,
	).Scan(&c.UpdatedAt)
	if err == sql.ErrNoRows {
		return errors.NotFound("customer")
	}
	if err != nil {
		return database.MapPQError(err)
	}

	return nil
}

// Delete deletes a customer.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return database.MapPQError(err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("customer")
	}

	return nil
}
