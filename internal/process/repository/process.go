// Package repository contains the persistence layer for processes and
// the supporting master data entities.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/pkg/database"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
)

// processRow mirrors the processes table. Answer groups, cost
// sub-objects and document lists live in JSONB columns and are
// converted explicitly at the repository boundary.
type processRow struct {
	ID              string     `db:"id"`
	ProcessName     string     `db:"process_name"`
	CustomerID      *string    `db:"customer_id"`
	Status          string     `db:"status"`
	Erfasser        string     `db:"erfasser"`
	Erfassungsdatum *time.Time `db:"erfassungsdatum"`
	SollDescription string     `db:"soll_description"`
	IstAnswers      []byte     `db:"ist_answers"`
	SollAnswers     []byte     `db:"soll_answers"`
	IstCosts        []byte     `db:"ist_costs"`
	EffortDetails   []byte     `db:"effort_details"`
	ROIData         []byte     `db:"roi_data"`
	Documents       []byte     `db:"documents"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// documentLists groups the generated and uploaded document collections
// into the single documents JSONB column.
type documentLists struct {
	SpecificationFiles      []domain.SpecificationFile `json:"specification_files"`
	Base44Specifications    []domain.AppSpecification  `json:"base44_specifications"`
	BPMNFiles               []domain.BPMNFile          `json:"bpmn_files"`
	PresentationVideos      []domain.PresentationAsset `json:"presentation_videos"`
	PresentationImages      []domain.PresentationAsset `json:"presentation_images"`
	PresentationPowerpoints []domain.PresentationAsset `json:"presentation_powerpoints"`
	LastenheftUploadedFiles []domain.UploadedFile      `json:"lastenheft_uploaded_files"`
}

// ProcessListOptions controls filtering and ordering of List.
type ProcessListOptions struct {
	CustomerID string
	Status     string
	Search     string
	Sort       string
	Page       int
	PerPage    int
}

// processSortColumns whitelists the sortable columns. A leading "-"
// in the sort spec selects descending order.
var processSortColumns = map[string]string{
	"process_name":    "process_name",
	"status":          "status",
	"erfasser":        "erfasser",
	"erfassungsdatum": "erfassungsdatum",
	"created_at":      "created_at",
	"updated_at":      "updated_at",
}

// ProcessRepository handles process persistence.
type ProcessRepository struct {
	db *database.DB
}

// NewProcessRepository creates a new process repository.
func NewProcessRepository(db *database.DB) *ProcessRepository {
	return &ProcessRepository{db: db}
}

// Create inserts a new process. A missing ID is generated here.
func (r *ProcessRepository) Create(ctx context.Context, p *domain.Process) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.NormalizeLists()

	row, err := toRow(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO processes (
			id, process_name, customer_id, status, erfasser, erfassungsdatum,
			soll_description, ist_answers, soll_answers, ist_costs,
			effort_details, roi_data, documents
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRowxContext(ctx, query,
		row.ID, row.ProcessName, row.CustomerID, row.Status, row.Erfasser, row.Erfassungsdatum,
		row.SollDescription, row.IstAnswers, row.SollAnswers, row.IstCosts,
		row.EffortDetails, row.ROIData, row.Documents,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return database.MapPQError(err)
	}

	return nil
}

// GetByID gets a process by ID.
func (r *ProcessRepository) GetByID(ctx context.Context, id string) (*domain.Process, error) {
	var row processRow

	query := `
		SELECT id, process_name, customer_id, status, erfasser, erfassungsdatum,
		       soll_description, ist_answers, soll_answers, ist_costs,
		       effort_details, roi_data, documents, created_at, updated_at
		FROM processes
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("process")
	}
	if err != nil {
		return nil, err
	}

	return fromRow(&row)
}

// List lists processes with optional filters, whitelisted sorting and
// pagination.
func (r *ProcessRepository) List(ctx context.Context, opts ProcessListOptions) ([]*domain.Process, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argn := 0

	if opts.CustomerID != "" {
		argn++
		where += fmt.Sprintf(" AND customer_id = $%d", argn)
		args = append(args, opts.CustomerID)
	}
	if opts.Status != "" {
		argn++
		where += fmt.Sprintf(" AND status = $%d", argn)
		args = append(args, opts.Status)
	}
	if opts.Search != "" {
		argn++
		where += fmt.Sprintf(" AND process_name ILIKE $%d", argn)
		args = append(args, "%"+opts.Search+"%")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM processes"+where, args...); err != nil {
		return nil, 0, err
	}

	orderBy, err := database.SortClause(opts.Sort, processSortColumns, "-updated_at")
	if err != nil {
		return nil, 0, err
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 {
		perPage = 50
	}

	query := `
		SELECT id, process_name, customer_id, status, erfasser, erfassungsdatum,
		       soll_description, ist_answers, soll_answers, ist_costs,
		       effort_details, roi_data, documents, created_at, updated_at
		FROM processes` + where + " ORDER BY " + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argn+1, argn+2)
	args = append(args, perPage, (page-1)*perPage)

	var rows []*processRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}

	processes := make([]*domain.Process, 0, len(rows))
	for _, row := range rows {
		p, err := fromRow(row)
		if err != nil {
			return nil, 0, err
		}
		processes = append(processes, p)
	}

	return processes, total, nil
}

// Update overwrites a process. Last write wins; no version check.
func (r *ProcessRepository) Update(ctx context.Context, p *domain.Process) error {
	p.NormalizeLists()

	row, err := toRow(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE processes SET
			process_name = $2, customer_id = $3, status = $4, erfasser = $5,
			erfassungsdatum = $6, soll_description = $7, ist_answers = $8,
			soll_answers = $9, ist_costs = $10, effort_details = $11,
			roi_data = $12, documents = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = r.db.QueryRowxContext(ctx, query,
		row.ID, row.ProcessName, row.CustomerID, row.Status, row.Erfasser,
		row.Erfassungsdatum, row.SollDescription, row.IstAnswers,
		row.SollAnswers, row.IstCosts, row.EffortDetails, row.ROIData,
		row.Documents,
	).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return errors.NotFound("process")
	}
	if err != nil {
		return database.MapPQError(err)
	}

	return nil
}

// Delete removes a process permanently.
func (r *ProcessRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM processes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("process")
	}

	return nil
}

func toRow(p *domain.Process) (*processRow, error) {
	istAnswers, err := json.Marshal(p.IstAnswers)
	if err != nil {
		return nil, fmt.Errorf("marshal ist_answers: %w", err)
	}
	sollAnswers, err := json.Marshal(p.SollAnswers)
	if err != nil {
		return nil, fmt.Errorf("marshal soll_answers: %w", err)
	}
	istCosts, err := json.Marshal(p.IstCosts)
	if err != nil {
		return nil, fmt.Errorf("marshal ist_costs: %w", err)
	}
	effortDetails, err := json.Marshal(p.EffortDetails)
	if err != nil {
		return nil, fmt.Errorf("marshal effort_details: %w", err)
	}
	roiData, err := json.Marshal(p.ROIData)
	if err != nil {
		return nil, fmt.Errorf("marshal roi_data: %w", err)
	}
	documents, err := json.Marshal(documentLists{
		SpecificationFiles:      p.SpecificationFiles,
		Base44Specifications:    p.Base44Specifications,
		BPMNFiles:               p.BPMNFiles,
		PresentationVideos:      p.PresentationVideos,
		PresentationImages:      p.PresentationImages,
		PresentationPowerpoints: p.PresentationPowerpoints,
		LastenheftUploadedFiles: p.LastenheftUploadedFiles,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}

	return &processRow{
		ID:              p.ID,
		ProcessName:     p.ProcessName,
		CustomerID:      p.CustomerID,
		Status:          p.Status,
		Erfasser:        p.Erfasser,
		Erfassungsdatum: p.Erfassungsdatum,
		SollDescription: p.SollDescription,
		IstAnswers:      istAnswers,
		SollAnswers:     sollAnswers,
		IstCosts:        istCosts,
		EffortDetails:   effortDetails,
		ROIData:         roiData,
		Documents:       documents,
	}, nil
}

func fromRow(row *processRow) (*domain.Process, error) {
	p := &domain.Process{
		ID:              row.ID,
		ProcessName:     row.ProcessName,
		CustomerID:      row.CustomerID,
		Status:          row.Status,
		Erfasser:        row.Erfasser,
		Erfassungsdatum: row.Erfassungsdatum,
		SollDescription: row.SollDescription,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}

	if err := unmarshalColumn(row.IstAnswers, &p.IstAnswers, "ist_answers"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(row.SollAnswers, &p.SollAnswers, "soll_answers"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(row.IstCosts, &p.IstCosts, "ist_costs"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(row.EffortDetails, &p.EffortDetails, "effort_details"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(row.ROIData, &p.ROIData, "roi_data"); err != nil {
		return nil, err
	}

	var docs documentLists
	if err := unmarshalColumn(row.Documents, &docs, "documents"); err != nil {
		return nil, err
	}
	p.SpecificationFiles = docs.SpecificationFiles
	p.Base44Specifications = docs.Base44Specifications
	p.BPMNFiles = docs.BPMNFiles
	p.PresentationVideos = docs.PresentationVideos
	p.PresentationImages = docs.PresentationImages
	p.PresentationPowerpoints = docs.PresentationPowerpoints
	p.LastenheftUploadedFiles = docs.LastenheftUploadedFiles

	p.NormalizeLists()

	return p, nil
}

func unmarshalColumn(data []byte, target interface{}, column string) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("unmarshal %s: %w", column, err)
	}
	return nil
}
