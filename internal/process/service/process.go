// Package service holds the process business logic between the HTTP
// handlers and the persistence layer.
package service

import (
	"context"
	"time"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/internal/process/events"
	"github.com/prozessdok/prozessdok-backend/internal/process/finance"
	"github.com/prozessdok/prozessdok-backend/internal/process/repository"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// ProcessStore is the persistence surface the service builds on.
type ProcessStore interface {
	Create(ctx context.Context, p *domain.Process) error
	GetByID(ctx context.Context, id string) (*domain.Process, error)
	List(ctx context.Context, opts repository.ProcessListOptions) ([]*domain.Process, int64, error)
	Update(ctx context.Context, p *domain.Process) error
	Delete(ctx context.Context, id string) error
}

// ProcessService handles process business logic
type ProcessService struct {
	store     ProcessStore
	publisher *events.ProcessEventPublisher
	logger    *logger.Logger
}

// NewProcessService creates a new process service
func NewProcessService(store ProcessStore, publisher *events.ProcessEventPublisher, log *logger.Logger) *ProcessService {
	return &ProcessService{
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

// Create creates a new process. Derived financial fields are computed
// before the record is stored.
func (s *ProcessService) Create(ctx context.Context, p *domain.Process) (*domain.Process, error) {
	if p.ProcessName == "" {
		return nil, errors.Validation(map[string]string{
			"process_name": "process name is required",
		})
	}

	if p.Erfassungsdatum == nil {
		now := time.Now().UTC()
		p.Erfassungsdatum = &now
	}

	applyDerived(p)

	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("process_id", p.ID).
		Str("process_name", p.ProcessName).
		Msg("process created")

	s.publisher.PublishProcessCreated(ctx, p)

	return p, nil
}

// GetByID gets a process by ID
func (s *ProcessService) GetByID(ctx context.Context, id string) (*domain.Process, error) {
	return s.store.GetByID(ctx, id)
}

// List lists processes with filtering, sorting and pagination
func (s *ProcessService) List(ctx context.Context, opts repository.ProcessListOptions) ([]*domain.Process, int64, error) {
	return s.store.List(ctx, opts)
}

// Update overwrites a process. The full record is written; concurrent
// edits resolve last-write-wins.
func (s *ProcessService) Update(ctx context.Context, p *domain.Process) (*domain.Process, error) {
	if p.ID == "" {
		return nil, errors.BadRequest("process id is required")
	}
	if p.ProcessName == "" {
		return nil, errors.Validation(map[string]string{
			"process_name": "process name is required",
		})
	}

	applyDerived(p)

	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("process_id", p.ID).
		Msg("process updated")

	s.publisher.PublishProcessUpdated(ctx, p)

	return p, nil
}

// Delete deletes a process
func (s *ProcessService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Str("process_id", id).
		Msg("process deleted")

	s.publisher.PublishProcessDeleted(ctx, id)

	return nil
}

// applyDerived recomputes the stored derived fields. A positive effort
// estimate overwrites the ROI investment cost; a manual investment
// entry survives only while no effort estimate exists.
func applyDerived(p *domain.Process) {
	if cost := finance.TotalEffortCost(p.EffortDetails); cost > 0 {
		p.ROIData.InvestmentCost = domain.Amount(cost)
	}
	finance.RecalculatePayback(&p.ROIData)
}
