package reports

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/internal/process/events"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// ProcessStore is the persistence surface the report service needs.
// The process service satisfies it.
type ProcessStore interface {
	GetByID(ctx context.Context, id string) (*domain.Process, error)
	Update(ctx context.Context, p *domain.Process) (*domain.Process, error)
}

// Service generates report documents and stores them on the process.
// Duplicate triggers for the same process and report type while a
// generation is in flight are coalesced into a single stored entry.
type Service struct {
	store     ProcessStore
	generator TextGenerator
	publisher *events.ProcessEventPublisher
	group     singleflight.Group
	logger    *logger.Logger
}

// NewService creates a report service.
func NewService(store ProcessStore, generator TextGenerator, publisher *events.ProcessEventPublisher, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		generator: generator,
		publisher: publisher,
		logger:    log,
	}
}

// Generate builds the prompt for the given report type, runs the text
// generation and appends the result to the process with one update.
// It returns the updated process.
func (s *Service) Generate(ctx context.Context, processID, reportType string) (*domain.Process, error) {
	key := processID + ":" + reportType

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.generate(ctx, processID, reportType)
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.Process), nil
}

func (s *Service) generate(ctx context.Context, processID, reportType string) (*domain.Process, error) {
	p, err := s.store.GetByID(ctx, processID)
	if err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(reportType, p)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	content, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).
			Str("process_id", processID).
			Str("report_type", reportType).
			Msg("report generation failed")
		return nil, err
	}

	now := time.Now().UTC()
	name := DocumentName(reportType, p, now)

	switch reportType {
	case TypeLastenheft:
		p.SpecificationFiles = append(p.SpecificationFiles, domain.SpecificationFile{
			Name:        name,
			Type:        domain.SpecTypeLastenheft,
			Content:     content,
			CreatedDate: &now,
		})
	case TypeProzessdokumentation:
		p.SpecificationFiles = append(p.SpecificationFiles, domain.SpecificationFile{
			Name:        name,
			Type:        domain.SpecTypeProzessdokumentation,
			Content:     content,
			CreatedDate: &now,
		})
	case TypeBPMN, TypeAppSpec:
		p.Base44Specifications = append(p.Base44Specifications, domain.AppSpecification{
			Name:        name,
			Content:     content,
			CreatedDate: &now,
		})
	}

	updated, err := s.store.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("process_id", processID).
		Str("report_type", reportType).
		Dur("duration", time.Since(started)).
		Msg("report generated")

	s.publisher.PublishReportGenerated(ctx, processID, reportType, name)

	return updated, nil
}
