// Package events publishes process lifecycle events to the message
// broker.
package events

import (
	"context"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
	"github.com/prozessdok/prozessdok-backend/pkg/messaging"
)

// Sink abstracts the message publisher so tests can capture events.
type Sink interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// ProcessEventPublisher publishes process-related events
type ProcessEventPublisher struct {
	sink   Sink
	logger *logger.Logger
}

// NewProcessEventPublisher creates a publisher bound to the process
// events exchange.
func NewProcessEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*ProcessEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeProcessEvents, "process-service", log)
	if err != nil {
		return nil, err
	}

	return &ProcessEventPublisher{
		sink:   publisher,
		logger: log,
	}, nil
}

// NewProcessEventPublisherWithSink wires an alternative sink, used by
// tests.
func NewProcessEventPublisherWithSink(sink Sink, log *logger.Logger) *ProcessEventPublisher {
	return &ProcessEventPublisher{
		sink:   sink,
		logger: log,
	}
}

// PublishProcessCreated publishes a process created event
func (p *ProcessEventPublisher) PublishProcessCreated(ctx context.Context, process *domain.Process) {
	data := messaging.ProcessCreatedEvent{
		ProcessID:   process.ID,
		ProcessName: process.ProcessName,
		Erfasser:    process.Erfasser,
	}

	if err := p.sink.Publish(ctx, messaging.EventProcessCreated, data); err != nil {
		p.logger.Error().Err(err).Str("process_id", process.ID).Msg("failed to publish process created event")
	}
}

// PublishProcessUpdated publishes a process updated event
func (p *ProcessEventPublisher) PublishProcessUpdated(ctx context.Context, process *domain.Process) {
	data := messaging.ProcessUpdatedEvent{
		ProcessID:   process.ID,
		ProcessName: process.ProcessName,
	}

	if err := p.sink.Publish(ctx, messaging.EventProcessUpdated, data); err != nil {
		p.logger.Error().Err(err).Str("process_id", process.ID).Msg("failed to publish process updated event")
	}
}

// PublishProcessDeleted publishes a process deleted event
func (p *ProcessEventPublisher) PublishProcessDeleted(ctx context.Context, processID string) {
	data := messaging.ProcessDeletedEvent{
		ProcessID: processID,
	}

	if err := p.sink.Publish(ctx, messaging.EventProcessDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("process_id", processID).Msg("failed to publish process deleted event")
	}
}

// PublishReportGenerated publishes a report generated event
func (p *ProcessEventPublisher) PublishReportGenerated(ctx context.Context, processID, reportType, name string) {
	data := messaging.ReportGeneratedEvent{
		ProcessID:  processID,
		ReportType: reportType,
		Name:       name,
	}

	if err := p.sink.Publish(ctx, messaging.EventReportGenerated, data); err != nil {
		p.logger.Error().Err(err).Str("process_id", processID).Msg("failed to publish report generated event")
	}
}

// PublishFilesUploaded publishes a batch upload completion event
func (p *ProcessEventPublisher) PublishFilesUploaded(ctx context.Context, processID string, uploaded, failed int) {
	data := messaging.FilesUploadedEvent{
		ProcessID: processID,
		Uploaded:  uploaded,
		Failed:    failed,
	}

	if err := p.sink.Publish(ctx, messaging.EventFilesUploaded, data); err != nil {
		p.logger.Error().Err(err).Str("process_id", processID).Msg("failed to publish files uploaded event")
	}
}
