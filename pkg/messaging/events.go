package messaging

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	// Process events
	EventProcessCreated = "process.created"
	EventProcessUpdated = "process.updated"
	EventProcessDeleted = "process.deleted"

	// Report events
	EventReportGenerated = "process.report.generated"

	// Upload events
	EventFilesUploaded = "process.files.uploaded"
)

// Exchange names
const (
	ExchangeProcessEvents = "process.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// ProcessCreatedEvent is published when a process record is created
type ProcessCreatedEvent struct {
	ProcessID   string `json:"process_id"`
	ProcessName string `json:"process_name"`
	Erfasser    string `json:"erfasser,omitempty"`
}

// ProcessUpdatedEvent is published when a process record is updated
type ProcessUpdatedEvent struct {
	ProcessID   string `json:"process_id"`
	ProcessName string `json:"process_name"`
}

// ProcessDeletedEvent is published when a process record is deleted
type ProcessDeletedEvent struct {
	ProcessID string `json:"process_id"`
}

// ReportGeneratedEvent is published when a narrative report is stored on a process
type ReportGeneratedEvent struct {
	ProcessID  string `json:"process_id"`
	ReportType string `json:"report_type"`
	Name       string `json:"name"`
}

// FilesUploadedEvent is published after a batch upload completes
type FilesUploadedEvent struct {
	ProcessID string `json:"process_id"`
	Uploaded  int    `json:"uploaded"`
	Failed    int    `json:"failed"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), time.Now().Nanosecond()%10000)
}
