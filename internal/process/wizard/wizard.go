// Package wizard drives the six-step capture flow for new processes.
// Drafts live in memory per session; every field mutation re-arms a
// debounce timer that autosaves the draft once it has a process name.
package wizard

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// Wizard steps in order
const (
	StepBasicInfo        = "basic_info"
	StepIstAnalysis      = "ist_analysis"
	StepSollDefinition   = "soll_definition"
	StepCostAnalysis     = "cost_analysis"
	StepEffortEstimation = "effort_estimation"
	StepROI              = "roi"
)

// Steps lists the wizard steps in presentation order.
var Steps = []string{
	StepBasicInfo,
	StepIstAnalysis,
	StepSollDefinition,
	StepCostAnalysis,
	StepEffortEstimation,
	StepROI,
}

// SaveStatus is the autosave state shown next to the wizard.
type SaveStatus string

// Save statuses
const (
	SaveStatusUnsaved SaveStatus = "unsaved"
	SaveStatusSaving  SaveStatus = "saving"
	SaveStatusSaved   SaveStatus = "saved"
	SaveStatusError   SaveStatus = "error"
)

// ProcessStore is the persistence collaborator the wizard saves
// through. The process service satisfies it.
type ProcessStore interface {
	Create(ctx context.Context, p *domain.Process) (*domain.Process, error)
	Update(ctx context.Context, p *domain.Process) (*domain.Process, error)
}

// Session is one in-flight wizard run.
type Session struct {
	mu         sync.Mutex
	id         string
	draft      *domain.Process
	stepIndex  int
	status     SaveStatus
	timer      *time.Timer
	lastActive time.Time
}

// State is a read snapshot of a session.
type State struct {
	SessionID  string          `json:"session_id"`
	Step       string          `json:"step"`
	StepIndex  int             `json:"step_index"`
	StepCount  int             `json:"step_count"`
	SaveStatus SaveStatus      `json:"save_status"`
	Draft      *domain.Process `json:"draft"`
}

// Manager owns the wizard sessions. Abandoned sessions expire after
// the configured TTL; their unsaved changes are dropped.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	store    ProcessStore
	delay    time.Duration
	ttl      time.Duration
	logger   *logger.Logger
}

// NewManager creates a wizard manager and starts the session cleanup
// loop.
func NewManager(store ProcessStore, delay, ttl time.Duration, log *logger.Logger) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		delay:    delay,
		ttl:      ttl,
		logger:   log,
	}
	go m.cleanupLoop()
	return m
}

// generateSessionID creates a cryptographically random session ID
func generateSessionID() string {
	b := make([]byte, 16)
	rand.Read(b)
	const hex = "0123456789abcdef"
	id := make([]byte, 32)
	for i, v := range b {
		id[i*2] = hex[v>>4]
		id[i*2+1] = hex[v&0x0f]
	}
	return string(id)
}

// Start opens a new wizard session. With an existing process the
// wizard continues on a copy of that record, otherwise it starts from
// an empty draft.
func (m *Manager) Start(existing *domain.Process) *State {
	draft := &domain.Process{}
	if existing != nil {
		draft = existing.Clone()
	}
	draft.NormalizeLists()

	s := &Session{
		id:         generateSessionID(),
		draft:      draft,
		status:     SaveStatusUnsaved,
		lastActive: time.Now(),
	}
	if existing != nil {
		s.status = SaveStatusSaved
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	return m.snapshot(s)
}

// Get returns the current state of a session.
func (m *Manager) Get(sessionID string) (*State, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}
	return m.snapshot(s), nil
}

// ApplyUpdate mutates the draft and re-arms the autosave debounce.
// A previous autosave failure is retried by the timer this arms.
func (m *Manager) ApplyUpdate(sessionID string, mutate func(*domain.Process)) (*State, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(s.draft)
	s.draft.NormalizeLists()
	s.status = SaveStatusUnsaved
	s.lastActive = time.Now()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(m.delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.mu.Lock()
		defer s.mu.Unlock()
		m.flushLocked(ctx, s)
	})

	return m.snapshotLocked(s), nil
}

// Next advances to the following step. The last step is a hard stop;
// leaving the wizard goes through Finish.
func (m *Manager) Next(sessionID string) (*State, error) {
	return m.move(sessionID, 1)
}

// Previous returns to the preceding step.
func (m *Manager) Previous(sessionID string) (*State, error) {
	return m.move(sessionID, -1)
}

func (m *Manager) move(sessionID string, delta int) (*State, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.stepIndex + delta
	if next < 0 {
		next = 0
	}
	if next > len(Steps)-1 {
		next = len(Steps) - 1
	}
	s.stepIndex = next
	s.lastActive = time.Now()

	return m.snapshotLocked(s), nil
}

// Finish completes the wizard. It is only valid on the last step, any
// pending changes are saved synchronously, and the draft must have
// been persisted at least once. The session is discarded on success.
func (m *Manager) Finish(ctx context.Context, sessionID string) (*domain.Process, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stepIndex != len(Steps)-1 {
		return nil, errors.BadRequest("wizard can only be finished on the last step")
	}

	if s.status != SaveStatusSaved {
		m.flushLocked(ctx, s)
	}
	if s.status == SaveStatusError {
		return nil, errors.Internal("failed to save process")
	}
	if s.draft.ID == "" {
		return nil, errors.Validation(map[string]string{
			"process_name": "process name is required",
		})
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	m.remove(s.id)

	return s.draft.Clone(), nil
}

// Close abandons a session. Pending changes of a nameable draft are
// flushed before the session is dropped.
func (m *Manager) Close(ctx context.Context, sessionID string) error {
	s, err := m.session(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	if s.status == SaveStatusUnsaved || s.status == SaveStatusError {
		m.flushLocked(ctx, s)
	}
	m.remove(s.id)

	return nil
}

// flushLocked persists the draft. Callers hold the session lock. A
// draft without a process name stays local; nothing is written.
func (m *Manager) flushLocked(ctx context.Context, s *Session) {
	if s.draft.ProcessName == "" {
		return
	}

	s.status = SaveStatusSaving

	var (
		saved *domain.Process
		err   error
	)
	if s.draft.ID == "" {
		saved, err = m.store.Create(ctx, s.draft)
	} else {
		saved, err = m.store.Update(ctx, s.draft)
	}

	if err != nil {
		s.status = SaveStatusError
		m.logger.Error().Err(err).
			Str("session_id", s.id).
			Str("process_id", s.draft.ID).
			Msg("wizard autosave failed")
		return
	}

	s.draft.ID = saved.ID
	s.draft.CreatedAt = saved.CreatedAt
	s.draft.UpdatedAt = saved.UpdatedAt
	s.status = SaveStatusSaved
}

func (m *Manager) session(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, errors.NotFound("wizard session")
	}
	return s, nil
}

func (m *Manager) remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) snapshot(s *Session) *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return m.snapshotLocked(s)
}

func (m *Manager) snapshotLocked(s *Session) *State {
	return &State{
		SessionID:  s.id,
		Step:       Steps[s.stepIndex],
		StepIndex:  s.stepIndex,
		StepCount:  len(Steps),
		SaveStatus: s.status,
		Draft:      s.draft.Clone(),
	}
}

// cleanupLoop periodically removes expired sessions
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(m.ttl / 2)
	defer ticker.Stop()
	for range ticker.C {
		m.cleanup()
	}
}

func (m *Manager) cleanup() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.RLock()
	candidates := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		candidates = append(candidates, s)
	}
	m.mu.RUnlock()

	for _, s := range candidates {
		s.mu.Lock()
		expired := s.lastActive.Before(cutoff)
		if expired && s.timer != nil {
			s.timer.Stop()
		}
		s.mu.Unlock()
		if expired {
			m.remove(s.id)
		}
	}
}
