// Package editor implements the process detail view and its explicit
// edit mode. Edits happen on a snapshot of the record and reach the
// database only through Save; Cancel discards the snapshot.
package editor

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// Mode is the editor state.
type Mode string

// Editor modes
const (
	ModeViewing Mode = "viewing"
	ModeEditing Mode = "editing"
)

// ProcessStore is the persistence collaborator. The process service
// satisfies it.
type ProcessStore interface {
	GetByID(ctx context.Context, id string) (*domain.Process, error)
	Update(ctx context.Context, p *domain.Process) (*domain.Process, error)
	Delete(ctx context.Context, id string) error
}

// Session is one open detail view.
type Session struct {
	mu         sync.Mutex
	id         string
	record     *domain.Process
	draft      *domain.Process
	mode       Mode
	lastActive time.Time
}

// State is a read snapshot of a session. Record always reflects the
// last persisted state; Draft is only set while editing.
type State struct {
	SessionID string          `json:"session_id"`
	Mode      Mode            `json:"mode"`
	Record    *domain.Process `json:"record"`
	Draft     *domain.Process `json:"draft,omitempty"`
}

// Manager owns the editor sessions.
type Manager struct {
	mu              sync.RWMutex
	sessions        map[string]*Session
	store           ProcessStore
	maxPayloadBytes int
	ttl             time.Duration
	logger          *logger.Logger
}

// NewManager creates an editor manager and starts the session cleanup
// loop.
func NewManager(store ProcessStore, maxPayloadBytes int, ttl time.Duration, log *logger.Logger) *Manager {
	m := &Manager{
		sessions:        make(map[string]*Session),
		store:           store,
		maxPayloadBytes: maxPayloadBytes,
		ttl:             ttl,
		logger:          log,
	}
	go m.cleanupLoop()
	return m
}

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

// Open loads a process into a new viewing session.
func (m *Manager) Open(ctx context.Context, processID string) (*State, error) {
	record, err := m.store.GetByID(ctx, processID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:         generateSessionID(),
		record:     record,
		mode:       ModeViewing,
		lastActive: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	return m.snapshot(s), nil
}

// Get returns the current state of a session.
func (m *Manager) Get(sessionID string) (*State, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}
	return m.snapshot(s), nil
}

// Edit switches to edit mode on a copy of the record. Entering edit
// mode twice keeps the existing draft.
func (m *Manager) Edit(sessionID string) (*State, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEditing {
		s.draft = s.record.Clone()
		s.mode = ModeEditing
	}
	s.lastActive = time.Now()

	return m.snapshotLocked(s), nil
}

// ApplyUpdate mutates the draft. Only valid while editing; nothing is
// persisted until Save.
func (m *Manager) ApplyUpdate(sessionID string, mutate func(*domain.Process)) (*State, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEditing {
		return nil, errors.BadRequest("process is not in edit mode")
	}

	mutate(s.draft)
	s.draft.NormalizeLists()
	s.lastActive = time.Now()

	return m.snapshotLocked(s), nil
}

// Save persists the draft with a single update and returns to viewing
// mode. Oversized drafts are rejected before anything is written.
func (m *Manager) Save(ctx context.Context, sessionID string) (*State, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEditing {
		return nil, errors.BadRequest("process is not in edit mode")
	}

	s.draft.NormalizeLists()

	payload, err := json.Marshal(s.draft)
	if err != nil {
		return nil, errors.Internal("failed to serialize process")
	}
	if len(payload) > m.maxPayloadBytes {
		return nil, errors.PayloadTooLarge(fmt.Sprintf(
			"process record is %d bytes, the limit is %d; remove large embedded content",
			len(payload), m.maxPayloadBytes,
		))
	}

	saved, err := m.store.Update(ctx, s.draft)
	if err != nil {
		return nil, err
	}

	s.record = saved.Clone()
	s.draft = nil
	s.mode = ModeViewing
	s.lastActive = time.Now()

	m.logger.Info().
		Str("process_id", s.record.ID).
		Int("payload_bytes", len(payload)).
		Msg("process saved from editor")

	return m.snapshotLocked(s), nil
}

// Cancel discards the draft and returns to viewing mode. The persisted
// record is untouched.
func (m *Manager) Cancel(sessionID string) (*State, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = nil
	s.mode = ModeViewing
	s.lastActive = time.Now()

	return m.snapshotLocked(s), nil
}

// Delete removes the process. The caller must confirm explicitly; the
// session is dropped on success.
func (m *Manager) Delete(ctx context.Context, sessionID string, confirmed bool) error {
	if !confirmed {
		return errors.BadRequest("deletion requires confirmation")
	}

	s, err := m.session(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.store.Delete(ctx, s.record.ID); err != nil {
		return err
	}

	m.remove(s.id)

	return nil
}

// Close drops a session. Unsaved draft changes are discarded.
func (m *Manager) Close(sessionID string) {
	m.remove(sessionID)
}

func (m *Manager) session(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, errors.NotFound("editor session")
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
	state := &State{
		SessionID: s.id,
		Mode:      s.mode,
		Record:    s.record.Clone(),
	}
	if s.draft != nil {
		state.Draft = s.draft.Clone()
	}
	return state
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
		s.mu.Unlock()
		if expired {
			m.remove(s.id)
		}
	}
}
