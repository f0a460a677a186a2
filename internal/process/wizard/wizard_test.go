package wizard_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/internal/process/wizard"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// recordingStore is an in-memory ProcessStore with failure injection
type recordingStore struct {
	mu      sync.Mutex
	records map[string]*domain.Process
	creates int
	updates int
	fail    bool
}

func newRecordingStore() *recordingStore {
	return &recordingStore{records: make(map[string]*domain.Process)}
}

func (r *recordingStore) setFail(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fail
}

func (r *recordingStore) Create(ctx context.Context, p *domain.Process) (*domain.Process, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errors.Internal("store unavailable")
	}
	r.creates++
	saved := p.Clone()
	saved.ID = uuid.New().String()
	saved.CreatedAt = time.Now()
	saved.UpdatedAt = saved.CreatedAt
	r.records[saved.ID] = saved
	return saved, nil
}

func (r *recordingStore) Update(ctx context.Context, p *domain.Process) (*domain.Process, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errors.Internal("store unavailable")
	}
	if _, ok := r.records[p.ID]; !ok {
		return nil, errors.NotFound("process")
	}
	r.updates++
	saved := p.Clone()
	saved.UpdatedAt = time.Now()
	r.records[saved.ID] = saved
	return saved, nil
}

func (r *recordingStore) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creates, r.updates
}

func newTestManager(store wizard.ProcessStore) *wizard.Manager {
	return wizard.NewManager(store, 10*time.Millisecond, time.Hour, logger.New("test", "test"))
}

func waitForStatus(t *testing.T, m *wizard.Manager, sessionID string, want wizard.SaveStatus) *wizard.State {
	t.Helper()

	var state *wizard.State
	require.Eventually(t, func() bool {
		s, err := m.Get(sessionID)
		if err != nil {
			return false
		}
		state = s
		return state.SaveStatus == want
	}, 2*time.Second, 5*time.Millisecond)

	return state
}

func TestWizard_StartsOnFirstStep(t *testing.T) {
	m := newTestManager(newRecordingStore())

	state := m.Start(nil)

	assert.Equal(t, wizard.StepBasicInfo, state.Step)
	assert.Equal(t, 0, state.StepIndex)
	assert.Equal(t, 6, state.StepCount)
	assert.Equal(t, wizard.SaveStatusUnsaved, state.SaveStatus)
}

func TestWizard_StepNavigationClampsAtBounds(t *testing.T) {
	m := newTestManager(newRecordingStore())
	state := m.Start(nil)

	prev, err := m.Previous(state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, prev.StepIndex)

	for i := 0; i < 10; i++ {
		state, err = m.Next(state.SessionID)
		require.NoError(t, err)
	}
	assert.Equal(t, wizard.StepROI, state.Step)
	assert.Equal(t, len(wizard.Steps)-1, state.StepIndex)
}

func TestWizard_AutosaveCreatesOnceNamed(t *testing.T) {
	store := newRecordingStore()
	m := newTestManager(store)
	state := m.Start(nil)

	_, err := m.ApplyUpdate(state.SessionID, func(p *domain.Process) {
		p.ProcessName = "Rechnungsfreigabe"
	})
	require.NoError(t, err)

	saved := waitForStatus(t, m, state.SessionID, wizard.SaveStatusSaved)
	assert.NotEmpty(t, saved.Draft.ID)

	creates, updates := store.counts()
	assert.Equal(t, 1, creates)
	assert.Equal(t, 0, updates)
}

func TestWizard_AutosaveSkipsUnnamedDraft(t *testing.T) {
	store := newRecordingStore()
	m := newTestManager(store)
	state := m.Start(nil)

	_, err := m.ApplyUpdate(state.SessionID, func(p *domain.Process) {
		p.IstAnswers.Bottlenecks = "Medienbrüche"
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	current, err := m.Get(state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, wizard.SaveStatusUnsaved, current.SaveStatus)

	creates, _ := store.counts()
	assert.Equal(t, 0, creates)
}

func TestWizard_DebounceCoalescesRapidEdits(t *testing.T) {
	store := newRecordingStore()
	m := newTestManager(store)
	state := m.Start(nil)

	for i := 0; i < 5; i++ {
		_, err := m.ApplyUpdate(state.SessionID, func(p *domain.Process) {
			p.ProcessName = "Angebotserstellung"
			p.IstAnswers.ProcessSteps = "Schritt"
		})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	waitForStatus(t, m, state.SessionID, wizard.SaveStatusSaved)

	creates, updates := store.counts()
	assert.Equal(t, 1, creates+updates)
}

func TestWizard_SubsequentSavesUpdate(t *testing.T) {
	store := newRecordingStore()
	m := newTestManager(store)
	state := m.Start(nil)

	_, err := m.ApplyUpdate(state.SessionID, func(p *domain.Process) {
		p.ProcessName = "Onboarding"
	})
	require.NoError(t, err)
	waitForStatus(t, m, state.SessionID, wizard.SaveStatusSaved)

	_, err = m.ApplyUpdate(state.SessionID, func(p *domain.Process) {
		p.SollDescription = "Automatisierter Ablauf"
	})
	require.NoError(t, err)
	waitForStatus(t, m, state.SessionID, wizard.SaveStatusSaved)

	creates, updates := store.counts()
	assert.Equal(t, 1, creates)
	assert.Equal(t, 1, updates)
}

func TestWizard_SaveFailureRetriedOnNextEdit(t *testing.T) {
	store := newRecordingStore()
	m := newTestManager(store)
	state := m.Start(nil)

	store.setFail(true)
	_, err := m.ApplyUpdate(state.SessionID, func(p *domain.Process) {
		p.ProcessName = "Reklamationsprozess"
	})
	require.NoError(t, err)
	waitForStatus(t, m, state.SessionID, wizard.SaveStatusError)

	// No retry without a new mutation.
	time.Sleep(50 * time.Millisecond)
	current, err := m.Get(state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, wizard.SaveStatusError, current.SaveStatus)

	store.setFail(false)
	_, err = m.ApplyUpdate(state.SessionID, func(p *domain.Process) {
		p.IstAnswers.ManualTasks = "Abtippen"
	})
	require.NoError(t, err)
	waitForStatus(t, m, state.SessionID, wizard.SaveStatusSaved)
}

func TestWizard_FinishRequiresLastStep(t *testing.T) {
	m := newTestManager(newRecordingStore())
	state := m.Start(nil)

	_, err := m.Finish(context.Background(), state.SessionID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBadRequest))
}

func TestWizard_FinishFlushesPendingChanges(t *testing.T) {
	store := newRecordingStore()
	m := newTestManager(store)
	state := m.Start(nil)

	_, err := m.ApplyUpdate(state.SessionID, func(p *domain.Process) {
		p.ProcessName = "Rechnungsfreigabe"
		p.ROIData.EfficiencySavings = 1200
	})
	require.NoError(t, err)

	for i := 0; i < len(wizard.Steps)-1; i++ {
		_, err = m.Next(state.SessionID)
		require.NoError(t, err)
	}

	finished, err := m.Finish(context.Background(), state.SessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, finished.ID)

	// Session is gone after finish.
	_, err = m.Get(state.SessionID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestWizard_FinishRejectsUnnamedDraft(t *testing.T) {
	m := newTestManager(newRecordingStore())
	state := m.Start(nil)

	for i := 0; i < len(wizard.Steps)-1; i++ {
		_, err := m.Next(state.SessionID)
		require.NoError(t, err)
	}

	_, err := m.Finish(context.Background(), state.SessionID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestWizard_CloseFlushesPendingChanges(t *testing.T) {
	store := newRecordingStore()
	m := newTestManager(store)
	state := m.Start(nil)

	_, err := m.ApplyUpdate(state.SessionID, func(p *domain.Process) {
		p.ProcessName = "Urlaubsantrag"
	})
	require.NoError(t, err)

	require.NoError(t, m.Close(context.Background(), state.SessionID))

	creates, updates := store.counts()
	assert.Equal(t, 1, creates+updates)

	_, err = m.Get(state.SessionID)
	require.Error(t, err)
}

func TestWizard_StartFromExistingProcess(t *testing.T) {
	store := newRecordingStore()
	m := newTestManager(store)

	existing := &domain.Process{ProcessName: "Bestandsprozess"}
	saved, err := store.Create(context.Background(), existing)
	require.NoError(t, err)

	state := m.Start(saved)
	assert.Equal(t, wizard.SaveStatusSaved, state.SaveStatus)
	assert.Equal(t, saved.ID, state.Draft.ID)

	_, err = m.ApplyUpdate(state.SessionID, func(p *domain.Process) {
		p.SollDescription = "Neues Zielbild"
	})
	require.NoError(t, err)
	waitForStatus(t, m, state.SessionID, wizard.SaveStatusSaved)

	creates, updates := store.counts()
	assert.Equal(t, 1, creates)
	assert.Equal(t, 1, updates)
}
