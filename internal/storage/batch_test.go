package storage_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/internal/process/events"
	"github.com/prozessdok/prozessdok-backend/internal/storage"
	"github.com/prozessdok/prozessdok-backend/pkg/config"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
	"github.com/prozessdok/prozessdok-backend/pkg/messaging"
	"github.com/prozessdok/prozessdok-backend/pkg/testutil"
)

type memoryStore struct {
	mu      sync.Mutex
	records map[string]*domain.Process
	updates int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[string]*domain.Process)}
}

func (s *memoryStore) seed(p *domain.Process) *domain.Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.NormalizeLists()
	s.records[p.ID] = p.Clone()
	return p.Clone()
}

func (s *memoryStore) GetByID(ctx context.Context, id string) (*domain.Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.records[id]
	if !ok {
		return nil, errors.NotFound("process")
	}
	return p.Clone(), nil
}

func (s *memoryStore) Update(ctx context.Context, p *domain.Process) (*domain.Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[p.ID]; !ok {
		return nil, errors.NotFound("process")
	}
	s.updates++
	saved := p.Clone()
	s.records[saved.ID] = saved.Clone()
	return saved, nil
}

// fakeUploader records uploads and fails for names listed in failOn.
type fakeUploader struct {
	mu     sync.Mutex
	keys   []string
	failOn map[string]bool
}

func newFakeUploader(failOn ...string) *fakeUploader {
	fail := make(map[string]bool, len(failOn))
	for _, name := range failOn {
		fail[name] = true
	}
	return &fakeUploader{failOn: fail}
}

func (u *fakeUploader) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for name := range u.failOn {
		if strings.HasSuffix(objectName, strings.NewReplacer(" ", "_", "/", "-").Replace(name)) {
			return "", errors.Internal("storage unavailable")
		}
	}
	u.keys = append(u.keys, objectName)
	return "https://files.example.com/" + objectName, nil
}

func (u *fakeUploader) callCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.keys)
}

func newTestService(store *memoryStore, uploader storage.Uploader) (*storage.BatchService, *testutil.MockPublisher) {
	sink := testutil.NewMockPublisher()
	log := logger.New("test", "test")
	publisher := events.NewProcessEventPublisherWithSink(sink, log)
	cfg := &config.UploadConfig{
		MaxFileSizeBytes: 1024 * 1024,
		MaxFilesPerBatch: 5,
		AllowedTypes:     []string{".pdf", ".png", ".bpmn", ".mp4"},
	}
	return storage.NewBatchService(store, uploader, cfg, publisher, log), sink
}

func batchFile(name, content string) storage.File {
	return storage.File{
		Name:   name,
		Size:   int64(len(content)),
		Reader: strings.NewReader(content),
	}
}

func TestUploadBatch_AppendsReferences(t *testing.T) {
	store := newMemoryStore()
	p := store.seed(&domain.Process{ProcessName: "Rechnungsfreigabe"})
	uploader := newFakeUploader()
	svc, sink := newTestService(store, uploader)

	files := []storage.File{
		batchFile("lastenheft_input.pdf", "pdf-bytes"),
		batchFile("altsystem.pdf", "mehr-bytes"),
	}

	updated, result, err := svc.UploadBatch(context.Background(), p.ID, storage.TargetLastenheftFiles, files)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Uploaded)
	assert.Empty(t, result.Failed)
	require.Len(t, updated.LastenheftUploadedFiles, 2)
	assert.Equal(t, "lastenheft_input.pdf", updated.LastenheftUploadedFiles[0].Name)
	assert.Equal(t, "pdf", updated.LastenheftUploadedFiles[0].Type)
	assert.Contains(t, updated.LastenheftUploadedFiles[0].URL, "https://files.example.com/processes/"+p.ID+"/")
	require.NotNil(t, updated.LastenheftUploadedFiles[0].UploadedDate)

	assert.Equal(t, 1, store.updates)
	sink.AssertEventPublished(t, messaging.EventFilesUploaded)
}

func TestUploadBatch_InvalidFileRejectsWholeBatch(t *testing.T) {
	store := newMemoryStore()
	p := store.seed(&domain.Process{ProcessName: "Onboarding"})
	uploader := newFakeUploader()
	svc, sink := newTestService(store, uploader)

	files := []storage.File{
		batchFile("doku.pdf", "ok"),
		batchFile("bild.png", "ok"),
		batchFile("malware.exe", "nope"),
	}

	_, _, err := svc.UploadBatch(context.Background(), p.ID, storage.TargetIstAttachments, files)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	assert.Equal(t, 0, uploader.callCount())
	assert.Equal(t, 0, store.updates)
	sink.AssertNoEventsPublished(t)
}

func TestUploadBatch_PartialFailureCommitsSuccesses(t *testing.T) {
	store := newMemoryStore()
	p := store.seed(&domain.Process{ProcessName: "Onboarding"})
	uploader := newFakeUploader("kaputt.pdf")
	svc, sink := newTestService(store, uploader)

	files := []storage.File{
		batchFile("gut.pdf", "ok"),
		batchFile("kaputt.pdf", "ok"),
		batchFile("auch_gut.png", "ok"),
	}

	updated, result, err := svc.UploadBatch(context.Background(), p.ID, storage.TargetIstAttachments, files)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Uploaded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "kaputt.pdf", result.Failed[0].Name)

	require.Len(t, updated.IstAnswers.Attachments, 2)
	assert.Equal(t, 1, store.updates)
	sink.AssertEventPublished(t, messaging.EventFilesUploaded)
}

func TestUploadBatch_AllFailuresSkipUpdate(t *testing.T) {
	store := newMemoryStore()
	p := store.seed(&domain.Process{ProcessName: "Onboarding"})
	uploader := newFakeUploader("a.pdf", "b.pdf")
	svc, _ := newTestService(store, uploader)

	files := []storage.File{
		batchFile("a.pdf", "ok"),
		batchFile("b.pdf", "ok"),
	}

	updated, result, err := svc.UploadBatch(context.Background(), p.ID, storage.TargetSollAttachments, files)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Uploaded)
	assert.Len(t, result.Failed, 2)
	assert.Empty(t, updated.SollAnswers.Attachments)
	assert.Equal(t, 0, store.updates)
}

func TestUploadBatch_RoutesTargets(t *testing.T) {
	store := newMemoryStore()
	p := store.seed(&domain.Process{ProcessName: "Onboarding"})
	svc, _ := newTestService(store, newFakeUploader())

	_, _, err := svc.UploadBatch(context.Background(), p.ID, storage.TargetBPMNFiles,
		[]storage.File{batchFile("prozess.bpmn", "<xml/>")})
	require.NoError(t, err)

	updated, _, err := svc.UploadBatch(context.Background(), p.ID, storage.TargetVideos,
		[]storage.File{batchFile("demo.mp4", "video")})
	require.NoError(t, err)

	assert.Len(t, updated.BPMNFiles, 1)
	assert.Len(t, updated.PresentationVideos, 1)
	assert.Equal(t, "prozess.bpmn", updated.BPMNFiles[0].Name)
}

func TestUploadBatch_UnknownTargetRejected(t *testing.T) {
	store := newMemoryStore()
	p := store.seed(&domain.Process{ProcessName: "Onboarding"})
	svc, _ := newTestService(store, newFakeUploader())

	_, _, err := svc.UploadBatch(context.Background(), p.ID, "wrong_list",
		[]storage.File{batchFile("doku.pdf", "ok")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBadRequest))
}

func TestUploadBatch_UnknownProcess(t *testing.T) {
	svc, _ := newTestService(newMemoryStore(), newFakeUploader())

	_, _, err := svc.UploadBatch(context.Background(), uuid.New().String(), storage.TargetIstAttachments,
		[]storage.File{batchFile("doku.pdf", "ok")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestNoopUploader_FailsFast(t *testing.T) {
	store := newMemoryStore()
	p := store.seed(&domain.Process{ProcessName: "Onboarding"})
	svc, _ := newTestService(store, &storage.NoopUploader{})

	_, result, err := svc.UploadBatch(context.Background(), p.ID, storage.TargetIstAttachments,
		[]storage.File{batchFile("doku.pdf", "ok")})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Uploaded)
	require.Len(t, result.Failed, 1)
	assert.Contains(t, result.Failed[0].Reason, "not configured")
}
