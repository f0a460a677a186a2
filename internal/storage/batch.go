package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/internal/process/events"
	"github.com/prozessdok/prozessdok-backend/pkg/config"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// Upload targets, one per document list on the process record.
const (
	TargetIstAttachments  = "ist_attachments"
	TargetSollAttachments = "soll_attachments"
	TargetBPMNFiles       = "bpmn_files"
	TargetVideos          = "presentation_videos"
	TargetImages          = "presentation_images"
	TargetPowerpoints     = "presentation_powerpoints"
	TargetLastenheftFiles = "lastenheft_uploaded_files"
)

// File is one member of an upload batch.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// FileError reports why a single file of an otherwise valid batch
// could not be stored.
type FileError struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// BatchResult summarizes one batch upload.
type BatchResult struct {
	Uploaded int         `json:"uploaded"`
	Failed   []FileError `json:"failed"`
}

// ProcessStore is the persistence surface the upload service needs.
type ProcessStore interface {
	GetByID(ctx context.Context, id string) (*domain.Process, error)
	Update(ctx context.Context, p *domain.Process) (*domain.Process, error)
}

// BatchService validates and uploads document batches and attaches the
// resulting references to a process record.
type BatchService struct {
	store     ProcessStore
	uploader  Uploader
	cfg       *config.UploadConfig
	publisher *events.ProcessEventPublisher
	logger    *logger.Logger
}

// NewBatchService creates a batch upload service.
func NewBatchService(store ProcessStore, uploader Uploader, cfg *config.UploadConfig, publisher *events.ProcessEventPublisher, log *logger.Logger) *BatchService {
	return &BatchService{
		store:     store,
		uploader:  uploader,
		cfg:       cfg,
		publisher: publisher,
		logger:    log,
	}
}

// UploadBatch validates the whole batch up front, then uploads file by
// file. A single failed upload does not abort the remaining files; the
// failures are collected and reported together while the successful
// references are committed with one update.
func (s *BatchService) UploadBatch(ctx context.Context, processID, target string, files []File) (*domain.Process, *BatchResult, error) {
	if !validTarget(target) {
		return nil, nil, errors.BadRequest(fmt.Sprintf("unknown upload target %q", target))
	}

	infos := make([]FileInfo, len(files))
	for i, f := range files {
		infos[i] = FileInfo{Name: f.Name, Size: f.Size}
	}
	if err := ValidateBatch(infos, s.cfg); err != nil {
		return nil, nil, err
	}

	p, err := s.store.GetByID(ctx, processID)
	if err != nil {
		return nil, nil, err
	}

	result := &BatchResult{Failed: []FileError{}}
	now := time.Now().UTC()

	for _, f := range files {
		url, err := s.uploader.Upload(ctx, objectKey(processID, f.Name), f.Reader, f.Size, f.ContentType)
		if err != nil {
			s.logger.Error().Err(err).
				Str("process_id", processID).
				Str("file_name", f.Name).
				Msg("file upload failed")
			result.Failed = append(result.Failed, FileError{Name: f.Name, Reason: err.Error()})
			continue
		}
		appendReference(p, target, url, f, now)
		result.Uploaded++
	}

	if result.Uploaded > 0 {
		p, err = s.store.Update(ctx, p)
		if err != nil {
			return nil, nil, err
		}
	}

	s.logger.Info().
		Str("process_id", processID).
		Str("target", target).
		Int("uploaded", result.Uploaded).
		Int("failed", len(result.Failed)).
		Msg("upload batch processed")

	s.publisher.PublishFilesUploaded(ctx, processID, result.Uploaded, len(result.Failed))

	return p, result, nil
}

func validTarget(target string) bool {
	switch target {
	case TargetIstAttachments, TargetSollAttachments, TargetBPMNFiles,
		TargetVideos, TargetImages, TargetPowerpoints, TargetLastenheftFiles:
		return true
	}
	return false
}

func appendReference(p *domain.Process, target, url string, f File, now time.Time) {
	switch target {
	case TargetIstAttachments:
		p.IstAnswers.Attachments = append(p.IstAnswers.Attachments, domain.Attachment{
			URL:          url,
			Name:         f.Name,
			FileType:     domain.InferFileType(f.Name),
			Size:         f.Size,
			UploadedDate: &now,
		})
	case TargetSollAttachments:
		p.SollAnswers.Attachments = append(p.SollAnswers.Attachments, domain.Attachment{
			URL:          url,
			Name:         f.Name,
			FileType:     domain.InferFileType(f.Name),
			Size:         f.Size,
			UploadedDate: &now,
		})
	case TargetBPMNFiles:
		p.BPMNFiles = append(p.BPMNFiles, domain.BPMNFile{
			URL:          url,
			Name:         f.Name,
			UploadedDate: &now,
		})
	case TargetVideos:
		p.PresentationVideos = append(p.PresentationVideos, domain.PresentationAsset{
			URL:          url,
			Name:         f.Name,
			Size:         f.Size,
			UploadedDate: &now,
		})
	case TargetImages:
		p.PresentationImages = append(p.PresentationImages, domain.PresentationAsset{
			URL:          url,
			Name:         f.Name,
			Size:         f.Size,
			UploadedDate: &now,
		})
	case TargetPowerpoints:
		p.PresentationPowerpoints = append(p.PresentationPowerpoints, domain.PresentationAsset{
			URL:          url,
			Name:         f.Name,
			Size:         f.Size,
			UploadedDate: &now,
		})
	case TargetLastenheftFiles:
		p.LastenheftUploadedFiles = append(p.LastenheftUploadedFiles, domain.UploadedFile{
			URL:          url,
			Name:         f.Name,
			Type:         domain.InferFileType(f.Name),
			Size:         f.Size,
			UploadedDate: &now,
		})
	}
}

// objectKey builds the storage key for an uploaded file.
// Convention: processes/{process_id}/{random}_{sanitized_name}
func objectKey(processID, fileName string) string {
	sanitized := strings.NewReplacer(" ", "_", "/", "-", "\\", "-").Replace(fileName)
	return fmt.Sprintf("processes/%s/%s_%s", processID, uuid.New().String()[:8], sanitized)
}
