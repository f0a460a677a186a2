package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prozessdok/prozessdok-backend/internal/storage"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/httputil"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// maxMultipartMemory bounds the in-memory part of multipart parsing;
// larger files spill to temp files.
const maxMultipartMemory = 32 << 20

// UploadHandler handles batch file uploads
type UploadHandler struct {
	batches *storage.BatchService
	logger  *logger.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(batches *storage.BatchService, log *logger.Logger) *UploadHandler {
	return &UploadHandler{
		batches: batches,
		logger:  log,
	}
}

// Upload accepts a multipart batch under the "files" field and attaches
// the stored references to the target document list of the process.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	processID := chi.URLParam(r, "id")
	target := chi.URLParam(r, "target")

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httputil.Error(w, errors.BadRequest("invalid multipart request"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	files := make([]storage.File, 0, len(headers))
	opened := make([]interface{ Close() error }, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			httputil.Error(w, errors.BadRequest("failed to read uploaded file "+fh.Filename))
			return
		}
		opened = append(opened, f)
		files = append(files, storage.File{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      f,
		})
	}

	process, result, err := h.batches.UploadBatch(r.Context(), processID, target, files)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"process": process,
		"result":  result,
	})
}
