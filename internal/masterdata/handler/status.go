package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prozessdok/prozessdok-backend/internal/masterdata/repository"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/httputil"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// StatusHandler handles process status endpoints
type StatusHandler struct {
	repo   *repository.StatusRepository
	logger *logger.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(repo *repository.StatusRepository, log *logger.Logger) *StatusHandler {
	return &StatusHandler{
		repo:   repo,
		logger: log,
	}
}

// List lists process statuses ordered by the sort query parameter
func (h *StatusHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.repo.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, statuses)
}

// Get gets a process status by ID
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, status)
}

// Create creates a new process status
func (h *StatusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var s repository.ProcessStatus
	if err := httputil.DecodeJSON(r, &s); err != nil {
		httputil.Error(w, err)
		return
	}
	if s.Name == "" {
		httputil.Error(w, errors.Validation(map[string]string{"name": "name is required"}))
		return
	}

	if err := h.repo.Create(r.Context(), &s); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, s)
}

// Update updates a process status
func (h *StatusHandler) Update(w http.ResponseWriter, r *http.Request) {
	var s repository.ProcessStatus
	if err := httputil.DecodeJSON(r, &s); err != nil {
		httputil.Error(w, err)
		return
	}
	s.ID = chi.URLParam(r, "id")
	if s.Name == "" {
		httputil.Error(w, errors.Validation(map[string]string{"name": "name is required"}))
		return
	}

	if err := h.repo.Update(r.Context(), &s); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, s)
}

// Delete deletes a process status
func (h *StatusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
