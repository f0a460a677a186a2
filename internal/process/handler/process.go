// Package handler exposes the process HTTP endpoints: CRUD and list,
// the capture wizard, the detail editor, report generation and file
// uploads.
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/internal/process/repository"
	"github.com/prozessdok/prozessdok-backend/internal/process/service"
	"github.com/prozessdok/prozessdok-backend/pkg/httputil"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// ProcessHandler handles process CRUD endpoints
type ProcessHandler struct {
	service *service.ProcessService
	logger  *logger.Logger
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(svc *service.ProcessService, log *logger.Logger) *ProcessHandler {
	return &ProcessHandler{
		service: svc,
		logger:  log,
	}
}

// List lists processes with filtering, sorting and pagination
func (h *ProcessHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}

	opts := repository.ProcessListOptions{
		Status:  r.URL.Query().Get("status"),
		Search:  r.URL.Query().Get("search"),
		Sort:    r.URL.Query().Get("sort"),
		Page:    page,
		PerPage: perPage,
	}
	if customerID := r.URL.Query().Get("customer_id"); customerID != "" {
		opts.CustomerID = customerID
	}

	processes, total, err := h.service.List(r.Context(), opts)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	httputil.JSONWithMeta(w, http.StatusOK, processes, &httputil.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Get gets a process by ID
func (h *ProcessHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	process, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, process)
}

// Create creates a new process
func (h *ProcessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p domain.Process
	if err := httputil.DecodeJSON(r, &p); err != nil {
		httputil.Error(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), &p)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, created)
}

// Update overwrites a process
func (h *ProcessHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var p domain.Process
	if err := httputil.DecodeJSON(r, &p); err != nil {
		httputil.Error(w, err)
		return
	}
	p.ID = id

	updated, err := h.service.Update(r.Context(), &p)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, updated)
}

// Delete deletes a process
func (h *ProcessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
