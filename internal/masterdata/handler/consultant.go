package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prozessdok/prozessdok-backend/internal/masterdata/repository"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/httputil"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// ConsultantHandler handles consultant endpoints
type ConsultantHandler struct {
	repo   *repository.ConsultantRepository
	logger *logger.Logger
}

// NewConsultantHandler creates a new consultant handler
func NewConsultantHandler(repo *repository.ConsultantRepository, log *logger.Logger) *ConsultantHandler {
	return &ConsultantHandler{
		repo:   repo,
		logger: log,
	}
}

// List lists consultants ordered by the sort query parameter
func (h *ConsultantHandler) List(w http.ResponseWriter, r *http.Request) {
	consultants, err := h.repo.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, consultants)
}

// Get gets a consultant by ID
func (h *ConsultantHandler) Get(w http.ResponseWriter, r *http.Request) {
	consultant, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, consultant)
}

// Create creates a new consultant
func (h *ConsultantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c repository.Consultant
	if err := httputil.DecodeJSON(r, &c); err != nil {
		httputil.Error(w, err)
		return
	}
	if c.Name == "" {
		httputil.Error(w, errors.Validation(map[string]string{"name": "name is required"}))
		return
	}

	if err := h.repo.Create(r.Context(), &c); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, c)
}

// Update updates a consultant
func (h *ConsultantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var c repository.Consultant
	if err := httputil.DecodeJSON(r, &c); err != nil {
		httputil.Error(w, err)
		return
	}
	c.ID = chi.URLParam(r, "id")
	if c.Name == "" {
		httputil.Error(w, errors.Validation(map[string]string{"name": "name is required"}))
		return
	}

	if err := h.repo.Update(r.Context(), &c); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// Delete deletes a consultant
func (h *ConsultantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
