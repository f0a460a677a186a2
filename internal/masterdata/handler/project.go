package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prozessdok/prozessdok-backend/internal/masterdata/repository"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/httputil"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	repo   *repository.ProjectRepository
	logger *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(repo *repository.ProjectRepository, log *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		repo:   repo,
		logger: log,
	}
}

// List lists projects ordered by the sort query parameter
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.repo.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, projects)
}

// Get gets a project by ID
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, project)
}

// Create creates a new project
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p repository.Project
	if err := httputil.DecodeJSON(r, &p); err != nil {
		httputil.Error(w, err)
		return
	}
	if p.Name == "" {
		httputil.Error(w, errors.Validation(map[string]string{"name": "name is required"}))
		return
	}

	if err := h.repo.Create(r.Context(), &p); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, p)
}

// Update updates a project
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p repository.Project
	if err := httputil.DecodeJSON(r, &p); err != nil {
		httputil.Error(w, err)
		return
	}
	p.ID = chi.URLParam(r, "id")
	if p.Name == "" {
		httputil.Error(w, errors.Validation(map[string]string{"name": "name is required"}))
		return
	}

	if err := h.repo.Update(r.Context(), &p); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, p)
}

// Delete deletes a project
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
