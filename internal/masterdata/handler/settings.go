package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prozessdok/prozessdok-backend/internal/masterdata/repository"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/httputil"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// SettingsHandler handles application settings endpoints
type SettingsHandler struct {
	repo   *repository.SettingsRepository
	logger *logger.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(repo *repository.SettingsRepository, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		repo:   repo,
		logger: log,
	}
}

// List lists all settings
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repo.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, settings)
}

// Get gets a setting by key
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.repo.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, setting)
}

// Set creates or overwrites a setting by key
func (h *SettingsHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	key := chi.URLParam(r, "key")
	if key == "" {
		httputil.Error(w, errors.Validation(map[string]string{"key": "key is required"}))
		return
	}

	setting := &repository.Setting{Key: key, Value: req.Value}
	if err := h.repo.Set(r.Context(), setting); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, setting)
}

// Delete deletes a setting by key
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
