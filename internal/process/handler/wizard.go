package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/internal/process/service"
	"github.com/prozessdok/prozessdok-backend/internal/process/wizard"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/httputil"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// WizardHandler handles the capture wizard endpoints
type WizardHandler struct {
	manager *wizard.Manager
	service *service.ProcessService
	logger  *logger.Logger
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(manager *wizard.Manager, svc *service.ProcessService, log *logger.Logger) *WizardHandler {
	return &WizardHandler{
		manager: manager,
		service: svc,
		logger:  log,
	}
}

// Start opens a wizard session, either empty or continuing an existing
// process.
func (h *WizardHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProcessID string `json:"process_id"`
	}
	if r.ContentLength > 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}
	}

	var existing *domain.Process
	if req.ProcessID != "" {
		p, err := h.service.GetByID(r.Context(), req.ProcessID)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		existing = p
	}

	httputil.Created(w, h.manager.Start(existing))
}

// Get returns the current state of a wizard session
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.manager.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, state)
}

// Update merges the submitted fields into the draft and re-arms the
// autosave debounce.
func (h *WizardHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.Error(w, errors.BadRequest("failed to read request body"))
		return
	}
	if !json.Valid(body) {
		httputil.Error(w, errors.BadRequest("invalid JSON body"))
		return
	}

	state, err := h.manager.ApplyUpdate(chi.URLParam(r, "sessionID"), func(p *domain.Process) {
		id := p.ID
		json.Unmarshal(body, p)
		p.ID = id
	})
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, state)
}

// Next advances the wizard one step
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	state, err := h.manager.Next(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, state)
}

// Previous goes back one step
func (h *WizardHandler) Previous(w http.ResponseWriter, r *http.Request) {
	state, err := h.manager.Previous(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, state)
}

// Finish completes the wizard and returns the persisted process
func (h *WizardHandler) Finish(w http.ResponseWriter, r *http.Request) {
	process, err := h.manager.Finish(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, process)
}

// Close abandons the wizard session, flushing pending changes of a
// named draft first
func (h *WizardHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Close(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
