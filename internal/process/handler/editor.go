package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/internal/process/editor"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/httputil"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// EditorHandler handles the process detail/edit endpoints
type EditorHandler struct {
	manager *editor.Manager
	logger  *logger.Logger
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(manager *editor.Manager, log *logger.Logger) *EditorHandler {
	return &EditorHandler{
		manager: manager,
		logger:  log,
	}
}

// Open loads a process into a new viewing session
func (h *EditorHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProcessID string `json:"process_id" validate:"required,uuid"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	state, err := h.manager.Open(r.Context(), req.ProcessID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, state)
}

// Get returns the current state of an editor session
func (h *EditorHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.manager.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, state)
}

// Edit switches the session into edit mode
func (h *EditorHandler) Edit(w http.ResponseWriter, r *http.Request) {
	state, err := h.manager.Edit(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, state)
}

// Update merges the submitted fields into the draft
func (h *EditorHandler) Update(w http.ResponseWriter, r *http.Request) {
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

// Save persists the draft and returns to viewing mode
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	state, err := h.manager.Save(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, state)
}

// Cancel discards the draft and returns to viewing mode
func (h *EditorHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	state, err := h.manager.Cancel(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, state)
}

// Delete removes the process behind the session. Requires explicit
// confirmation in the request body.
func (h *EditorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Confirmed bool `json:"confirmed"`
	}
	if r.ContentLength > 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}
	}

	if err := h.manager.Delete(r.Context(), chi.URLParam(r, "sessionID"), req.Confirmed); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// Close drops the session; unsaved draft changes are discarded
func (h *EditorHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.manager.Close(chi.URLParam(r, "sessionID"))
	httputil.NoContent(w)
}
