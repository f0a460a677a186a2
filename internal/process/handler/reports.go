package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prozessdok/prozessdok-backend/internal/process/service"
	"github.com/prozessdok/prozessdok-backend/internal/reports"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/httputil"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// ReportsHandler handles report generation and printing
type ReportsHandler struct {
	reports *reports.Service
	service *service.ProcessService
	logger  *logger.Logger
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(reportSvc *reports.Service, processSvc *service.ProcessService, log *logger.Logger) *ReportsHandler {
	return &ReportsHandler{
		reports: reportSvc,
		service: processSvc,
		logger:  log,
	}
}

// Generate runs a report generation for the process and returns the
// updated record. Duplicate triggers while a generation is in flight
// share its result.
func (h *ReportsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	processID := chi.URLParam(r, "id")

	var req struct {
		Type string `json:"type" validate:"required"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	updated, err := h.reports.Generate(r.Context(), processID, req.Type)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, updated)
}

// Print renders a stored report as a printable HTML document. The
// document is addressed by its name.
func (h *ReportsHandler) Print(w http.ResponseWriter, r *http.Request) {
	processID := chi.URLParam(r, "id")

	name := r.URL.Query().Get("name")
	if name == "" {
		httputil.Error(w, errors.BadRequest("query parameter 'name' is required"))
		return
	}

	p, err := h.service.GetByID(r.Context(), processID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	content, found := "", false
	for _, f := range p.SpecificationFiles {
		if f.Name == name {
			content, found = f.Content, true
			break
		}
	}
	if !found {
		for _, f := range p.Base44Specifications {
			if f.Name == name {
				content, found = f.Content, true
				break
			}
		}
	}
	if !found {
		httputil.Error(w, errors.NotFound("report document"))
		return
	}

	document, err := reports.RenderReportHTML(name, content)
	if err != nil {
		httputil.Error(w, errors.Internal("failed to render report"))
		return
	}

	httputil.HTML(w, http.StatusOK, document)
}
