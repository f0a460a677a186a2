// Package handler exposes the master data CRUD endpoints.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prozessdok/prozessdok-backend/internal/masterdata/repository"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/httputil"
	"github.com/prozessdok/prozessdok-backend/pkg/logger"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	repo   *repository.CustomerRepository
	logger *logger.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(repo *repository.CustomerRepository, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		repo:   repo,
		logger: log,
	}
}

// List lists customers ordered by the sort query parameter
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, customers)
}

// Get gets a customer by ID
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, customer)
}

// Create creates a new customer
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c repository.Customer
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

// Update updates a customer
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var c repository.Customer
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

// Delete deletes a customer
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
