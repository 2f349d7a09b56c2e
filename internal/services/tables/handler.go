package tables

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/httpx"
	"restaurant-orders/internal/models"
)

// Handler exposes table management over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the tables HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the table management routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tables", h.ListTables)
	r.Post("/tables", h.CreateTable)
	r.Patch("/tables/{id}/availability", h.SetAvailability)
	r.Delete("/tables/{id}", h.DeleteTable)
}

// ListTables handles GET /tables.
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.ListTables(r.Context())
	if err != nil {
		httpx.RespondError(w, err, httpx.RequestID(r))
		return
	}
	if tables == nil {
		tables = []models.Table{}
	}
	httpx.RespondJSON(w, http.StatusOK, tables)
}

// CreateTable handles POST /tables.
func (h *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req models.CreateTableRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	table, err := h.service.CreateTable(r.Context(), &req, requestID)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, table)
}

// SetAvailability handles PATCH /tables/{id}/availability.
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	tableID, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	var req models.SetAvailabilityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	table, err := h.service.SetAvailability(r.Context(), tableID, req.IsAvailable, requestID)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, table)
}

// DeleteTable handles DELETE /tables/{id}.
func (h *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	tableID, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	if err := h.service.DeleteTable(r.Context(), tableID, requestID); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid id parameter")
	}
	return id, nil
}
