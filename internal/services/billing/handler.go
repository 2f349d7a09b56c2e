package billing

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/httpx"
	"restaurant-orders/internal/models"
)

// Handler exposes the closing engine over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the billing HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the billing routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tables/{id}/status", h.TableStatus)
	r.Post("/tables/{id}/checkout", h.CloseTable)
	r.Post("/tables/{id}/call", h.SetCallingStaff)
}

// TableStatus handles GET /tables/{id}/status. This is the idempotent read
// clients poll to reconcile after any dropped broadcast event.
func (h *Handler) TableStatus(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	tableID, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	status, err := h.service.TableStatus(r.Context(), tableID)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, status)
}

// CloseTable handles POST /tables/{id}/checkout.
func (h *Handler) CloseTable(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	tableID, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	var req models.CloseTableRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	if err := h.service.CloseTable(r.Context(), tableID, &req, requestID); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// SetCallingStaff handles POST /tables/{id}/call.
func (h *Handler) SetCallingStaff(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	tableID, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	var req models.SetCallingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	table, err := h.service.SetCallingStaff(r.Context(), tableID, req.IsCalling, requestID)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, table)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid id parameter")
	}
	return id, nil
}
