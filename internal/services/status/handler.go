package status

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/httpx"
	"restaurant-orders/internal/models"
)

// Handler exposes status transitions over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the status HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the status routes.
func (h *Handler) Register(r chi.Router) {
	r.Patch("/orders/{id}/status", h.UpdateOrderStatus)
	r.Patch("/order-items/{id}/status", h.UpdateOrderItemStatus)
}

type statusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateOrderStatus handles PATCH /orders/{id}/status.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	orderID, err := parseID(r, "id")
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), orderID, req.Status, requestID)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, order)
}

// UpdateOrderItemStatus handles PATCH /order-items/{id}/status.
func (h *Handler) UpdateOrderItemStatus(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	itemID, err := parseID(r, "id")
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	item, err := h.service.UpdateOrderItemStatus(r.Context(), itemID, req.Status, requestID)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, item)
}

func parseID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid %s parameter", param)
	}
	return id, nil
}
