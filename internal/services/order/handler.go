package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"restaurant-orders/internal/httpx"
	"restaurant-orders/internal/models"
)

// Handler exposes the order engine over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the order HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the order routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/orders", h.CreateOrder)
	r.Get("/orders/active", h.ActiveOrders)
}

// CreateOrder handles POST /orders.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req models.CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &req, requestID)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, order)
}

// ActiveOrders handles GET /orders/active.
func (h *Handler) ActiveOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ActiveOrders(r.Context())
	if err != nil {
		httpx.RespondError(w, err, httpx.RequestID(r))
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	httpx.RespondJSON(w, http.StatusOK, orders)
}
