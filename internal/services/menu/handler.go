package menu

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/httpx"
	"restaurant-orders/internal/models"
)

// Handler exposes catalog administration over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the catalog HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the catalog routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/categories", h.ListCategories)
	r.Post("/categories", h.CreateCategory)
	r.Get("/menus", h.ListMenus)
	r.Post("/menus", h.CreateMenu)
	r.Patch("/menus/{id}", h.UpdateMenuFlags)
	r.Delete("/menus/{id}", h.DeleteMenu)
}

// ListCategories handles GET /categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httpx.RespondError(w, err, httpx.RequestID(r))
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	httpx.RespondJSON(w, http.StatusOK, categories)
}

// CreateCategory handles POST /categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req models.CreateCategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req, requestID)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, category)
}

// ListMenus handles GET /menus. The visible=true query narrows the result
// to the customer-facing catalog.
func (h *Handler) ListMenus(w http.ResponseWriter, r *http.Request) {
	visibleOnly := r.URL.Query().Get("visible") == "true"

	menus, err := h.service.ListMenus(r.Context(), visibleOnly)
	if err != nil {
		httpx.RespondError(w, err, httpx.RequestID(r))
		return
	}
	if menus == nil {
		menus = []models.Menu{}
	}
	httpx.RespondJSON(w, http.StatusOK, menus)
}

// CreateMenu handles POST /menus.
func (h *Handler) CreateMenu(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req models.CreateMenuRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	menu, err := h.service.CreateMenu(r.Context(), &req, requestID)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, menu)
}

// UpdateMenuFlags handles PATCH /menus/{id}.
func (h *Handler) UpdateMenuFlags(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	menuID, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	var req models.UpdateMenuFlagsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	menu, err := h.service.UpdateMenuFlags(r.Context(), menuID, &req, requestID)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, menu)
}

// DeleteMenu handles DELETE /menus/{id}.
func (h *Handler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	menuID, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err, requestID)
		return
	}

	if err := h.service.DeleteMenu(r.Context(), menuID, requestID); err != nil {
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
