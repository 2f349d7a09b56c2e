package models

import (
	"time"

	"restaurant-orders/internal/apperr"
)

// errValidation keeps validation call sites short inside this package.
func errValidation(format string, args ...any) error {
	return apperr.Validation(format, args...)
}

// Category groups menus for display. Position controls display order.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	NameAlt   string    `json:"name_alt"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Menu is an orderable item owned by exactly one category. Names are
// bilingual; NameAlt carries the secondary language.
type Menu struct {
	ID            int64      `json:"id"`
	CategoryID    int64      `json:"category_id"`
	Name          string     `json:"name"`
	NameAlt       string     `json:"name_alt"`
	Price         float64    `json:"price"`
	IsAvailable   bool       `json:"is_available"`
	IsVisible     bool       `json:"is_visible"`
	IsRecommended bool       `json:"is_recommended"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// CreateCategoryRequest is the admin request to add a category.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	NameAlt  string `json:"name_alt"`
	Position int    `json:"position"`
}

// Validate checks the create-category request.
func (req *CreateCategoryRequest) Validate() error {
	if len(req.Name) == 0 {
		return errValidation("name is required")
	}
	if len(req.Name) > 100 {
		return errValidation("name must not exceed 100 characters")
	}
	if req.Position < 0 {
		return errValidation("position must not be negative")
	}
	return nil
}

// CreateMenuRequest is the admin request to add a menu item.
type CreateMenuRequest struct {
	CategoryID    int64   `json:"category_id"`
	Name          string  `json:"name"`
	NameAlt       string  `json:"name_alt"`
	Price         float64 `json:"price"`
	IsRecommended bool    `json:"is_recommended"`
}

// Validate checks the create-menu request.
func (req *CreateMenuRequest) Validate() error {
	if req.CategoryID <= 0 {
		return errValidation("category_id is required")
	}
	if len(req.Name) == 0 {
		return errValidation("name is required")
	}
	if len(req.Name) > 100 {
		return errValidation("name must not exceed 100 characters")
	}
	if req.Price < 0.01 || req.Price > 99999.99 {
		return errValidation("price must be between 0.01 and 99999.99")
	}
	return nil
}

// UpdateMenuFlagsRequest toggles the display/stock flags on a menu item.
// Nil fields are left unchanged.
type UpdateMenuFlagsRequest struct {
	IsAvailable   *bool `json:"is_available,omitempty"`
	IsVisible     *bool `json:"is_visible,omitempty"`
	IsRecommended *bool `json:"is_recommended,omitempty"`
}

// Validate rejects an update that changes nothing.
func (req *UpdateMenuFlagsRequest) Validate() error {
	if req.IsAvailable == nil && req.IsVisible == nil && req.IsRecommended == nil {
		return errValidation("at least one flag must be provided")
	}
	return nil
}
