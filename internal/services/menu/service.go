// Package menu implements catalog administration: categories and menu
// items, with visibility and availability flags controlling what customers
// can see and order.
package menu

import (
	"context"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/models"
)

// Store is the persistence contract for the catalog. Menu reads exclude
// soft-deleted rows by default.
type Store interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)

	CreateMenu(ctx context.Context, req *models.CreateMenuRequest) (*models.Menu, error)
	// ListMenus returns every live menu item; visibleOnly restricts the
	// result to the customer-facing subset.
	ListMenus(ctx context.Context, visibleOnly bool) ([]models.Menu, error)
	UpdateMenuFlags(ctx context.Context, menuID int64, req *models.UpdateMenuFlagsRequest) (*models.Menu, error)
	SoftDeleteMenu(ctx context.Context, menuID int64) error
}

// Service manages the catalog.
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates the catalog service.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

// CreateCategory adds a display category.
func (s *Service) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest, requestID string) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category, err := s.store.CreateCategory(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("category_created", "Category created", requestID, map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	return category, nil
}

// ListCategories returns all categories in display order.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

// CreateMenu adds an orderable item to an existing category.
func (s *Service) CreateMenu(ctx context.Context, req *models.CreateMenuRequest, requestID string) (*models.Menu, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.store.CategoryExists(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.Validation("category %d does not exist", req.CategoryID)
	}

	menu, err := s.store.CreateMenu(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("menu_created", "Menu item created", requestID, map[string]interface{}{
		"menu_id": menu.ID,
		"name":    menu.Name,
		"price":   menu.Price,
	})

	return menu, nil
}

// ListMenus returns the catalog; visibleOnly narrows it to what customers
// may see.
func (s *Service) ListMenus(ctx context.Context, visibleOnly bool) ([]models.Menu, error) {
	return s.store.ListMenus(ctx, visibleOnly)
}

// UpdateMenuFlags toggles availability, visibility, or recommendation on a
// menu item. Unset fields keep their current value.
func (s *Service) UpdateMenuFlags(ctx context.Context, menuID int64, req *models.UpdateMenuFlagsRequest, requestID string) (*models.Menu, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	menu, err := s.store.UpdateMenuFlags(ctx, menuID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("menu_flags_updated", "Menu flags updated", requestID, map[string]interface{}{
		"menu_id":        menu.ID,
		"is_available":   menu.IsAvailable,
		"is_visible":     menu.IsVisible,
		"is_recommended": menu.IsRecommended,
	})

	return menu, nil
}

// DeleteMenu soft-deletes a menu item. Existing order items keep their
// snapshot price and the menu row survives for their joins.
func (s *Service) DeleteMenu(ctx context.Context, menuID int64, requestID string) error {
	if err := s.store.SoftDeleteMenu(ctx, menuID); err != nil {
		return err
	}

	s.logger.Info("menu_deleted", "Menu item soft-deleted", requestID, map[string]interface{}{
		"menu_id": menuID,
	})

	return nil
}
