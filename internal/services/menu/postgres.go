package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/database"
	"restaurant-orders/internal/models"
)

// PostgresStore implements Store over the shared connection pool.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates the pgx-backed store.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateCategory inserts a new category row.
func (s *PostgresStore) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	c := models.Category{
		Name:     req.Name,
		NameAlt:  req.NameAlt,
		Position: req.Position,
	}
	err := s.db.QueryRow(ctx, database.InsertCategorySQL, req.Name, req.NameAlt, req.Position).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal(err, "failed to insert category")
	}
	return &c, nil
}

// ListCategories returns all categories ordered by position.
func (s *PostgresStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.Query(ctx, database.ListCategoriesSQL)
	if err != nil {
		return nil, apperr.Internal(err, "failed to query categories")
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.NameAlt, &c.Position, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, apperr.Internal(err, "failed to scan category row")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err, "failed to iterate category rows")
	}
	return categories, nil
}

// CategoryExists reports whether the category id is present.
func (s *PostgresStore) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, database.CategoryExistsSQL, categoryID).Scan(&exists); err != nil {
		return false, apperr.Internal(err, "failed to check category existence")
	}
	return exists, nil
}

// CreateMenu inserts a new menu row.
func (s *PostgresStore) CreateMenu(ctx context.Context, req *models.CreateMenuRequest) (*models.Menu, error) {
	m := models.Menu{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		NameAlt:       req.NameAlt,
		Price:         req.Price,
		IsRecommended: req.IsRecommended,
	}
	err := s.db.QueryRow(ctx, database.InsertMenuSQL, req.CategoryID, req.Name, req.NameAlt, req.Price, req.IsRecommended).
		Scan(&m.ID, &m.IsAvailable, &m.IsVisible, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal(err, "failed to insert menu")
	}
	return &m, nil
}

// ListMenus returns live menu rows, optionally narrowed to visible ones.
func (s *PostgresStore) ListMenus(ctx context.Context, visibleOnly bool) ([]models.Menu, error) {
	query := database.ListMenusSQL
	if visibleOnly {
		query = database.ListVisibleMenusSQL
	}

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperr.Internal(err, "failed to query menus")
	}
	defer rows.Close()

	var menus []models.Menu
	for rows.Next() {
		var m models.Menu
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Name, &m.NameAlt, &m.Price, &m.IsAvailable, &m.IsVisible, &m.IsRecommended, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, apperr.Internal(err, "failed to scan menu row")
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err, "failed to iterate menu rows")
	}
	return menus, nil
}

// UpdateMenuFlags applies the provided flags; nil fields pass through as
// NULL and COALESCE keeps the stored value.
func (s *PostgresStore) UpdateMenuFlags(ctx context.Context, menuID int64, req *models.UpdateMenuFlagsRequest) (*models.Menu, error) {
	var m models.Menu
	err := s.db.QueryRow(ctx, database.UpdateMenuFlagsSQL, req.IsAvailable, req.IsVisible, req.IsRecommended, menuID).
		Scan(&m.ID, &m.CategoryID, &m.Name, &m.NameAlt, &m.Price, &m.IsAvailable, &m.IsVisible, &m.IsRecommended, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("menu %d not found", menuID)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to update menu flags")
	}
	return &m, nil
}

// SoftDeleteMenu marks a menu item deleted without removing the row.
func (s *PostgresStore) SoftDeleteMenu(ctx context.Context, menuID int64) error {
	tag, err := s.db.Pool.Exec(ctx, database.SoftDeleteMenuSQL, menuID)
	if err != nil {
		return apperr.Internal(err, "failed to delete menu")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("menu %d not found", menuID)
	}
	return nil
}
