package menu

import (
	"context"
	"testing"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/models"
)

type fakeStore struct {
	categoryExists bool
	createCalls    int
	menu           *models.Menu
}

func (f *fakeStore) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	return &models.Category{ID: 1, Name: req.Name, NameAlt: req.NameAlt, Position: req.Position}, nil
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}

func (f *fakeStore) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	return f.categoryExists, nil
}

func (f *fakeStore) CreateMenu(ctx context.Context, req *models.CreateMenuRequest) (*models.Menu, error) {
	f.createCalls++
	return &models.Menu{ID: 1, CategoryID: req.CategoryID, Name: req.Name, Price: req.Price, IsAvailable: true, IsVisible: true}, nil
}

func (f *fakeStore) ListMenus(ctx context.Context, visibleOnly bool) ([]models.Menu, error) {
	return nil, nil
}

func (f *fakeStore) UpdateMenuFlags(ctx context.Context, menuID int64, req *models.UpdateMenuFlagsRequest) (*models.Menu, error) {
	m := *f.menu
	if req.IsAvailable != nil {
		m.IsAvailable = *req.IsAvailable
	}
	if req.IsVisible != nil {
		m.IsVisible = *req.IsVisible
	}
	if req.IsRecommended != nil {
		m.IsRecommended = *req.IsRecommended
	}
	return &m, nil
}

func (f *fakeStore) SoftDeleteMenu(ctx context.Context, menuID int64) error {
	return nil
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, logger.New("test"))
}

func TestCreateMenuRejectsMissingCategory(t *testing.T) {
	store := &fakeStore{categoryExists: false}
	svc := newTestService(store)

	req := &models.CreateMenuRequest{CategoryID: 9, Name: "Espresso", Price: 3.00}
	_, err := svc.CreateMenu(context.Background(), req, "req-1")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.createCalls != 0 {
		t.Error("menu must not be created under a missing category")
	}
}

func TestCreateMenu(t *testing.T) {
	store := &fakeStore{categoryExists: true}
	svc := newTestService(store)

	req := &models.CreateMenuRequest{CategoryID: 1, Name: "Espresso", Price: 3.00}
	menu, err := svc.CreateMenu(context.Background(), req, "req-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !menu.IsAvailable || !menu.IsVisible {
		t.Errorf("new menus default to available and visible: %+v", menu)
	}
}

func TestUpdateMenuFlagsRejectsEmptyUpdate(t *testing.T) {
	svc := newTestService(&fakeStore{menu: &models.Menu{ID: 1}})

	_, err := svc.UpdateMenuFlags(context.Background(), 1, &models.UpdateMenuFlagsRequest{}, "req-1")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateMenuFlagsPartialUpdate(t *testing.T) {
	store := &fakeStore{menu: &models.Menu{ID: 1, IsAvailable: true, IsVisible: true}}
	svc := newTestService(store)

	unavailable := false
	menu, err := svc.UpdateMenuFlags(context.Background(), 1, &models.UpdateMenuFlagsRequest{IsAvailable: &unavailable}, "req-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if menu.IsAvailable {
		t.Error("IsAvailable should be false after the update")
	}
	if !menu.IsVisible {
		t.Error("IsVisible must keep its stored value when unset")
	}
}
