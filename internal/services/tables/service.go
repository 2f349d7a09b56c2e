// Package tables implements staff/admin table management: registration,
// listing with derived occupancy, the availability flag, and soft deletion.
package tables

import (
	"context"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/broadcast"
	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/models"
)

// Store is the persistence contract for table management. Reads exclude
// soft-deleted rows by default.
type Store interface {
	CreateTable(ctx context.Context, name string) (*models.Table, error)
	ListTables(ctx context.Context) ([]models.Table, error)
	// GetTable returns a live table with derived occupancy.
	GetTable(ctx context.Context, tableID int64) (*models.Table, error)
	SetAvailability(ctx context.Context, tableID int64, available bool) (*models.Table, error)
	SoftDelete(ctx context.Context, tableID int64) error
}

// Service manages the dining-room layout.
type Service struct {
	store     Store
	broadcast broadcast.Port
	logger    *logger.Logger
}

// NewService creates the table management service.
func NewService(store Store, bc broadcast.Port, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		broadcast: bc,
		logger:    log,
	}
}

// CreateTable registers a new dining table.
func (s *Service) CreateTable(ctx context.Context, req *models.CreateTableRequest, requestID string) (*models.Table, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	table, err := s.store.CreateTable(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("table_created", "Table created", requestID, map[string]interface{}{
		"table_id": table.ID,
		"name":     table.Name,
	})

	return table, nil
}

// ListTables returns all live tables with derived occupancy.
func (s *Service) ListTables(ctx context.Context) ([]models.Table, error) {
	return s.store.ListTables(ctx)
}

// SetAvailability opens or closes a table for seating. The store rejects
// closing an occupied table; the guard runs inside its transaction so no
// concurrent order can slip past it.
func (s *Service) SetAvailability(ctx context.Context, tableID int64, available bool, requestID string) (*models.Table, error) {
	updated, err := s.store.SetAvailability(ctx, tableID, available)
	if err != nil {
		return nil, err
	}

	s.logger.Info("table_availability_updated", "Table availability updated", requestID, map[string]interface{}{
		"table_id":     updated.ID,
		"is_available": updated.IsAvailable,
	})

	s.broadcast.EmitToStaff(ctx, models.EventTableUpdated, updated)
	s.broadcast.EmitToTable(ctx, updated.ID, models.EventTableUpdated,
		models.NewTableCustomerPayload(updated))

	return updated, nil
}

// DeleteTable soft-deletes a table, preserving referential history. An
// occupied table cannot be deleted.
func (s *Service) DeleteTable(ctx context.Context, tableID int64, requestID string) error {
	table, err := s.store.GetTable(ctx, tableID)
	if err != nil {
		return err
	}
	if table.IsOccupied {
		return apperr.Validation("table is occupied and cannot be deleted")
	}

	if err := s.store.SoftDelete(ctx, tableID); err != nil {
		return err
	}

	s.logger.Info("table_deleted", "Table soft-deleted", requestID, map[string]interface{}{
		"table_id": tableID,
	})

	return nil
}
