// Package billing implements the bill/table closing engine: the live due
// amount projection, the checkout gate that refuses to close a table while
// food is still owed, and the call-staff toggle that rides the same
// broadcast channel.
package billing

import (
	"context"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/broadcast"
	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/models"
)

// Store is the persistence contract for the closing engine.
type Store interface {
	// GetTable returns a live (non-deleted) table with derived occupancy.
	GetTable(ctx context.Context, tableID int64) (*models.Table, error)
	// OpenBill returns the table's open bill, NotFound when none exists.
	OpenBill(ctx context.Context, tableID int64) (*models.Bill, error)
	// BillItems returns every item across the bill's orders.
	BillItems(ctx context.Context, billID int64) ([]models.OrderItem, error)
	// ActiveTableOrders returns the table's non-completed orders with items.
	ActiveTableOrders(ctx context.Context, tableID int64) ([]models.Order, error)
	// SettleBill atomically marks the bill PAID and completes its orders.
	// The unserved-items gate is re-checked inside the same statement; a
	// Validation error is returned when it fails.
	SettleBill(ctx context.Context, billID int64, paymentMethod string) error
	// SetCallingStaff flips the table's call flag and returns the table.
	SetCallingStaff(ctx context.Context, tableID int64, calling bool) (*models.Table, error)
}

// Service is the bill/table closing engine.
type Service struct {
	store     Store
	broadcast broadcast.Port
	logger    *logger.Logger
}

// NewService creates the closing engine with its injected dependencies.
func NewService(store Store, bc broadcast.Port, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		broadcast: bc,
		logger:    log,
	}
}

// TableStatus recomputes the table's due amount live from items. The stored
// bill total is a write-side aggregate; the staff-facing amount is always
// re-derived so cancellations can never leave a stale figure.
func (s *Service) TableStatus(ctx context.Context, tableID int64) (*models.TableStatus, error) {
	if _, err := s.store.GetTable(ctx, tableID); err != nil {
		return nil, err
	}

	orders, err := s.store.ActiveTableOrders(ctx, tableID)
	if err != nil {
		return nil, err
	}

	var items []models.OrderItem
	for _, o := range orders {
		items = append(items, o.Items...)
	}

	return &models.TableStatus{
		TableID:       tableID,
		TotalAmount:   models.DueAmount(items),
		ActiveOrders:  len(orders),
		UnservedItems: models.CountUnserved(items),
	}, nil
}

// CloseTable checks out a table: every non-cancelled item across the open
// bill must be served before the bill can be marked PAID. The gate is a hard
// block with no override path.
func (s *Service) CloseTable(ctx context.Context, tableID int64, req *models.CloseTableRequest, requestID string) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.store.GetTable(ctx, tableID); err != nil {
		return err
	}

	bill, err := s.store.OpenBill(ctx, tableID)
	if apperr.IsNotFound(err) {
		return apperr.Validation("table has no open bill")
	}
	if err != nil {
		return err
	}

	items, err := s.store.BillItems(ctx, bill.ID)
	if err != nil {
		return err
	}
	if unserved := models.CountUnserved(items); unserved > 0 {
		return apperr.Validation("cannot close: unserved items remain")
	}

	if err := s.store.SettleBill(ctx, bill.ID, req.PaymentMethod); err != nil {
		return err
	}

	s.logger.Info("table_closed", "Bill settled and table released", requestID, map[string]interface{}{
		"table_id":       tableID,
		"bill_id":        bill.ID,
		"payment_method": req.PaymentMethod,
	})

	// Settling closed the bill, so the refetched table reads unoccupied.
	table, err := s.store.GetTable(ctx, tableID)
	if err != nil {
		return err
	}
	s.emitTableUpdated(ctx, table)

	return nil
}

// SetCallingStaff toggles the customer's call-staff flag; acknowledgement by
// staff is the same transition back to false.
func (s *Service) SetCallingStaff(ctx context.Context, tableID int64, calling bool, requestID string) (*models.Table, error) {
	table, err := s.store.SetCallingStaff(ctx, tableID, calling)
	if err != nil {
		return nil, err
	}

	s.logger.Info("table_call_updated", "Table call-staff flag updated", requestID, map[string]interface{}{
		"table_id":   table.ID,
		"is_calling": table.IsCallingStaff,
	})

	s.emitTableUpdated(ctx, table)

	return table, nil
}

func (s *Service) emitTableUpdated(ctx context.Context, table *models.Table) {
	s.broadcast.EmitToStaff(ctx, models.EventTableUpdated, table)
	s.broadcast.EmitToTable(ctx, table.ID, models.EventTableUpdated,
		models.NewTableCustomerPayload(table))
}
