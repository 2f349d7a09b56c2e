// Package order implements the order domain engine: it validates and
// creates orders against table and menu state, attaches them to the table's
// open bill, and feeds the kitchen's active board.
package order

import (
	"context"

	"restaurant-orders/internal/broadcast"
	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/models"
)

// Store is the persistence contract the engine needs. The Postgres
// implementation runs each mutation as a single transaction.
type Store interface {
	// CreateOrder atomically validates table and menus, finds or creates
	// the table's open bill, inserts the order with its items, and adds the
	// order total to the bill total.
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	// ActiveOrders returns all orders in PENDING, COOKING or READY with
	// their items and menu names.
	ActiveOrders(ctx context.Context) ([]models.Order, error)
}

// Service is the order domain engine.
type Service struct {
	store     Store
	broadcast broadcast.Port
	logger    *logger.Logger
}

// NewService creates the order engine with its injected dependencies.
func NewService(store Store, bc broadcast.Port, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		broadcast: bc,
		logger:    log,
	}
}

// CreateOrder places a new order for a table. The write is a single
// transaction; the new_order event fires only after it commits. Customers
// already hold the order locally, so only the staff channel is notified.
func (s *Service) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := s.store.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order_created", "Order created", requestID, map[string]interface{}{
		"order_id":    order.ID,
		"table_id":    order.TableID,
		"total_price": order.TotalPrice,
		"item_count":  len(order.Items),
	})

	s.broadcast.EmitToStaff(ctx, models.EventNewOrder, order)

	return order, nil
}

// ActiveOrders returns the kitchen's active board. Orders whose item list
// ended up empty are dropped defensively against orphaned state.
func (s *Service) ActiveOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.ActiveOrders(ctx)
	if err != nil {
		return nil, err
	}

	filtered := orders[:0]
	for _, o := range orders {
		if len(o.Items) == 0 {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered, nil
}
