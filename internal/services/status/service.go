// Package status implements the order and item status state machine:
// kitchen advances individual dishes, staff bulk-advance whole orders, and
// every transition keeps order and bill totals consistent and is fanned out
// to both audiences.
package status

import (
	"context"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/broadcast"
	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/models"
)

// Store is the persistence contract for status transitions.
type Store interface {
	// UpdateOrderStatus bulk-transitions an order: the order row and every
	// contained item whose status is not CANCELLED move to the new status.
	// Returns the updated order with its items.
	UpdateOrderStatus(ctx context.Context, orderID int64, newStatus models.OrderStatus) (*models.Order, error)
	// UpdateItemStatus transitions a single item and returns it enriched
	// with menu and table context for broadcast.
	UpdateItemStatus(ctx context.Context, itemID int64, newStatus models.OrderStatus) (*models.ItemStatusStaffPayload, error)
}

// Service is the status transition controller.
type Service struct {
	store     Store
	broadcast broadcast.Port
	logger    *logger.Logger
}

// NewService creates the controller with its injected dependencies.
func NewService(store Store, bc broadcast.Port, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		broadcast: bc,
		logger:    log,
	}
}

// UpdateOrderStatus bulk-advances an order. The transition graph is not
// enforced beyond the status value being known; staff clients are trusted,
// and cancelled items are always skipped.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int64, newStatus models.OrderStatus, requestID string) (*models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, apperr.Validation("unknown status %q", newStatus)
	}

	order, err := s.store.UpdateOrderStatus(ctx, orderID, newStatus)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order_status_updated", "Order status updated", requestID, map[string]interface{}{
		"order_id": order.ID,
		"table_id": order.TableID,
		"status":   order.Status,
	})

	s.broadcast.EmitToStaff(ctx, models.EventOrderStatusUpdated, order)
	s.broadcast.EmitToTable(ctx, order.TableID, models.EventOrderStatusUpdated,
		models.NewOrderStatusCustomerPayload(order))

	return order, nil
}

// UpdateOrderItemStatus transitions one dish. A READY item is the signal
// staff use for pickup, carried by the broadcast event.
func (s *Service) UpdateOrderItemStatus(ctx context.Context, itemID int64, newStatus models.OrderStatus, requestID string) (*models.ItemStatusStaffPayload, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, apperr.Validation("unknown status %q", newStatus)
	}

	item, err := s.store.UpdateItemStatus(ctx, itemID, newStatus)
	if err != nil {
		return nil, err
	}

	s.logger.Info("item_status_updated", "Order item status updated", requestID, map[string]interface{}{
		"item_id":  item.ID,
		"order_id": item.OrderID,
		"table_id": item.TableID,
		"status":   item.Status,
	})

	s.broadcast.EmitToStaff(ctx, models.EventItemStatusUpdated, item)
	s.broadcast.EmitToTable(ctx, item.TableID, models.EventItemStatusUpdated,
		models.NewItemStatusCustomerPayload(item))

	return item, nil
}
