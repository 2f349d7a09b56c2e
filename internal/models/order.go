package models

import (
	"fmt"
	"time"
)

// Bounds enforced on incoming orders.
const (
	MinItemQuantity  = 1
	MaxItemQuantity  = 99
	MaxItemsPerOrder = 50
	MaxNoteLength    = 255
)

// OrderItem is one line within an order: one menu item at one quantity with
// its own lifecycle status. Price is the menu price snapshotted at order
// time, so later menu price changes never drift historical totals.
type OrderItem struct {
	ID        int64       `json:"id"`
	OrderID   int64       `json:"order_id"`
	MenuID    int64       `json:"menu_id"`
	MenuName  string      `json:"menu_name"`
	Quantity  int         `json:"quantity"`
	Note      string      `json:"note,omitempty"`
	Price     float64     `json:"price"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// LineTotal is quantity times the snapshotted price.
func (it *OrderItem) LineTotal() float64 {
	return float64(it.Quantity) * it.Price
}

// Order is one customer submission tied to a table and a bill. Status
// mirrors the contained items in aggregate; TotalPrice is the sum of the
// non-cancelled items' line totals.
type Order struct {
	ID         int64       `json:"id"`
	TableID    int64       `json:"table_id"`
	BillID     *int64      `json:"bill_id,omitempty"`
	Status     OrderStatus `json:"status"`
	TotalPrice float64     `json:"total_price"`
	Items      []OrderItem `json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// CreateOrderItem is one requested line in a new order.
type CreateOrderItem struct {
	MenuID   int64  `json:"menu_id"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// CreateOrderRequest is the customer request to place an order.
type CreateOrderRequest struct {
	TableID int64             `json:"table_id"`
	Items   []CreateOrderItem `json:"items"`
}

// Validate checks request shape: table reference, item count and per-item
// numeric bounds. Existence of the table and menus is checked against the
// store inside the creation transaction.
func (req *CreateOrderRequest) Validate() error {
	if req.TableID <= 0 {
		return errValidation("table_id is required")
	}
	if len(req.Items) == 0 {
		return errValidation("items array cannot be empty")
	}
	if len(req.Items) > MaxItemsPerOrder {
		return errValidation("items array cannot contain more than %d items", MaxItemsPerOrder)
	}
	for i, item := range req.Items {
		prefix := fmt.Sprintf("items[%d]", i)
		if item.MenuID <= 0 {
			return errValidation("%s.menu_id is required", prefix)
		}
		if item.Quantity < MinItemQuantity || item.Quantity > MaxItemQuantity {
			return errValidation("%s.quantity must be between %d and %d", prefix, MinItemQuantity, MaxItemQuantity)
		}
		if len(item.Note) > MaxNoteLength {
			return errValidation("%s.note must not exceed %d characters", prefix, MaxNoteLength)
		}
	}
	return nil
}

// BuildOrderItems resolves requested lines against the menus loaded from the
// store, snapshotting each menu's current price. The returned total is the
// sum of the line totals. Every requested menu id must be present in menus;
// existence is verified by the caller before building.
func BuildOrderItems(items []CreateOrderItem, menus map[int64]Menu) ([]OrderItem, float64) {
	built := make([]OrderItem, 0, len(items))
	var total float64
	for _, req := range items {
		menu := menus[req.MenuID]
		item := OrderItem{
			MenuID:   menu.ID,
			MenuName: menu.Name,
			Quantity: req.Quantity,
			Note:     req.Note,
			Price:    menu.Price,
			Status:   StatusPending,
		}
		total += item.LineTotal()
		built = append(built, item)
	}
	return built, total
}

// OrderTotal recomputes an order's total from its items, excluding cancelled
// lines. Totals are always re-derived from items rather than incrementally
// patched.
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		if it.Status == StatusCancelled {
			continue
		}
		total += it.LineTotal()
	}
	return total
}
