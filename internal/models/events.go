package models

import "time"

// Event names shared by the staff and customer channels. The payload shapes
// below are a wire contract the web clients render directly; changing a
// field name breaks the UIs.
const (
	EventNewOrder           = "new_order"
	EventOrderStatusUpdated = "order_status_updated"
	EventItemStatusUpdated  = "item_status_updated"
	EventTableUpdated       = "table_updated"
)

// ItemStatusStaffPayload is the enriched item broadcast to staff and kitchen
// when a single item transitions. Menu and table context is joined in so the
// kitchen display can render the line without another fetch; READY items
// drive the pickup alert downstream.
type ItemStatusStaffPayload struct {
	ID        int64       `json:"id"`
	OrderID   int64       `json:"order_id"`
	Status    OrderStatus `json:"status"`
	MenuName  string      `json:"menu_name"`
	TableName string      `json:"table_name"`
	TableID   int64       `json:"table_id"`
	Quantity  int         `json:"quantity"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderStatusCustomerPayload is the reduced order update sent to the
// ordering table's room. Customers get no other table's data and no totals.
type OrderStatusCustomerPayload struct {
	TableID int64       `json:"table_id"`
	OrderID int64       `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

// ItemStatusCustomerPayload is the reduced item update for the table's room.
type ItemStatusCustomerPayload struct {
	ItemID  int64       `json:"item_id"`
	OrderID int64       `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

// TableCustomerPayload is the minimal table update for the table's room.
type TableCustomerPayload struct {
	ID             int64 `json:"id"`
	IsCallingStaff bool  `json:"is_calling_staff"`
}

// NewOrderStatusCustomerPayload reduces an order for room-scoped delivery.
func NewOrderStatusCustomerPayload(order *Order) OrderStatusCustomerPayload {
	return OrderStatusCustomerPayload{
		TableID: order.TableID,
		OrderID: order.ID,
		Status:  order.Status,
	}
}

// NewItemStatusCustomerPayload reduces an enriched item for room delivery.
func NewItemStatusCustomerPayload(item *ItemStatusStaffPayload) ItemStatusCustomerPayload {
	return ItemStatusCustomerPayload{
		ItemID:  item.ID,
		OrderID: item.OrderID,
		Status:  item.Status,
	}
}

// NewTableCustomerPayload reduces a table for room delivery.
func NewTableCustomerPayload(table *Table) TableCustomerPayload {
	return TableCustomerPayload{
		ID:             table.ID,
		IsCallingStaff: table.IsCallingStaff,
	}
}
