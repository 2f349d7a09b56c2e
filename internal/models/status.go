package models

// OrderStatus represents the lifecycle state of an order or order item
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCooking   OrderStatus = "COOKING"
	StatusReady     OrderStatus = "READY"
	StatusServed    OrderStatus = "SERVED"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// BillStatus represents the lifecycle state of a bill
type BillStatus string

const (
	BillOpen BillStatus = "OPEN"
	BillPaid BillStatus = "PAID"
)

// ValidOrderStatus reports whether s is a known order/item status value.
// The transition graph itself is not enforced server-side; staff and kitchen
// clients are trusted to send sensible transitions, and CANCELLED is
// reachable from any non-terminal state.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusCooking, StatusReady, StatusServed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether an order in this status still belongs on the
// kitchen's active board.
func (s OrderStatus) IsActive() bool {
	return s == StatusPending || s == StatusCooking || s == StatusReady
}

// IsServedOrLater reports whether an item in this status no longer blocks
// closing the table. Cancelled items never block closing, but they are
// excluded from the due amount instead of counting as served.
func (s OrderStatus) IsServedOrLater() bool {
	return s == StatusServed || s == StatusCompleted
}

// IsTerminal reports whether no further transition is expected.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
