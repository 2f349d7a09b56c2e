package models

import "time"

// Payment method labels recorded at close time. No gateway integration;
// the label is the whole payment record.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Bill is the financial aggregate for one table's current dining session.
// At most one OPEN bill exists per table at any time (index-backed).
// TotalPrice is a running aggregate maintained on write; the staff-facing
// due amount is recomputed live from items instead (see TableStatus).
type Bill struct {
	ID            int64      `json:"id"`
	TableID       int64      `json:"table_id"`
	Status        BillStatus `json:"status"`
	TotalPrice    float64    `json:"total_price"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	OpenedAt      time.Time  `json:"opened_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
}

// TableStatus is the read-side projection staff poll for a table: the live
// due amount and activity counters, recomputed from items on every call so
// cancellations can never leave a stale total.
type TableStatus struct {
	TableID       int64   `json:"table_id"`
	TotalAmount   float64 `json:"total_amount"`
	ActiveOrders  int     `json:"active_orders"`
	UnservedItems int     `json:"unserved_items"`
}

// CloseTableRequest is the staff checkout request.
type CloseTableRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// Validate checks the payment method label.
func (req *CloseTableRequest) Validate() error {
	switch req.PaymentMethod {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return nil
	}
	return errValidation("payment_method must be one of: cash, card, transfer")
}

// SetCallingRequest toggles a table's call-staff flag.
type SetCallingRequest struct {
	IsCalling bool `json:"is_calling"`
}

// SetAvailabilityRequest opens or closes a table for seating.
type SetAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// DueAmount sums quantity times snapshotted price across items, excluding
// cancelled lines. This is the amount a closing bill collects.
func DueAmount(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		if it.Status == StatusCancelled {
			continue
		}
		total += it.LineTotal()
	}
	return total
}

// CountUnserved counts the items that still block closing the table:
// non-cancelled items that are not yet served or completed.
func CountUnserved(items []OrderItem) int {
	count := 0
	for _, it := range items {
		if it.Status == StatusCancelled {
			continue
		}
		if !it.Status.IsServedOrLater() {
			count++
		}
	}
	return count
}
