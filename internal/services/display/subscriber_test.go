package display

import (
	"strings"
	"testing"
	"time"

	"restaurant-orders/internal/models"
)

var displayTime = time.Date(2026, 8, 31, 18, 30, 0, 0, time.UTC)

func TestFormatNewOrder(t *testing.T) {
	order := &models.Order{
		ID:      10,
		TableID: 3,
		Items: []models.OrderItem{
			{Quantity: 2, MenuName: "Tom Yum", Note: "extra spicy"},
			{Quantity: 1, MenuName: "Pad Thai"},
		},
	}

	got := formatNewOrder(displayTime, order)
	want := "🆕 [18:30:00] New order #10 for table 3 (2 items)\n" +
		"    2x Tom Yum (note: extra spicy)\n" +
		"    1x Pad Thai"
	if got != want {
		t.Errorf("formatNewOrder() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatItemUpdate(t *testing.T) {
	item := &models.ItemStatusStaffPayload{
		ID:        7,
		OrderID:   5,
		MenuName:  "Green Curry",
		TableName: "A2",
		Quantity:  1,
	}

	tests := []struct {
		status models.OrderStatus
		want   string
	}{
		{models.StatusReady, "✅ [18:30:00] READY: 1x Green Curry for A2 (order #5), pick up!"},
		{models.StatusCancelled, "❌ [18:30:00] CANCELLED: 1x Green Curry for A2 (order #5)"},
		{models.StatusCooking, "🍳 [18:30:00] COOKING: 1x Green Curry for A2 (order #5)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			it := *item
			it.Status = tt.status
			if got := formatItemUpdate(displayTime, &it); got != tt.want {
				t.Errorf("formatItemUpdate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTableUpdate(t *testing.T) {
	calling := &models.Table{ID: 2, Name: "A2", IsCallingStaff: true}
	if got := formatTableUpdate(displayTime, calling); !strings.Contains(got, "calling staff") {
		t.Errorf("formatTableUpdate() = %q, want a call-staff line", got)
	}

	idle := &models.Table{ID: 2, Name: "A2", IsAvailable: true}
	if got := formatTableUpdate(displayTime, idle); !strings.Contains(got, "available=true, occupied=false") {
		t.Errorf("formatTableUpdate() = %q", got)
	}
}
