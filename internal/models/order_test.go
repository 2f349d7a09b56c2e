package models

import (
	"strings"
	"testing"
)

func validCreateOrderRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		TableID: 1,
		Items: []CreateOrderItem{
			{MenuID: 1, Quantity: 2},
			{MenuID: 2, Quantity: 1, Note: "no onions"},
		},
	}
}

func TestCreateOrderRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *CreateOrderRequest)
		wantErr bool
	}{
		{
			name:    "valid request",
			mutate:  func(req *CreateOrderRequest) {},
			wantErr: false,
		},
		{
			name:    "missing table id",
			mutate:  func(req *CreateOrderRequest) { req.TableID = 0 },
			wantErr: true,
		},
		{
			name:    "empty items",
			mutate:  func(req *CreateOrderRequest) { req.Items = nil },
			wantErr: true,
		},
		{
			name: "too many items",
			mutate: func(req *CreateOrderRequest) {
				req.Items = make([]CreateOrderItem, MaxItemsPerOrder+1)
				for i := range req.Items {
					req.Items[i] = CreateOrderItem{MenuID: 1, Quantity: 1}
				}
			},
			wantErr: true,
		},
		{
			name:    "missing menu id",
			mutate:  func(req *CreateOrderRequest) { req.Items[0].MenuID = 0 },
			wantErr: true,
		},
		{
			name:    "quantity zero",
			mutate:  func(req *CreateOrderRequest) { req.Items[0].Quantity = 0 },
			wantErr: true,
		},
		{
			name:    "quantity at lower bound",
			mutate:  func(req *CreateOrderRequest) { req.Items[0].Quantity = MinItemQuantity },
			wantErr: false,
		},
		{
			name:    "quantity at upper bound",
			mutate:  func(req *CreateOrderRequest) { req.Items[0].Quantity = MaxItemQuantity },
			wantErr: false,
		},
		{
			name:    "quantity above upper bound",
			mutate:  func(req *CreateOrderRequest) { req.Items[0].Quantity = MaxItemQuantity + 1 },
			wantErr: true,
		},
		{
			name:    "note too long",
			mutate:  func(req *CreateOrderRequest) { req.Items[0].Note = strings.Repeat("x", MaxNoteLength+1) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateOrderRequest()
			tt.mutate(req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildOrderItems(t *testing.T) {
	menus := map[int64]Menu{
		1: {ID: 1, Name: "Tom Yum", Price: 12.50},
		2: {ID: 2, Name: "Pad Thai", Price: 9.00},
	}
	req := []CreateOrderItem{
		{MenuID: 1, Quantity: 2, Note: "extra spicy"},
		{MenuID: 2, Quantity: 1},
	}

	items, total := BuildOrderItems(req, menus)

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].MenuName != "Tom Yum" || items[0].Price != 12.50 {
		t.Errorf("item 0 did not snapshot menu data: %+v", items[0])
	}
	if items[0].Note != "extra spicy" {
		t.Errorf("item 0 lost its note: %q", items[0].Note)
	}
	if items[0].Status != StatusPending {
		t.Errorf("new item status = %s, want %s", items[0].Status, StatusPending)
	}
	if want := 2*12.50 + 9.00; total != want {
		t.Errorf("total = %v, want %v", total, want)
	}
}

func TestBuildOrderItemsSnapshotIsStable(t *testing.T) {
	menus := map[int64]Menu{1: {ID: 1, Name: "Latte", Price: 4.00}}
	items, _ := BuildOrderItems([]CreateOrderItem{{MenuID: 1, Quantity: 1}}, menus)

	// A later menu price change must not affect the built item.
	menus[1] = Menu{ID: 1, Name: "Latte", Price: 5.00}

	if items[0].Price != 4.00 {
		t.Errorf("snapshot price = %v, want 4.00", items[0].Price)
	}
}

func TestOrderTotal(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2, Price: 10.00, Status: StatusCooking},
		{Quantity: 1, Price: 5.00, Status: StatusCancelled},
		{Quantity: 3, Price: 2.00, Status: StatusServed},
	}

	if got, want := OrderTotal(items), 26.00; got != want {
		t.Errorf("OrderTotal() = %v, want %v", got, want)
	}
}
