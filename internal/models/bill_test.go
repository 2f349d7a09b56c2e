package models

import "testing"

func TestCloseTableRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		wantErr bool
	}{
		{name: "cash", method: PaymentCash, wantErr: false},
		{name: "card", method: PaymentCard, wantErr: false},
		{name: "transfer", method: PaymentTransfer, wantErr: false},
		{name: "empty", method: "", wantErr: true},
		{name: "unknown", method: "crypto", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &CloseTableRequest{PaymentMethod: tt.method}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDueAmount(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2, Price: 12.50, Status: StatusServed},
		{Quantity: 1, Price: 9.00, Status: StatusCooking},
		{Quantity: 4, Price: 3.00, Status: StatusCancelled},
	}

	// Cancelled lines are excluded; everything else counts regardless of
	// whether it has been served yet.
	if got, want := DueAmount(items), 34.00; got != want {
		t.Errorf("DueAmount() = %v, want %v", got, want)
	}
}

func TestCountUnserved(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
		want  int
	}{
		{
			name: "mixed statuses",
			items: []OrderItem{
				{Status: StatusPending},
				{Status: StatusCooking},
				{Status: StatusReady},
				{Status: StatusServed},
				{Status: StatusCompleted},
				{Status: StatusCancelled},
			},
			want: 3,
		},
		{
			name: "all served or cancelled",
			items: []OrderItem{
				{Status: StatusServed},
				{Status: StatusCancelled},
			},
			want: 0,
		},
		{
			name:  "no items",
			items: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountUnserved(tt.items); got != tt.want {
				t.Errorf("CountUnserved() = %d, want %d", got, tt.want)
			}
		})
	}
}
