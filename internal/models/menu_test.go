package models

import (
	"strings"
	"testing"
)

func TestCreateCategoryRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateCategoryRequest
		wantErr bool
	}{
		{
			name:    "valid",
			req:     &CreateCategoryRequest{Name: "Drinks", NameAlt: "음료", Position: 1},
			wantErr: false,
		},
		{
			name:    "missing name",
			req:     &CreateCategoryRequest{Position: 1},
			wantErr: true,
		},
		{
			name:    "name too long",
			req:     &CreateCategoryRequest{Name: strings.Repeat("x", 101)},
			wantErr: true,
		},
		{
			name:    "negative position",
			req:     &CreateCategoryRequest{Name: "Drinks", Position: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateMenuRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateMenuRequest
		wantErr bool
	}{
		{
			name:    "valid",
			req:     &CreateMenuRequest{CategoryID: 1, Name: "Americano", Price: 3.50},
			wantErr: false,
		},
		{
			name:    "missing category",
			req:     &CreateMenuRequest{Name: "Americano", Price: 3.50},
			wantErr: true,
		},
		{
			name:    "missing name",
			req:     &CreateMenuRequest{CategoryID: 1, Price: 3.50},
			wantErr: true,
		},
		{
			name:    "price zero",
			req:     &CreateMenuRequest{CategoryID: 1, Name: "Water", Price: 0},
			wantErr: true,
		},
		{
			name:    "price too high",
			req:     &CreateMenuRequest{CategoryID: 1, Name: "Wagyu", Price: 100000},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateMenuFlagsRequestValidate(t *testing.T) {
	truth := true

	if err := (&UpdateMenuFlagsRequest{}).Validate(); err == nil {
		t.Error("expected error for all-nil flags update")
	}
	if err := (&UpdateMenuFlagsRequest{IsVisible: &truth}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
