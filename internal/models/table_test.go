package models

import (
	"strings"
	"testing"
)

func TestCreateTableRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateTableRequest
		wantErr bool
	}{
		{name: "valid", req: &CreateTableRequest{Name: "A1"}, wantErr: false},
		{name: "missing name", req: &CreateTableRequest{}, wantErr: true},
		{name: "name too long", req: &CreateTableRequest{Name: strings.Repeat("x", 51)}, wantErr: true},
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
