package models

import "time"

// Table represents a physical dining location.
// IsOccupied is derived from the existence of an open bill and is never
// stored; repositories fill it in on read.
type Table struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	IsAvailable    bool       `json:"is_available"`
	IsCallingStaff bool       `json:"is_calling_staff"`
	IsOccupied     bool       `json:"is_occupied"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// CreateTableRequest is the staff/admin request to register a new table.
type CreateTableRequest struct {
	Name string `json:"name"`
}

// Validate checks the create-table request.
func (req *CreateTableRequest) Validate() error {
	if len(req.Name) == 0 {
		return errValidation("name is required")
	}
	if len(req.Name) > 50 {
		return errValidation("name must not exceed 50 characters")
	}
	return nil
}
