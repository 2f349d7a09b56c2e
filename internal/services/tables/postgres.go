package tables

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/database"
	"restaurant-orders/internal/models"
)

// PostgresStore implements Store over the shared connection pool.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates the pgx-backed store.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateTable inserts a new table row.
func (s *PostgresStore) CreateTable(ctx context.Context, name string) (*models.Table, error) {
	var t models.Table
	err := s.db.QueryRow(ctx, database.InsertTableSQL, name).
		Scan(&t.ID, &t.Name, &t.IsAvailable, &t.IsCallingStaff, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal(err, "failed to insert table")
	}
	return &t, nil
}

// ListTables returns all live tables with occupancy derived from open bills.
func (s *PostgresStore) ListTables(ctx context.Context) ([]models.Table, error) {
	rows, err := s.db.Query(ctx, database.ListTablesSQL)
	if err != nil {
		return nil, apperr.Internal(err, "failed to query tables")
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.Name, &t.IsAvailable, &t.IsCallingStaff, &t.CreatedAt, &t.UpdatedAt, &t.IsOccupied); err != nil {
			return nil, apperr.Internal(err, "failed to scan table row")
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err, "failed to iterate table rows")
	}
	return tables, nil
}

// GetTable loads a live table and derives its occupancy.
func (s *PostgresStore) GetTable(ctx context.Context, tableID int64) (*models.Table, error) {
	var t models.Table
	err := s.db.QueryRow(ctx, database.GetTableSQL, tableID).
		Scan(&t.ID, &t.Name, &t.IsAvailable, &t.IsCallingStaff, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("table %d not found", tableID)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load table")
	}

	if err := s.db.QueryRow(ctx, database.TableOccupiedSQL, tableID).Scan(&t.IsOccupied); err != nil {
		return nil, apperr.Internal(err, "failed to derive table occupancy")
	}
	return &t, nil
}

// SetAvailability flips the staff-controlled open/closed flag.
func (s *PostgresStore) SetAvailability(ctx context.Context, tableID int64, available bool) (*models.Table, error) {
	var table *models.Table
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		updated, err := setAvailabilityTx(ctx, tx, tableID, available)
		if err != nil {
			return err
		}
		table = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// setAvailabilityTx applies the guarded availability update. The occupancy
// guard lives in the UPDATE's WHERE clause, so a concurrent order cannot
// slip in between a read-side check and this write; zero rows then means the
// table is gone or the guard fired.
func setAvailabilityTx(ctx context.Context, tx pgx.Tx, tableID int64, available bool) (*models.Table, error) {
	var t models.Table
	err := tx.QueryRow(ctx, database.SetTableAvailabilitySQL, available, tableID).
		Scan(&t.ID, &t.Name, &t.IsAvailable, &t.IsCallingStaff, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists models.Table
		lookupErr := tx.QueryRow(ctx, database.GetTableSQL, tableID).
			Scan(&exists.ID, &exists.Name, &exists.IsAvailable, &exists.IsCallingStaff, &exists.CreatedAt, &exists.UpdatedAt)
		if errors.Is(lookupErr, pgx.ErrNoRows) {
			return nil, apperr.NotFound("table %d not found", tableID)
		}
		if lookupErr != nil {
			return nil, apperr.Internal(lookupErr, "failed to load table")
		}
		return nil, apperr.Validation("table is occupied and cannot be made unavailable")
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to update table availability")
	}

	if err := tx.QueryRow(ctx, database.TableOccupiedSQL, tableID).Scan(&t.IsOccupied); err != nil {
		return nil, apperr.Internal(err, "failed to derive table occupancy")
	}
	return &t, nil
}

// SoftDelete marks a table deleted without removing the row.
func (s *PostgresStore) SoftDelete(ctx context.Context, tableID int64) error {
	tag, err := s.db.Pool.Exec(ctx, database.SoftDeleteTableSQL, tableID)
	if err != nil {
		return apperr.Internal(err, "failed to delete table")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("table %d not found", tableID)
	}
	return nil
}
