package tables

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/database"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.vals))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.vals[i].(int64)
		case *string:
			*p = r.vals[i].(string)
		case *bool:
			*p = r.vals[i].(bool)
		case *time.Time:
			*p = r.vals[i].(time.Time)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

// fakeTx scripts row results per statement.
type fakeTx struct {
	pgx.Tx
	rowResults map[string][]fakeRow
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	queue := t.rowResults[sql]
	if len(queue) == 0 {
		return fakeRow{err: fmt.Errorf("unexpected statement: %s", sql)}
	}
	row := queue[0]
	t.rowResults[sql] = queue[1:]
	return row
}

func tableRow(id int64, available bool) fakeRow {
	now := time.Now()
	return fakeRow{vals: []any{id, "A1", available, false, now, now}}
}

func TestSetAvailabilityTxOccupancyGuard(t *testing.T) {
	// The guarded UPDATE touches no row, but the table itself exists: the
	// occupancy guard fired.
	tx := &fakeTx{rowResults: map[string][]fakeRow{
		database.SetTableAvailabilitySQL: {{err: pgx.ErrNoRows}},
		database.GetTableSQL:             {tableRow(1, true)},
	}}

	_, err := setAvailabilityTx(context.Background(), tx, 1, false)
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetAvailabilityTxMissingTable(t *testing.T) {
	tx := &fakeTx{rowResults: map[string][]fakeRow{
		database.SetTableAvailabilitySQL: {{err: pgx.ErrNoRows}},
		database.GetTableSQL:             {{err: pgx.ErrNoRows}},
	}}

	_, err := setAvailabilityTx(context.Background(), tx, 9, false)
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestSetAvailabilityTxUpdates(t *testing.T) {
	tx := &fakeTx{rowResults: map[string][]fakeRow{
		database.SetTableAvailabilitySQL: {tableRow(1, true)},
		database.TableOccupiedSQL:        {{vals: []any{false}}},
	}}

	table, err := setAvailabilityTx(context.Background(), tx, 1, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !table.IsAvailable || table.IsOccupied {
		t.Errorf("table = %+v, want available and unoccupied", table)
	}
}
