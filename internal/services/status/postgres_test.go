package status

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"restaurant-orders/internal/database"
)

type execCall struct {
	sql  string
	args []any
}

// fakeTx records writes issued inside a transaction body.
type fakeTx struct {
	pgx.Tx
	execs []execCall
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func TestRecomputeTotalsSyncsBill(t *testing.T) {
	tx := &fakeTx{}
	billID := int64(11)

	if err := recomputeTotals(context.Background(), tx, 5, &billID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The order total is re-derived from items first, then the owning bill's
	// aggregate is synced from its orders: a bulk cancel must end with both
	// consistent.
	if len(tx.execs) != 2 {
		t.Fatalf("expected 2 writes, got %d", len(tx.execs))
	}
	if tx.execs[0].sql != database.RecomputeOrderTotalSQL || tx.execs[0].args[0].(int64) != 5 {
		t.Errorf("first write = %+v, want order 5 recompute", tx.execs[0])
	}
	if tx.execs[1].sql != database.SyncBillTotalSQL || tx.execs[1].args[0].(int64) != 11 {
		t.Errorf("second write = %+v, want bill 11 sync", tx.execs[1])
	}
}

func TestRecomputeTotalsWithoutBill(t *testing.T) {
	tx := &fakeTx{}

	if err := recomputeTotals(context.Background(), tx, 5, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tx.execs) != 1 || tx.execs[0].sql != database.RecomputeOrderTotalSQL {
		t.Errorf("expected only the order recompute for a bill-less order, got %+v", tx.execs)
	}
}
