package billing

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

// GetTable loads a live table and derives its occupancy from the open bill.
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

// OpenBill returns the table's open bill.
func (s *PostgresStore) OpenBill(ctx context.Context, tableID int64) (*models.Bill, error) {
	var b models.Bill
	err := s.db.QueryRow(ctx, database.GetOpenBillSQL, tableID).
		Scan(&b.ID, &b.TableID, &b.Status, &b.TotalPrice, &b.OpenedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("no open bill for table %d", tableID)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load open bill")
	}
	return &b, nil
}

// BillItems returns every item across the bill's orders.
func (s *PostgresStore) BillItems(ctx context.Context, billID int64) ([]models.OrderItem, error) {
	rows, err := s.db.Query(ctx, database.BillItemsSQL, billID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to query bill items")
	}
	defer rows.Close()

	return scanItems(rows)
}

// ActiveTableOrders returns the table's non-completed orders with items.
func (s *PostgresStore) ActiveTableOrders(ctx context.Context, tableID int64) ([]models.Order, error) {
	rows, err := s.db.Query(ctx, database.ActiveTableOrdersSQL, tableID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to query table orders")
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.TableID, &o.BillID, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, apperr.Internal(err, "failed to scan order row")
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err, "failed to iterate order rows")
	}
	if len(orders) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(orders))
	index := make(map[int64]*models.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = &orders[i]
	}

	itemRows, err := s.db.Query(ctx, database.OrderItemsForOrdersSQL, ids)
	if err != nil {
		return nil, apperr.Internal(err, "failed to query order items")
	}
	defer itemRows.Close()

	items, err := scanItems(itemRows)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if o, ok := index[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return orders, nil
}

// SettleBill marks the bill PAID and completes its orders in one
// transaction. The WHERE clause re-checks the unserved gate so a concurrent
// item change between the service's check and this write cannot slip
// through.
func (s *PostgresStore) SettleBill(ctx context.Context, billID int64, paymentMethod string) error {
	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, database.SettleBillSQL, billID, paymentMethod)
		if err != nil {
			return apperr.Internal(err, "failed to settle bill")
		}
		if tag.RowsAffected() == 0 {
			return apperr.Validation("cannot close: unserved items remain")
		}
		if _, err := tx.Exec(ctx, database.CompleteBillOrdersSQL, billID); err != nil {
			return apperr.Internal(err, "failed to complete bill orders")
		}
		return nil
	})
}

// SetCallingStaff flips the table's call flag.
func (s *PostgresStore) SetCallingStaff(ctx context.Context, tableID int64, calling bool) (*models.Table, error) {
	var t models.Table
	err := s.db.QueryRow(ctx, database.SetTableCallingSQL, calling, tableID).
		Scan(&t.ID, &t.Name, &t.IsAvailable, &t.IsCallingStaff, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("table %d not found", tableID)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to update call-staff flag")
	}

	if err := s.db.QueryRow(ctx, database.TableOccupiedSQL, tableID).Scan(&t.IsOccupied); err != nil {
		return nil, apperr.Internal(err, "failed to derive table occupancy")
	}
	return &t, nil
}

func scanItems(rows pgx.Rows) ([]models.OrderItem, error) {
	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuID, &it.MenuName, &it.Quantity, &it.Note, &it.Price, &it.Status, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, apperr.Internal(err, "failed to scan order item row")
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err, "failed to iterate order item rows")
	}
	return items, nil
}
