package status

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

// UpdateOrderStatus bulk-updates an order and its non-cancelled items, then
// re-derives the order and bill totals from items. Totals are never patched
// incrementally at this layer, so a bulk cancel leaves them consistent.
func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, orderID int64, newStatus models.OrderStatus) (*models.Order, error) {
	var order *models.Order

	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		o, err := loadOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, database.UpdateOrderStatusSQL, newStatus, orderID); err != nil {
			return apperr.Internal(err, "failed to update order status")
		}
		if _, err := tx.Exec(ctx, database.BulkUpdateItemsStatusSQL, newStatus, orderID); err != nil {
			return apperr.Internal(err, "failed to update order items status")
		}
		if err := recomputeTotals(ctx, tx, orderID, o.BillID); err != nil {
			return err
		}

		updated, err := loadOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := loadItems(ctx, tx, updated); err != nil {
			return err
		}

		order = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateItemStatus updates one item, re-derives totals, and returns the item
// joined with its menu and table context.
func (s *PostgresStore) UpdateItemStatus(ctx context.Context, itemID int64, newStatus models.OrderStatus) (*models.ItemStatusStaffPayload, error) {
	var item *models.ItemStatusStaffPayload

	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		var orderID, tableID int64
		var billID *int64
		err := tx.QueryRow(ctx, database.GetItemOrderSQL, itemID).Scan(&orderID, &tableID, &billID)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("order item %d not found", itemID)
		}
		if err != nil {
			return apperr.Internal(err, "failed to load order item")
		}

		if _, err := tx.Exec(ctx, database.UpdateItemStatusSQL, newStatus, itemID); err != nil {
			return apperr.Internal(err, "failed to update item status")
		}
		if err := recomputeTotals(ctx, tx, orderID, billID); err != nil {
			return err
		}

		var enriched models.ItemStatusStaffPayload
		err = tx.QueryRow(ctx, database.GetItemEnrichedSQL, itemID).
			Scan(&enriched.ID, &enriched.OrderID, &enriched.Status, &enriched.MenuName,
				&enriched.TableName, &enriched.TableID, &enriched.Quantity, &enriched.Note, &enriched.CreatedAt)
		if err != nil {
			return apperr.Internal(err, "failed to load enriched item")
		}

		item = &enriched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// recomputeTotals re-derives the order total from its non-cancelled items
// and syncs the owning bill's aggregate.
func recomputeTotals(ctx context.Context, tx pgx.Tx, orderID int64, billID *int64) error {
	if _, err := tx.Exec(ctx, database.RecomputeOrderTotalSQL, orderID); err != nil {
		return apperr.Internal(err, "failed to recompute order total")
	}
	if billID != nil {
		if _, err := tx.Exec(ctx, database.SyncBillTotalSQL, *billID); err != nil {
			return apperr.Internal(err, "failed to sync bill total")
		}
	}
	return nil
}

func loadOrder(ctx context.Context, tx pgx.Tx, orderID int64) (*models.Order, error) {
	var o models.Order
	err := tx.QueryRow(ctx, database.GetOrderSQL, orderID).
		Scan(&o.ID, &o.TableID, &o.BillID, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("order %d not found", orderID)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load order")
	}
	return &o, nil
}

func loadItems(ctx context.Context, tx pgx.Tx, order *models.Order) error {
	rows, err := tx.Query(ctx, database.OrderItemsForOrdersSQL, []int64{order.ID})
	if err != nil {
		return apperr.Internal(err, "failed to query order items")
	}
	defer rows.Close()

	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuID, &it.MenuName, &it.Quantity, &it.Note, &it.Price, &it.Status, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return apperr.Internal(err, "failed to scan order item row")
		}
		order.Items = append(order.Items, it)
	}
	return rows.Err()
}
