package order

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

// CreateOrder runs the whole order creation as one transaction: either the
// order, its items and the bill total update all commit, or none do.
func (s *PostgresStore) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	var order *models.Order

	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		created, err := createOrderTx(ctx, tx, req)
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// createOrderTx is the transactional body of CreateOrder.
func createOrderTx(ctx context.Context, tx pgx.Tx, req *models.CreateOrderRequest) (*models.Order, error) {
	table, err := loadTable(ctx, tx, req.TableID)
	if err != nil {
		return nil, err
	}
	if !table.IsAvailable {
		return nil, apperr.Validation("table %q is not available", table.Name)
	}

	menus, err := loadMenus(ctx, tx, req.Items)
	if err != nil {
		return nil, err
	}

	bill, err := findOrCreateOpenBill(ctx, tx, table.ID)
	if err != nil {
		return nil, err
	}

	items, total := models.BuildOrderItems(req.Items, menus)

	created := &models.Order{
		TableID:    table.ID,
		BillID:     &bill.ID,
		TotalPrice: total,
	}
	err = tx.QueryRow(ctx, database.InsertOrderSQL, table.ID, bill.ID, total).
		Scan(&created.ID, &created.Status, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal(err, "failed to insert order")
	}

	for i := range items {
		items[i].OrderID = created.ID
		err = tx.QueryRow(ctx, database.InsertOrderItemSQL,
			created.ID, items[i].MenuID, items[i].Quantity, items[i].Note, items[i].Price).
			Scan(&items[i].ID, &items[i].Status, &items[i].CreatedAt, &items[i].UpdatedAt)
		if err != nil {
			return nil, apperr.Internal(err, "failed to insert order item")
		}
	}
	created.Items = items

	// Atomic increment; concurrent orders for the same table cannot
	// race a read-modify-write here.
	if _, err := tx.Exec(ctx, database.AddToBillTotalSQL, total, bill.ID); err != nil {
		return nil, apperr.Internal(err, "failed to update bill total")
	}

	return created, nil
}

// ActiveOrders returns the active board with items joined to menu names.
func (s *PostgresStore) ActiveOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.Query(ctx, database.ActiveOrdersSQL)
	if err != nil {
		return nil, apperr.Internal(err, "failed to query active orders")
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

	if err := attachItems(ctx, s.db, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the items of all given orders in one query.
func attachItems(ctx context.Context, db *database.DB, orders []models.Order) error {
	ids := make([]int64, len(orders))
	index := make(map[int64]*models.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = &orders[i]
	}

	rows, err := db.Query(ctx, database.OrderItemsForOrdersSQL, ids)
	if err != nil {
		return apperr.Internal(err, "failed to query order items")
	}
	defer rows.Close()

	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuID, &it.MenuName, &it.Quantity, &it.Note, &it.Price, &it.Status, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return apperr.Internal(err, "failed to scan order item row")
		}
		if o, ok := index[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// loadTable fetches a live (non-deleted) table inside the transaction.
func loadTable(ctx context.Context, tx pgx.Tx, tableID int64) (*models.Table, error) {
	var t models.Table
	err := tx.QueryRow(ctx, database.GetTableSQL, tableID).
		Scan(&t.ID, &t.Name, &t.IsAvailable, &t.IsCallingStaff, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("table %d not found", tableID)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load table")
	}
	return &t, nil
}

// loadMenus fetches every referenced live menu and verifies existence and
// stock availability.
func loadMenus(ctx context.Context, tx pgx.Tx, items []models.CreateOrderItem) (map[int64]models.Menu, error) {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.MenuID)
	}

	rows, err := tx.Query(ctx, database.GetMenusByIDsSQL, ids)
	if err != nil {
		return nil, apperr.Internal(err, "failed to query menus")
	}
	defer rows.Close()

	menus := make(map[int64]models.Menu, len(ids))
	for rows.Next() {
		var m models.Menu
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Name, &m.NameAlt, &m.Price, &m.IsAvailable, &m.IsVisible, &m.IsRecommended, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, apperr.Internal(err, "failed to scan menu row")
		}
		menus[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err, "failed to iterate menu rows")
	}

	for _, it := range items {
		menu, ok := menus[it.MenuID]
		if !ok {
			return nil, apperr.NotFound("menu %d not found", it.MenuID)
		}
		if !menu.IsAvailable {
			return nil, apperr.Validation("menu %q is not available", menu.Name)
		}
	}
	return menus, nil
}

// findOrCreateOpenBill locates the table's open bill, creating one lazily on
// the first order of a session. The insert is ON CONFLICT DO NOTHING against
// the partial unique index: when two first orders race, the loser's insert
// blocks until the winner commits, comes back with no row, and the follow-up
// read attaches to the winner's bill. A raw unique violation would instead
// abort the whole transaction before any reread could run.
func findOrCreateOpenBill(ctx context.Context, tx pgx.Tx, tableID int64) (*models.Bill, error) {
	bill, err := scanOpenBill(ctx, tx, tableID, true)
	if err == nil {
		return bill, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	var created models.Bill
	insertErr := tx.QueryRow(ctx, database.InsertBillSQL, tableID).
		Scan(&created.ID, &created.TableID, &created.Status, &created.TotalPrice, &created.OpenedAt)
	if insertErr == nil {
		return &created, nil
	}
	if errors.Is(insertErr, pgx.ErrNoRows) {
		// Lost the race; the winner's committed row is visible to this
		// statement's snapshot.
		return scanOpenBill(ctx, tx, tableID, true)
	}
	return nil, apperr.Internal(insertErr, "failed to create bill")
}

func scanOpenBill(ctx context.Context, tx pgx.Tx, tableID int64, forUpdate bool) (*models.Bill, error) {
	query := database.GetOpenBillSQL
	if forUpdate {
		query = database.GetOpenBillForUpdateSQL
	}
	var b models.Bill
	err := tx.QueryRow(ctx, query, tableID).
		Scan(&b.ID, &b.TableID, &b.Status, &b.TotalPrice, &b.OpenedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("no open bill for table %d", tableID)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load open bill")
	}
	return &b, nil
}
