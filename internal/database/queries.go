package database

// Table queries. Reads exclude soft-deleted rows; admin recovery flows would
// opt in with a dedicated query rather than dropping the predicate.
const (
	InsertTableSQL = `
		INSERT INTO tables (name)
		VALUES ($1)
		RETURNING id, name, is_available, is_calling_staff, created_at, updated_at`

	GetTableSQL = `
		SELECT id, name, is_available, is_calling_staff, created_at, updated_at
		FROM tables
		WHERE id = $1 AND deleted_at IS NULL`

	ListTablesSQL = `
		SELECT t.id, t.name, t.is_available, t.is_calling_staff, t.created_at, t.updated_at,
			   EXISTS(SELECT 1 FROM bills b WHERE b.table_id = t.id AND b.status = 'OPEN') AS is_occupied
		FROM tables t
		WHERE t.deleted_at IS NULL
		ORDER BY t.name`

	TableOccupiedSQL = `
		SELECT EXISTS(SELECT 1 FROM bills WHERE table_id = $1 AND status = 'OPEN')`

	// Closing a table is guarded in the WHERE clause so a concurrent order
	// cannot slip between an occupancy check and this write.
	SetTableAvailabilitySQL = `
		UPDATE tables SET is_available = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		  AND ($1 OR NOT EXISTS (SELECT 1 FROM bills b WHERE b.table_id = tables.id AND b.status = 'OPEN'))
		RETURNING id, name, is_available, is_calling_staff, created_at, updated_at`

	SetTableCallingSQL = `
		UPDATE tables SET is_calling_staff = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING id, name, is_available, is_calling_staff, created_at, updated_at`

	SoftDeleteTableSQL = `
		UPDATE tables SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`
)

// Category and menu queries
const (
	InsertCategorySQL = `
		INSERT INTO categories (name, name_alt, position)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	ListCategoriesSQL = `
		SELECT id, name, name_alt, position, created_at, updated_at
		FROM categories
		ORDER BY position, id`

	CategoryExistsSQL = `
		SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`

	InsertMenuSQL = `
		INSERT INTO menus (category_id, name, name_alt, price, is_recommended)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_available, is_visible, created_at, updated_at`

	ListMenusSQL = `
		SELECT id, category_id, name, name_alt, price, is_available, is_visible, is_recommended, created_at, updated_at
		FROM menus
		WHERE deleted_at IS NULL
		ORDER BY category_id, id`

	ListVisibleMenusSQL = `
		SELECT id, category_id, name, name_alt, price, is_available, is_visible, is_recommended, created_at, updated_at
		FROM menus
		WHERE deleted_at IS NULL AND is_visible
		ORDER BY category_id, id`

	GetMenusByIDsSQL = `
		SELECT id, category_id, name, name_alt, price, is_available, is_visible, is_recommended, created_at, updated_at
		FROM menus
		WHERE id = ANY($1) AND deleted_at IS NULL`

	UpdateMenuFlagsSQL = `
		UPDATE menus SET
			is_available   = COALESCE($1, is_available),
			is_visible     = COALESCE($2, is_visible),
			is_recommended = COALESCE($3, is_recommended),
			updated_at     = NOW()
		WHERE id = $4 AND deleted_at IS NULL
		RETURNING id, category_id, name, name_alt, price, is_available, is_visible, is_recommended, created_at, updated_at`

	SoftDeleteMenuSQL = `
		UPDATE menus SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`
)

// Bill queries
const (
	GetOpenBillForUpdateSQL = `
		SELECT id, table_id, status, total_price, opened_at
		FROM bills
		WHERE table_id = $1 AND status = 'OPEN'
		FOR UPDATE`

	GetOpenBillSQL = `
		SELECT id, table_id, status, total_price, opened_at
		FROM bills
		WHERE table_id = $1 AND status = 'OPEN'`

	// The conflict target is the bills_one_open_per_table partial index. A
	// losing concurrent insert blocks until the winner commits, then returns
	// no row instead of aborting the transaction with a unique violation.
	InsertBillSQL = `
		INSERT INTO bills (table_id)
		VALUES ($1)
		ON CONFLICT (table_id) WHERE status = 'OPEN' DO NOTHING
		RETURNING id, table_id, status, total_price, opened_at`

	AddToBillTotalSQL = `
		UPDATE bills SET total_price = total_price + $1
		WHERE id = $2`

	SyncBillTotalSQL = `
		UPDATE bills SET total_price = COALESCE(
			(SELECT SUM(o.total_price) FROM orders o WHERE o.bill_id = bills.id), 0)
		WHERE id = $1`

	SettleBillSQL = `
		UPDATE bills SET status = 'PAID', payment_method = $2, closed_at = NOW()
		WHERE id = $1 AND status = 'OPEN'
		  AND NOT EXISTS (
			SELECT 1 FROM order_items i
			JOIN orders o ON o.id = i.order_id
			WHERE o.bill_id = $1
			  AND i.status NOT IN ('SERVED', 'COMPLETED', 'CANCELLED'))`

	CompleteBillOrdersSQL = `
		UPDATE orders SET status = 'COMPLETED', updated_at = NOW()
		WHERE bill_id = $1`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (table_id, bill_id, total_price)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, menu_id, quantity, note, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at, updated_at`

	GetOrderSQL = `
		SELECT id, table_id, bill_id, status, total_price, created_at, updated_at
		FROM orders
		WHERE id = $1`

	ActiveOrdersSQL = `
		SELECT id, table_id, bill_id, status, total_price, created_at, updated_at
		FROM orders
		WHERE status IN ('PENDING', 'COOKING', 'READY')
		ORDER BY created_at`

	ActiveTableOrdersSQL = `
		SELECT id, table_id, bill_id, status, total_price, created_at, updated_at
		FROM orders
		WHERE table_id = $1 AND status <> 'COMPLETED'
		ORDER BY created_at`

	OrderItemsForOrdersSQL = `
		SELECT i.id, i.order_id, i.menu_id, m.name, i.quantity, i.note, i.price, i.status, i.created_at, i.updated_at
		FROM order_items i
		JOIN menus m ON m.id = i.menu_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.id`

	BillItemsSQL = `
		SELECT i.id, i.order_id, i.menu_id, m.name, i.quantity, i.note, i.price, i.status, i.created_at, i.updated_at
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		JOIN menus m ON m.id = i.menu_id
		WHERE o.bill_id = $1
		ORDER BY i.id`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2`

	BulkUpdateItemsStatusSQL = `
		UPDATE order_items SET status = $1, updated_at = NOW()
		WHERE order_id = $2 AND status <> 'CANCELLED'`

	UpdateItemStatusSQL = `
		UPDATE order_items SET status = $1, updated_at = NOW()
		WHERE id = $2`

	GetItemOrderSQL = `
		SELECT i.order_id, o.table_id, o.bill_id
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE i.id = $1`

	GetItemEnrichedSQL = `
		SELECT i.id, i.order_id, i.status, m.name, t.name, t.id, i.quantity, i.note, i.created_at
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		JOIN tables t ON t.id = o.table_id
		JOIN menus m ON m.id = i.menu_id
		WHERE i.id = $1`

	RecomputeOrderTotalSQL = `
		UPDATE orders SET total_price = COALESCE(
			(SELECT SUM(i.quantity * i.price)
			 FROM order_items i
			 WHERE i.order_id = orders.id AND i.status <> 'CANCELLED'), 0),
			updated_at = NOW()
		WHERE id = $1`
)
