package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/safar/go-crm-backend/internal/database"
	"github.com/safar/go-crm-backend/internal/models"
	"github.com/shopspring/decimal"
)

func InsertOrder(ctx context.Context, tx *sql.Tx, customerID int64, orderDate time.Time) (*models.Order, error) {
	order := &models.Order{}

	query := `
		INSERT INTO orders (customer_id, order_date, total_amount)
		VALUES ($1, $2, 0)
		RETURNING id, customer_id, order_date, total_amount`

	err := tx.QueryRowContext(ctx, query, customerID, orderDate).Scan(
		&order.ID,
		&order.CustomerID,
		&order.OrderDate,
		&order.TotalAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	return order, nil
}

func AddOrderProducts(ctx context.Context, tx *sql.Tx, orderID int64, productIDs []int64) error {
	for _, productID := range productIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)`,
			orderID, productID)
		if err != nil {
			return fmt.Errorf("associate product %d: %w", productID, err)
		}
	}
	return nil
}

func SetOrderTotal(ctx context.Context, tx *sql.Tx, orderID int64, total decimal.Decimal) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE orders SET total_amount = $1 WHERE id = $2`,
		total, orderID)
	if err != nil {
		return fmt.Errorf("set order total: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrOrderNotFound
	}

	return nil
}

func GetOrder(ctx context.Context, db *sql.DB, id int64) (*models.Order, error) {
	order := &models.Order{}

	query := `
		SELECT id, customer_id, order_date, total_amount
		FROM orders
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.CustomerID,
		&order.OrderDate,
		&order.TotalAmount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	productsByOrder, err := loadOrderProducts(ctx, db, []int64{id})
	if err != nil {
		return nil, err
	}
	order.Products = productsByOrder[id]

	return order, nil
}

// loadOrderProducts fetches the associated products for a set of orders in
// one statement, keyed by order id.
func loadOrderProducts(ctx context.Context, db *sql.DB, orderIDs []int64) (map[int64][]models.Product, error) {
	query := `
		SELECT op.order_id, p.id, p.name, p.price, p.stock, p.created_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = ANY($1)
		ORDER BY op.order_id, p.id`

	rows, err := db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("load order products: %w", err)
	}
	defer rows.Close()

	productsByOrder := make(map[int64][]models.Product)
	for rows.Next() {
		var orderID int64
		var product models.Product
		err := rows.Scan(
			&orderID,
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Stock,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order product: %w", err)
		}
		productsByOrder[orderID] = append(productsByOrder[orderID], product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return productsByOrder, nil
}

func ListOrders(ctx context.Context, db *sql.DB, filter OrderFilter, page, pageSize int) (*OffsetPage, error) {
	b := &whereBuilder{}
	filter.apply(b)
	where := b.clause()
	joins, distinct := filter.joins()

	selectCols := "o.id, o.customer_id, o.order_date, o.total_amount"
	countExpr := "COUNT(*)"
	if distinct {
		selectCols = "DISTINCT " + selectCols
		countExpr = "COUNT(DISTINCT o.id)"
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT %s FROM orders o%s%s", countExpr, joins, where)
	if err := db.QueryRowContext(ctx, countQuery, b.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o%s%s
		ORDER BY o.order_date DESC, o.id DESC
		LIMIT $%d OFFSET $%d`,
		selectCols, joins, where, b.nextPlaceholder(), b.nextPlaceholder()+1)

	offset := (page - 1) * pageSize
	args := append(b.args, pageSize, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	var orderIDs []int64
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.OrderDate,
			&order.TotalAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if len(orderIDs) > 0 {
		productsByOrder, err := loadOrderProducts(ctx, db, orderIDs)
		if err != nil {
			return nil, err
		}
		for i := range orders {
			orders[i].Products = productsByOrder[orders[i].ID]
		}
	}

	return newOffsetPage(orders, total, page, pageSize), nil
}

// ListOrdersSince returns the reminder projection for orders placed at or
// after the cutoff, oldest first.
func ListOrdersSince(ctx context.Context, db *sql.DB, cutoff time.Time) ([]models.OrderReminder, error) {
	query := `
		SELECT o.id, c.email
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.order_date >= $1
		ORDER BY o.order_date, o.id`

	rows, err := db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list orders since: %w", err)
	}
	defer rows.Close()

	var reminders []models.OrderReminder
	for rows.Next() {
		var reminder models.OrderReminder
		if err := rows.Scan(&reminder.OrderID, &reminder.CustomerEmail); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reminders, nil
}

func CountOrders(ctx context.Context, db *sql.DB) (int64, error) {
	var total int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&total); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return total, nil
}

func TotalRevenue(ctx context.Context, db *sql.DB) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_amount), 0) FROM orders").Scan(&revenue)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total revenue: %w", err)
	}
	return revenue, nil
}
