package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/go-crm-backend/internal/database"
	"github.com/safar/go-crm-backend/internal/models"
)

func CreateCustomer(ctx context.Context, q Querier, name, email string, phone *string) (*models.Customer, error) {
	customer := &models.Customer{}

	query := `
		INSERT INTO customers (name, email, phone, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, name, email, phone, created_at`

	err := q.QueryRowContext(ctx, query, name, email, phone).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, database.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return customer, nil
}

func GetCustomer(ctx context.Context, q Querier, id int64) (*models.Customer, error) {
	customer := &models.Customer{}

	query := `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE id = $1`

	err := q.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return customer, nil
}

// EmailExists probes the unique key before an insert so duplicates are
// reported as validation failures instead of constraint errors. Run on the
// enclosing transaction during bulk creation so rows of the same call see
// each other.
func EmailExists(ctx context.Context, q Querier, email string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)",
		email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

func ListCustomers(ctx context.Context, db *sql.DB, filter CustomerFilter, page, pageSize int) (*OffsetPage, error) {
	b := &whereBuilder{}
	filter.apply(b)
	where := b.clause()

	var total int64
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers"+where, b.args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, email, phone, created_at
		FROM customers%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		where, b.nextPlaceholder(), b.nextPlaceholder()+1)

	offset := (page - 1) * pageSize
	args := append(b.args, pageSize, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var customer models.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&customer.Phone,
			&customer.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return newOffsetPage(customers, total, page, pageSize), nil
}

func CountCustomers(ctx context.Context, db *sql.DB) (int64, error) {
	var total int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&total); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return total, nil
}

// DeleteCustomerCascade removes a customer and, explicitly, the orders the
// customer owns. The association rows go with the orders via the
// order_products FK cascade. Both deletes commit or roll back together.
func DeleteCustomerCascade(ctx context.Context, db *sql.DB, id int64) error {
	return database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE customer_id = $1", id); err != nil {
			return fmt.Errorf("delete customer orders: %w", err)
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("delete customer: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return database.ErrCustomerNotFound
		}

		return nil
	})
}
