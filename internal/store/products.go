package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/safar/go-crm-backend/internal/database"
	"github.com/safar/go-crm-backend/internal/models"
	"github.com/shopspring/decimal"
)

func CreateProduct(ctx context.Context, db *sql.DB, name string, price decimal.Decimal, stock int) (*models.Product, error) {
	product := &models.Product{}

	query := `
		INSERT INTO products (name, price, stock, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, name, price, stock, created_at`

	err := db.QueryRowContext(ctx, query, name, price, stock).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func GetProduct(ctx context.Context, db *sql.DB, id int64) (*models.Product, error) {
	product := &models.Product{}

	query := `
		SELECT id, name, price, stock, created_at
		FROM products
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

// GetProductsByIDs fetches the requested products in one statement, so the
// caller observes a single consistent price snapshot. Missing ids are
// simply absent from the result; the caller decides how to report them.
func GetProductsByIDs(ctx context.Context, db *sql.DB, ids []int64) ([]models.Product, error) {
	query := `
		SELECT id, name, price, stock, created_at
		FROM products
		WHERE id = ANY($1)
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Stock,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

// SelectLowStockForUpdate locks every product below the threshold for the
// duration of the transaction, so concurrent restock runs serialize per
// row instead of double-incrementing.
func SelectLowStockForUpdate(ctx context.Context, tx *sql.Tx, threshold int) ([]models.Product, error) {
	query := `
		SELECT id, name, price, stock, created_at
		FROM products
		WHERE stock < $1
		ORDER BY id
		FOR UPDATE`

	rows, err := tx.QueryContext(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("select low stock products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Stock,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

func IncrementStock(ctx context.Context, tx *sql.Tx, id int64, by int) (*models.Product, error) {
	product := &models.Product{}

	query := `
		UPDATE products
		SET stock = stock + $1
		WHERE id = $2
		RETURNING id, name, price, stock, created_at`

	err := tx.QueryRowContext(ctx, query, by, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("increment stock: %w", err)
	}

	return product, nil
}

func ListProducts(ctx context.Context, db *sql.DB, filter ProductFilter, page, pageSize int) (*OffsetPage, error) {
	b := &whereBuilder{}
	filter.apply(b)
	where := b.clause()

	var total int64
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+where, b.args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, price, stock, created_at
		FROM products%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		where, b.nextPlaceholder(), b.nextPlaceholder()+1)

	offset := (page - 1) * pageSize
	args := append(b.args, pageSize, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Stock,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return newOffsetPage(products, total, page, pageSize), nil
}
