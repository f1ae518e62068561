package crm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/safar/go-crm-backend/internal/database"
	"github.com/safar/go-crm-backend/internal/store"
	"github.com/shopspring/decimal"
)

// CreateOrder validates the customer and the full product set before any
// write, then creates the order, its associations, and the snapshot total
// in a single transaction. The total is the exact decimal sum of the
// product prices as fetched in one statement; later price changes do not
// touch it.
func (e *Engine) CreateOrder(ctx context.Context, in OrderInput) OrderResult {
	customer, err := store.GetCustomer(ctx, e.db, in.CustomerID)
	if err != nil {
		if errors.Is(err, database.ErrCustomerNotFound) {
			return OrderResult{Success: false, Message: "Invalid customer ID."}
		}
		return OrderResult{Success: false, Message: fmt.Sprintf("Failed to create order: %v", err)}
	}

	productIDs := dedupeIDs(in.ProductIDs)
	if len(productIDs) == 0 {
		return OrderResult{Success: false, Message: "At least one product must be selected."}
	}

	products, err := store.GetProductsByIDs(ctx, e.db, productIDs)
	if err != nil {
		return OrderResult{Success: false, Message: fmt.Sprintf("Failed to create order: %v", err)}
	}

	found := make(map[int64]bool, len(products))
	for _, p := range products {
		found[p.ID] = true
	}
	var invalid []string
	for _, id := range productIDs {
		if !found[id] {
			invalid = append(invalid, strconv.FormatInt(id, 10))
		}
	}
	if len(invalid) > 0 {
		return OrderResult{
			Success: false,
			Message: fmt.Sprintf("Invalid product ID(s): %s", strings.Join(invalid, ", ")),
		}
	}

	orderDate := time.Now()
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}

	var orderID int64
	err = database.WithRetry(ctx, e.db, database.TxOptions{
		IsolationLevel: sql.LevelSerializable,
		MaxRetries:     3,
	}, func(tx *sql.Tx) error {
		order, err := store.InsertOrder(ctx, tx, customer.ID, orderDate)
		if err != nil {
			return err
		}

		if err := store.AddOrderProducts(ctx, tx, order.ID, productIDs); err != nil {
			return err
		}

		if err := store.SetOrderTotal(ctx, tx, order.ID, total); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return OrderResult{Success: false, Message: fmt.Sprintf("Failed to create order: %v", err)}
	}

	order, err := store.GetOrder(ctx, e.db, orderID)
	if err != nil {
		return OrderResult{Success: false, Message: fmt.Sprintf("Failed to create order: %v", err)}
	}

	return OrderResult{Order: order, Success: true, Message: "Order created successfully."}
}

// dedupeIDs drops repeated ids while keeping first-seen order, so the
// association set has no duplicates and error messages list each invalid
// id once.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	var out []int64
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
