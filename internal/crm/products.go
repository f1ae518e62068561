package crm

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/safar/go-crm-backend/internal/database"
	"github.com/safar/go-crm-backend/internal/models"
	"github.com/safar/go-crm-backend/internal/store"
	"github.com/shopspring/decimal"
)

func (e *Engine) CreateProduct(ctx context.Context, in ProductInput) ProductResult {
	name := strings.TrimSpace(in.Name)

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		return ProductResult{Success: false, Message: "Invalid price format."}
	}

	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}

	if price.Sign() <= 0 {
		return ProductResult{Success: false, Message: "Price must be positive."}
	}
	if stock < 0 {
		return ProductResult{Success: false, Message: "Stock cannot be negative."}
	}

	product, err := store.CreateProduct(ctx, e.db, name, price, stock)
	if err != nil {
		return ProductResult{Success: false, Message: fmt.Sprintf("Failed to create product: %v", err)}
	}

	return ProductResult{Product: product, Success: true, Message: "Product created successfully."}
}

// UpdateLowStockProducts increments every product under the low-stock
// threshold by the fixed restock quantity, all-or-nothing: the selected
// rows stay locked until commit and any failure rolls back every
// increment, so the result never reports partially-applied restocking.
func (e *Engine) UpdateLowStockProducts(ctx context.Context) RestockResult {
	updated := []models.Product{}

	err := database.WithTransaction(ctx, e.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		lowStock, err := store.SelectLowStockForUpdate(ctx, tx, models.LowStockThreshold)
		if err != nil {
			return err
		}

		for _, product := range lowStock {
			restocked, err := store.IncrementStock(ctx, tx, product.ID, models.RestockQuantity)
			if err != nil {
				return err
			}
			updated = append(updated, *restocked)
		}
		return nil
	})
	if err != nil {
		return RestockResult{
			UpdatedProducts: []models.Product{},
			Success:         false,
			Message:         fmt.Sprintf("Failed to update low stock: %v", err),
		}
	}

	return RestockResult{
		UpdatedProducts: updated,
		Success:         true,
		Message:         fmt.Sprintf("Updated %d product(s).", len(updated)),
	}
}
