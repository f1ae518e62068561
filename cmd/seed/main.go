package main

import (
	"context"
	"log"

	"github.com/safar/go-crm-backend/internal/config"
	"github.com/safar/go-crm-backend/internal/database"
	"github.com/shopspring/decimal"
)

type seedCustomer struct {
	name  string
	email string
	phone string
}

type seedProduct struct {
	name  string
	price decimal.Decimal
	stock int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	log.Printf("Seeding database...")

	ctx := context.Background()

	customers := []seedCustomer{
		{"Alice", "alice@example.com", "+254755852877"},
		{"Bob", "bob@example.com", "123-456-7890"},
	}

	for _, c := range customers {
		_, err := db.ExecContext(ctx, `
			INSERT INTO customers (name, email, phone, created_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone`,
			c.name, c.email, c.phone)
		if err != nil {
			log.Fatalf("Seed customer %s: %v", c.email, err)
		}
	}

	products := []seedProduct{
		{"Laptop", decimal.RequireFromString("999.99"), 10},
		{"Mouse", decimal.RequireFromString("19.99"), 100},
		{"Keyboard", decimal.RequireFromString("49.99"), 50},
	}

	// Product names carry no unique constraint, so upsert by hand.
	for _, p := range products {
		result, err := db.ExecContext(ctx,
			`UPDATE products SET price = $2, stock = $3 WHERE name = $1`,
			p.name, p.price, p.stock)
		if err != nil {
			log.Fatalf("Seed product %s: %v", p.name, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			log.Fatalf("Seed product %s: %v", p.name, err)
		}
		if rowsAffected == 0 {
			_, err := db.ExecContext(ctx, `
				INSERT INTO products (name, price, stock, created_at)
				VALUES ($1, $2, $3, NOW())`,
				p.name, p.price, p.stock)
			if err != nil {
				log.Fatalf("Seed product %s: %v", p.name, err)
			}
		}
	}

	log.Printf("Done seeding.")
}
