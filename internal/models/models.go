package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

type Order struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customer_id"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Products    []Product       `json:"products,omitempty"`
}

// OrderReminder is the projection read by the order-reminder job: just
// enough to address one reminder line per recent order.
type OrderReminder struct {
	OrderID       int64  `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
}

// ReportSummary aggregates the figures logged by the weekly report job.
type ReportSummary struct {
	Customers    int64           `json:"customers"`
	Orders       int64           `json:"orders"`
	TotalRevenue decimal.Decimal `json:"revenue"`
}

// Products with stock below LowStockThreshold are due for restocking;
// RestockQuantity is the fixed increment applied to each of them.
const (
	LowStockThreshold = 10
	RestockQuantity   = 10
)
