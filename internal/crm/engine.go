// Package crm implements the mutation engine: every write operation over
// customers, products, and orders, each reporting its outcome through a
// result envelope instead of an error return. Callers can treat success
// and failure uniformly; no engine method panics or returns a Go error.
package crm

import (
	"database/sql"
	"strings"
	"time"

	"github.com/safar/go-crm-backend/internal/models"
)

type Engine struct {
	db *sql.DB
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

type CustomerInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

type ProductInput struct {
	Name string `json:"name"`
	// Price arrives as a string and is parsed as an exact decimal; a float
	// would lose the precision the currency invariants require.
	Price string `json:"price"`
	Stock *int   `json:"stock"`
}

type OrderInput struct {
	CustomerID int64      `json:"customerId"`
	ProductIDs []int64    `json:"productIds"`
	OrderDate  *time.Time `json:"orderDate"`
}

type CustomerResult struct {
	Customer *models.Customer `json:"customer"`
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
}

type BulkCustomersResult struct {
	Customers []models.Customer `json:"customers"`
	Errors    []string          `json:"errors"`
}

type ProductResult struct {
	Product *models.Product `json:"product"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
}

type OrderResult struct {
	Order   *models.Order `json:"order"`
	Success bool          `json:"success"`
	Message string        `json:"message"`
}

type RestockResult struct {
	UpdatedProducts []models.Product `json:"updated_products"`
	Success         bool             `json:"success"`
	Message         string           `json:"message"`
}

type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// normalizeCustomer applies the input normalization shared by single and
// bulk customer creation: trimmed name, trimmed lowercase email, trimmed
// phone collapsed to nil when empty.
func normalizeCustomer(in CustomerInput) (name, email string, phone *string) {
	name = strings.TrimSpace(in.Name)
	email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Phone != nil {
		if p := strings.TrimSpace(*in.Phone); p != "" {
			phone = &p
		}
	}
	return name, email, phone
}
