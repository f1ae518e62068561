package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// whereBuilder collects WHERE conditions with positional placeholders.
// Conditions are passed as fmt strings containing a single $%d verb.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (b *whereBuilder) add(cond string, arg interface{}) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(cond, len(b.args)))
}

func (b *whereBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// nextPlaceholder returns the positional index the next added argument
// would get; used for LIMIT/OFFSET appended after the filter conditions.
func (b *whereBuilder) nextPlaceholder() int {
	return len(b.args) + 1
}

// CustomerFilter holds the exact-match/range/substring predicates for
// customer listing. Zero values mean "not set".
type CustomerFilter struct {
	Name         string
	Email        string
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
	PhonePattern string
}

func (f CustomerFilter) apply(b *whereBuilder) {
	if f.Name != "" {
		b.add("name ILIKE $%d", "%"+f.Name+"%")
	}
	if f.Email != "" {
		b.add("email ILIKE $%d", "%"+f.Email+"%")
	}
	if f.CreatedAtGte != nil {
		b.add("created_at >= $%d", *f.CreatedAtGte)
	}
	if f.CreatedAtLte != nil {
		b.add("created_at <= $%d", *f.CreatedAtLte)
	}
	if f.PhonePattern != "" {
		b.add("phone LIKE $%d", f.PhonePattern+"%")
	}
}

type ProductFilter struct {
	Name     string
	PriceGte *decimal.Decimal
	PriceLte *decimal.Decimal
	StockGte *int
	StockLte *int
}

func (f ProductFilter) apply(b *whereBuilder) {
	if f.Name != "" {
		b.add("name ILIKE $%d", "%"+f.Name+"%")
	}
	if f.PriceGte != nil {
		b.add("price >= $%d", *f.PriceGte)
	}
	if f.PriceLte != nil {
		b.add("price <= $%d", *f.PriceLte)
	}
	if f.StockGte != nil {
		b.add("stock >= $%d", *f.StockGte)
	}
	if f.StockLte != nil {
		b.add("stock <= $%d", *f.StockLte)
	}
}

// OrderFilter predicates; CustomerName matches the owning customer's name,
// ProductName/ProductID match any associated product (results
// de-duplicated).
type OrderFilter struct {
	TotalAmountGte *decimal.Decimal
	TotalAmountLte *decimal.Decimal
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	CustomerName   string
	ProductName    string
	ProductID      *int64
}

func (f OrderFilter) apply(b *whereBuilder) {
	if f.TotalAmountGte != nil {
		b.add("o.total_amount >= $%d", *f.TotalAmountGte)
	}
	if f.TotalAmountLte != nil {
		b.add("o.total_amount <= $%d", *f.TotalAmountLte)
	}
	if f.OrderDateGte != nil {
		b.add("o.order_date >= $%d", *f.OrderDateGte)
	}
	if f.OrderDateLte != nil {
		b.add("o.order_date <= $%d", *f.OrderDateLte)
	}
	if f.CustomerName != "" {
		b.add("c.name ILIKE $%d", "%"+f.CustomerName+"%")
	}
	if f.ProductName != "" {
		b.add("p.name ILIKE $%d", "%"+f.ProductName+"%")
	}
	if f.ProductID != nil {
		b.add("op.product_id = $%d", *f.ProductID)
	}
}

// joins returns the JOIN fragment the filter needs and whether matching
// rows must be de-duplicated (association joins can multiply order rows).
func (f OrderFilter) joins() (string, bool) {
	var sb strings.Builder
	distinct := false

	if f.CustomerName != "" {
		sb.WriteString(" JOIN customers c ON c.id = o.customer_id")
	}
	if f.ProductName != "" || f.ProductID != nil {
		sb.WriteString(" JOIN order_products op ON op.order_id = o.id")
		distinct = true
	}
	if f.ProductName != "" {
		sb.WriteString(" JOIN products p ON p.id = op.product_id")
	}

	return sb.String(), distinct
}
