package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safar/go-crm-backend/internal/crm"
	"github.com/safar/go-crm-backend/internal/models"
	"github.com/safar/go-crm-backend/internal/store"
	"github.com/shopspring/decimal"
)

func (s *Server) handleHello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hello": "Hello, CRM!"})
}

func (s *Server) handleCreateCustomer(c *gin.Context) {
	var input crm.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.engine.CreateCustomer(c.Request.Context(), input))
}

func (s *Server) handleBulkCreateCustomers(c *gin.Context) {
	var input []crm.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.engine.BulkCreateCustomers(c.Request.Context(), input))
}

func (s *Server) handleDeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	c.JSON(http.StatusOK, s.engine.DeleteCustomer(c.Request.Context(), id))
}

func (s *Server) handleCreateProduct(c *gin.Context) {
	var input crm.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.engine.CreateProduct(c.Request.Context(), input))
}

func (s *Server) handleRestock(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.UpdateLowStockProducts(c.Request.Context()))
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	var input crm.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.engine.CreateOrder(c.Request.Context(), input))
}

func (s *Server) handleListCustomers(c *gin.Context) {
	filter := store.CustomerFilter{
		Name:         c.Query("name"),
		Email:        c.Query("email"),
		PhonePattern: c.Query("phone_pattern"),
	}

	var ok bool
	if filter.CreatedAtGte, ok = timeParam(c, "created_at_gte"); !ok {
		return
	}
	if filter.CreatedAtLte, ok = timeParam(c, "created_at_lte"); !ok {
		return
	}

	page, pageSize := pageParams(c)
	result, err := store.ListCustomers(c.Request.Context(), s.db, filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListProducts(c *gin.Context) {
	filter := store.ProductFilter{
		Name: c.Query("name"),
	}

	var ok bool
	if filter.PriceGte, ok = decimalParam(c, "price_gte"); !ok {
		return
	}
	if filter.PriceLte, ok = decimalParam(c, "price_lte"); !ok {
		return
	}
	if filter.StockGte, ok = intParam(c, "stock_gte"); !ok {
		return
	}
	if filter.StockLte, ok = intParam(c, "stock_lte"); !ok {
		return
	}

	page, pageSize := pageParams(c)
	result, err := store.ListProducts(c.Request.Context(), s.db, filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListOrders(c *gin.Context) {
	filter := store.OrderFilter{
		CustomerName: c.Query("customer_name"),
		ProductName:  c.Query("product_name"),
	}

	var ok bool
	if filter.TotalAmountGte, ok = decimalParam(c, "total_amount_gte"); !ok {
		return
	}
	if filter.TotalAmountLte, ok = decimalParam(c, "total_amount_lte"); !ok {
		return
	}
	if filter.OrderDateGte, ok = timeParam(c, "order_date_gte"); !ok {
		return
	}
	if filter.OrderDateLte, ok = timeParam(c, "order_date_lte"); !ok {
		return
	}
	if filter.ProductID, ok = int64Param(c, "product_id"); !ok {
		return
	}

	page, pageSize := pageParams(c)
	result, err := store.ListOrders(c.Request.Context(), s.db, filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleOrderReminders serves the reminder job's projection: id and
// customer email for every order placed at or after `since` (default: the
// trailing 7-day window).
func (s *Server) handleOrderReminders(c *gin.Context) {
	var cutoff time.Time
	if since, ok := timeParam(c, "since"); !ok {
		return
	} else if since != nil {
		cutoff = *since
	} else {
		cutoff = time.Now().AddDate(0, 0, -7)
	}

	reminders, err := store.ListOrdersSince(c.Request.Context(), s.db, cutoff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reminders == nil {
		reminders = []models.OrderReminder{}
	}

	c.JSON(http.StatusOK, gin.H{"orders": reminders})
}

func (s *Server) handleReportSummary(c *gin.Context) {
	ctx := c.Request.Context()

	customers, err := store.CountCustomers(ctx, s.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	orders, err := store.CountOrders(ctx, s.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	revenue, err := store.TotalRevenue(ctx, s.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ReportSummary{
		Customers:    customers,
		Orders:       orders,
		TotalRevenue: revenue,
	})
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return store.ClampPage(page, pageSize)
}

// timeParam parses an optional RFC3339 or YYYY-MM-DD query parameter. On a
// malformed value it writes a 400 response and reports ok=false.
func timeParam(c *gin.Context, key string) (*time.Time, bool) {
	value := c.Query(key)
	if value == "" {
		return nil, true
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.Parse("2006-01-02", value)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key})
		return nil, false
	}
	return &t, true
}

func decimalParam(c *gin.Context, key string) (*decimal.Decimal, bool) {
	value := c.Query(key)
	if value == "" {
		return nil, true
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key})
		return nil, false
	}
	return &d, true
}

func intParam(c *gin.Context, key string) (*int, bool) {
	value := c.Query(key)
	if value == "" {
		return nil, true
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key})
		return nil, false
	}
	return &n, true
}

func int64Param(c *gin.Context, key string) (*int64, bool) {
	value := c.Query(key)
	if value == "" {
		return nil, true
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key})
		return nil, false
	}
	return &n, true
}
