// Package api wires the HTTP surface: thin gin handlers that bind JSON or
// query parameters and delegate to the mutation engine and the store's
// query surface. Engine envelopes are returned as-is with status 200;
// only malformed requests get a 4xx.
package api

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/safar/go-crm-backend/internal/crm"
)

type Server struct {
	db     *sql.DB
	engine *crm.Engine
}

func NewServer(db *sql.DB) *Server {
	return &Server{db: db, engine: crm.NewEngine(db)}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/hello", s.handleHello)

	customers := r.Group("/customers")
	{
		customers.POST("", s.handleCreateCustomer)
		customers.POST("/bulk", s.handleBulkCreateCustomers)
		customers.GET("", s.handleListCustomers)
		customers.DELETE("/:id", s.handleDeleteCustomer)
	}

	products := r.Group("/products")
	{
		products.POST("", s.handleCreateProduct)
		products.POST("/restock", s.handleRestock)
		products.GET("", s.handleListProducts)
	}

	orders := r.Group("/orders")
	{
		orders.POST("", s.handleCreateOrder)
		orders.GET("", s.handleListOrders)
		orders.GET("/reminders", s.handleOrderReminders)
	}

	r.GET("/reports/summary", s.handleReportSummary)

	return r
}
