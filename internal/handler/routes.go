package handler

import (
	"ledger-service/prometheus"

	"github.com/labstack/echo/v4"
)

// Handlers groups every route handler of the service
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Customers *CustomerHandler
	Products  *ProductHandler
	Purchases *PurchaseHandler
	Dashboard *DashboardHandler
	Reminders *ReminderHandler
	Profile   *ProfileHandler
}

// RegisterRoutes mounts the public routes and, behind requireOwner, the ledger API
func RegisterRoutes(e *echo.Echo, h *Handlers, requireOwner echo.MiddlewareFunc) {
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))
	e.GET("/health", h.Health.HealthCheck)

	auth := e.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout, requireOwner)

	api := e.Group("/api", requireOwner)

	api.GET("/customers", h.Customers.List)
	api.POST("/customers", h.Customers.Create)
	api.GET("/customers/:id", h.Customers.Get)
	api.PUT("/customers/:id", h.Customers.Update)
	api.DELETE("/customers/:id", h.Customers.Delete)
	api.GET("/customers/:id/purchases", h.Purchases.ListByCustomer)
	api.POST("/customers/:id/purchases", h.Purchases.Create)

	api.GET("/products", h.Products.List)
	api.POST("/products", h.Products.Create)
	api.GET("/products/:id", h.Products.Get)
	api.PUT("/products/:id", h.Products.Update)
	api.DELETE("/products/:id", h.Products.Delete)

	api.PUT("/purchases/:id", h.Purchases.Update)
	api.DELETE("/purchases/:id", h.Purchases.Delete)
	api.PATCH("/purchases/:id/payment", h.Purchases.SetPayment)

	api.GET("/dashboard", h.Dashboard.Summary)
	api.GET("/reminders/pending", h.Reminders.Pending)

	api.GET("/profile", h.Profile.Get)
	api.PUT("/profile", h.Profile.Update)
}
