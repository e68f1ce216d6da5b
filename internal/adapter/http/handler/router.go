package handler

import (
	"order-reconciler/internal/adapter/http/middleware"
	"order-reconciler/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WebhookSvc     ports.WebhookService
	ReconcileSvc   ports.ReconcileService
	OrderRepo      ports.OrderRepository
	OperatorSecret string
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// --- Provider-facing routes (signature-authenticated per delivery) ---
	webhookHandler := NewWebhookHandler(deps.WebhookSvc)
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/monobank", webhookHandler.Monobank)
		webhooks.POST("/whitepay", webhookHandler.Whitepay)
	}

	// --- Operator routes (shared-secret authenticated) ---
	operatorAuth := middleware.OperatorAuth(deps.OperatorSecret, deps.Logger)
	orderHandler := NewOrderHandler(deps.OrderRepo, deps.ReconcileSvc)

	v1 := r.Group("/api/v1")
	orders := v1.Group("/orders", operatorAuth)
	{
		orders.GET("/:reference", orderHandler.GetOrder)
		orders.POST("/:reference/notify", orderHandler.NotifyOrder)
	}

	return r
}
