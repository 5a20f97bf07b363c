package handler

import (
	"net/http"

	"exchange-ledger/internal/adapter/http/middleware"
	"exchange-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	RateSvc        ports.RateService
	OrderSvc       ports.OrderService
	ReportingSvc   ports.ReportingService
	AuditSvc       ports.AuditService
	RateLimiter    middleware.Limiter // nil = rate limiting disabled
	RateLimitRules map[string]middleware.RateLimitRule
	AdminAPIKey    string
	HealthCheckers []ports.HealthChecker
	Metrics        http.Handler // nil = /metrics not exposed
	Mode           string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	rl := func(group string) gin.HandlerFunc {
		rule, ok := deps.RateLimitRules[group]
		if deps.RateLimiter == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	rateHandler := NewRateHandler(deps.RateSvc)
	orderHandler := NewOrderHandler(deps.OrderSvc)
	reportHandler := NewReportHandler(deps.ReportingSvc, deps.AuditSvc)

	v1 := r.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/rates", rateHandler.GetRates)
	v1.POST("/quotes", rl(middleware.GroupQuotes), rateHandler.Quote)
	v1.POST("/orders", rl(middleware.GroupOrders), orderHandler.CreateOrder)
	v1.GET("/orders/:reference", orderHandler.GetByReference)

	// --- Operator routes ---
	admin := v1.Group("/admin", middleware.AdminAuth(deps.AdminAPIKey, deps.Logger))
	{
		admin.PUT("/rates", rateHandler.SetRates)
		admin.PATCH("/rates/config", rateHandler.UpdateConfig)

		admin.GET("/orders", orderHandler.ListOrders)
		admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
		admin.POST("/archive", orderHandler.Archive)

		admin.GET("/reports/daily", reportHandler.Daily)
		admin.GET("/reports/monthly", reportHandler.Monthly)
		admin.GET("/audit", reportHandler.ListAudit)
	}

	return r
}
