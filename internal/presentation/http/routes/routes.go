package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sokoerp/pos-api/internal/config"
	domainRepo "github.com/sokoerp/pos-api/internal/domain/repository"
	"github.com/sokoerp/pos-api/internal/presentation/http/handler"
	"github.com/sokoerp/pos-api/internal/presentation/http/middleware"
	"github.com/sokoerp/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Terminal *handler.TerminalHandler
	Session  *handler.SessionHandler
	Sale     *handler.SaleHandler
	Provider *handler.ProviderHandler
	Catalog  *handler.CatalogHandler
	Report   *handler.ReportHandler
	Webhook  *handler.WebhookHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Provider callbacks authenticate via signature, not JWT
	router.POST("/webhooks/payments/:slug/:type", h.Webhook.HandlePayment)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-organization rate limiter
		rateLimiter := middleware.NewOrgRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)

	registerTerminalRoutes(protected, h)
	registerPOSRoutes(protected, h, deps)
	registerCatalogRoutes(protected, h)
	registerProviderRoutes(protected, h)
	registerReportRoutes(protected, h)
}

func registerTerminalRoutes(protected *gin.RouterGroup, h *Handlers) {
	terminals := protected.Group("/pos/terminals")
	{
		terminals.GET("", h.Terminal.List)
		terminals.POST("", middleware.RequireRole("admin", "manager"), h.Terminal.Create)
		terminals.GET("/:id", h.Terminal.Get)
		terminals.PUT("/:id", middleware.RequireRole("admin", "manager"), h.Terminal.Update)
		terminals.DELETE("/:id", middleware.RequireRole("admin", "manager"), h.Terminal.Delete)
	}
}

func registerPOSRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sessions := protected.Group("/pos/sessions")
	{
		sessions.GET("", h.Session.List)
		sessions.POST("", h.Session.Open)
		sessions.GET("/active", h.Session.GetActive)
		sessions.GET("/:id", h.Session.Get)
		sessions.POST("/:id/close", h.Session.Close)
	}

	sales := protected.Group("/pos/sales")
	{
		sales.GET("", h.Sale.List)
		// Sale commit replays the cached response on a retried
		// Idempotency-Key instead of charging twice
		sales.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/void", middleware.RequireRole("admin", "manager"), h.Sale.Void)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/pos/products")
	{
		products.GET("", h.Catalog.SearchProducts)
		products.GET("/:id", h.Catalog.GetProduct)
	}

	protected.GET("/warehouses", h.Catalog.ListWarehouses)
	protected.GET("/stock/movements", h.Catalog.ListMovements)
}

func registerProviderRoutes(protected *gin.RouterGroup, h *Handlers) {
	providers := protected.Group("/payment-providers")
	{
		providers.GET("", h.Provider.List)
		providers.GET("/available", middleware.RequireRole("admin"), h.Provider.Available)
		providers.POST("", middleware.RequireRole("admin"), h.Provider.Configure)
		providers.PUT("/:id", middleware.RequireRole("admin"), h.Provider.Update)
		providers.PATCH("/:id/toggle", middleware.RequireRole("admin"), h.Provider.Toggle)
		providers.DELETE("/:id", middleware.RequireRole("admin"), h.Provider.Delete)
		providers.POST("/checkout-url", h.Provider.CheckoutURL)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/pos/daily-summary", h.Report.DailySummary)
	}
}
