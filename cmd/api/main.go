package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sokoerp/pos-api/internal/application/service"
	"github.com/sokoerp/pos-api/internal/cache"
	"github.com/sokoerp/pos-api/internal/config"
	"github.com/sokoerp/pos-api/internal/infrastructure/database"
	"github.com/sokoerp/pos-api/internal/infrastructure/repository"
	"github.com/sokoerp/pos-api/internal/presentation/http/handler"
	"github.com/sokoerp/pos-api/internal/presentation/http/routes"
	"github.com/sokoerp/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize product cache
	var productCache cache.ProductCache = cache.NoopProductCache{}
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisProductCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Printf("Warning: Redis unreachable, product caching disabled: %v", err)
		} else {
			productCache = redisCache
			defer redisCache.Close()
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	productRepo := repository.NewProductRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	stockRepo := repository.NewStockRepository(db)
	terminalRepo := repository.NewTerminalRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	reportingRepo := repository.NewReportingRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	terminalService := service.NewTerminalService(terminalRepo, warehouseRepo)
	sessionService := service.NewSessionService(sessionRepo, terminalRepo, employeeRepo)
	saleService := service.NewSaleService(saleRepo, sessionRepo, productRepo, warehouseRepo, providerRepo, orgRepo)
	providerService := service.NewProviderService(providerRepo, orgRepo)
	catalogService := service.NewCatalogService(productRepo, stockRepo, warehouseRepo, productCache)
	reportService := service.NewReportService(reportingRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Terminal: handler.NewTerminalHandler(terminalService),
		Session:  handler.NewSessionHandler(sessionService),
		Sale:     handler.NewSaleHandler(saleService),
		Provider: handler.NewProviderHandler(providerService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Report:   handler.NewReportHandler(reportService),
		Webhook:  handler.NewWebhookHandler(providerService, orgRepo),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown so in-flight sale commits finish before exit
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
