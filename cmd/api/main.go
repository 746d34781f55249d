package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sparesdesk/sparesdesk-api/internal/application/service"
	"github.com/sparesdesk/sparesdesk-api/internal/config"
	"github.com/sparesdesk/sparesdesk-api/internal/infrastructure/database"
	"github.com/sparesdesk/sparesdesk-api/internal/infrastructure/repository"
	"github.com/sparesdesk/sparesdesk-api/internal/presentation/http/handler"
	"github.com/sparesdesk/sparesdesk-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the starter catalogue on first run
	if err := database.SeedDefaultProducts(db); err != nil {
		log.Printf("Warning: Failed to seed default products: %v", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	productService := service.NewProductService(productRepo)
	billingService := service.NewBillingService(
		productRepo,
		invoiceRepo,
		sequenceRepo,
		cfg.Billing.InvoicePrefix,
		cfg.Billing.DefaultCustomer,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product: handler.NewProductHandler(productService, cfg.Billing.LowStockAlert),
		Invoice: handler.NewInvoiceHandler(billingService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
