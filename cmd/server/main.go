// Package main is the entry point for the gyh API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gyh/internal/config"
	"gyh/internal/core/clock"
	"gyh/internal/domain/auth"
	"gyh/internal/domain/catalogs/customer"
	"gyh/internal/domain/catalogs/option"
	"gyh/internal/domain/catalogs/product"
	"gyh/internal/domain/intake"
	"gyh/internal/domain/inventory"
	"gyh/internal/domain/ledger"
	"gyh/internal/domain/sale"
	"gyh/internal/domain/stock"
	v1 "gyh/internal/infrastructure/http/v1"
	"gyh/internal/infrastructure/notify"
	"gyh/internal/infrastructure/storage/postgres"
	"gyh/internal/infrastructure/storage/postgres/auth_repo"
	"gyh/internal/infrastructure/storage/postgres/catalog_repo"
	"gyh/internal/infrastructure/storage/postgres/document_repo"
	"gyh/internal/infrastructure/storage/postgres/ledger_repo"
	"gyh/internal/infrastructure/storage/postgres/register_repo"
	"gyh/pkg/logger"
	"gyh/pkg/numerator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting gyh server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Core services ---
	businessClock, err := clock.New(cfg.Timezone)
	if err != nil {
		log.Fatalw("invalid business timezone", "timezone", cfg.Timezone, "error", err)
	}

	numbering := numerator.New(pool.Unwrap())

	auditRecorder, err := postgres.NewAuditRecorder(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit recorder", "error", err)
	}

	notifier := notify.NewWhatsappNotifier(cfg.WhatsappWebhookURL)

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	optionRepo := catalog_repo.NewOptionRepo(txManager)
	intakeRepo := document_repo.NewIntakeRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)
	snapshotRepo := register_repo.NewSnapshotRepo(txManager)
	paymentRepo := ledger_repo.NewPaymentRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	// --- Auth ---
	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.AccessTokenTTL = cfg.AccessTokenTTL
	jwtConfig.RefreshTokenTTL = cfg.RefreshTokenTTL
	jwtService := auth.NewJWTService(jwtConfig)
	authService := auth.NewService(userRepo, jwtService)

	// --- Domain services ---
	productService := product.NewService(productRepo, txManager)
	customerService := customer.NewService(customerRepo, txManager)
	optionService := option.NewService(optionRepo, txManager)
	stockService := stock.NewService(stockRepo)
	intakeService := intake.NewService(intakeRepo, productRepo, txManager, businessClock, numbering, auditRecorder)
	saleService := sale.NewService(saleRepo, customerRepo, stockService, txManager, businessClock, numbering, auditRecorder, notifier)
	ledgerService := ledger.NewService(paymentRepo, customerRepo, txManager, businessClock, auditRecorder)
	inventoryService := inventory.NewService(snapshotRepo, stockService, txManager, businessClock)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		Logger:       log,
		JWTValidator: jwtService,

		AuthService:      authService,
		ProductService:   productService,
		CustomerService:  customerService,
		OptionService:    optionService,
		IntakeService:    intakeService,
		SaleService:      saleService,
		LedgerService:    ledgerService,
		StockService:     stockService,
		InventoryService: inventoryService,
		AuditRecorder:    auditRecorder,

		Development: cfg.Development,
	})

	// --- HTTP server ---
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
