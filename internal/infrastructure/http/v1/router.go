// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	appctx "gyh/internal/core/context"
	"gyh/internal/domain/auth"
	"gyh/internal/domain/catalogs/customer"
	"gyh/internal/domain/catalogs/option"
	"gyh/internal/domain/catalogs/product"
	"gyh/internal/domain/intake"
	"gyh/internal/domain/inventory"
	"gyh/internal/domain/ledger"
	"gyh/internal/domain/sale"
	"gyh/internal/domain/stock"
	"gyh/internal/infrastructure/http/v1/handlers"
	"gyh/internal/infrastructure/http/v1/middleware"
	"gyh/internal/infrastructure/storage/postgres"
	"gyh/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	Pool         *postgres.Pool
	Logger       *logger.Logger
	JWTValidator middleware.JWTValidator

	AuthService      *auth.Service
	ProductService   *product.Service
	CustomerService  *customer.Service
	OptionService    *option.Service
	IntakeService    *intake.Service
	SaleService      *sale.Service
	LedgerService    *ledger.Service
	StockService     *stock.Service
	InventoryService *inventory.Service
	AuditRecorder    *postgres.AuditRecorder

	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	baseHandler := handlers.NewBaseHandler()

	// Health endpoints, no auth required
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	healthHandler.RegisterRoutes(router.Group("/health"))

	apiV1 := router.Group("/api/v1")
	{
		publicAuth := apiV1.Group("/auth")

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
		authHandler.RegisterRoutes(publicAuth, protected.Group("/auth"))

		catalog := protected.Group("/catalog")
		{
			productHandler := handlers.NewProductHandler(baseHandler, cfg.ProductService)
			productHandler.RegisterRoutes(catalog.Group("/products"))

			customerHandler := handlers.NewCustomerHandler(baseHandler, cfg.CustomerService, cfg.LedgerService)
			customerHandler.RegisterRoutes(catalog.Group("/customers"))

			optionHandler := handlers.NewOptionHandler(baseHandler, cfg.OptionService)
			optionHandler.RegisterRoutes(catalog.Group("/options"))
		}

		document := protected.Group("/document")
		{
			intakes := document.Group("/intakes")
			intakes.Use(middleware.RequireRole(appctx.RoleAdmin, appctx.RoleInventor))
			intakeHandler := handlers.NewIntakeHandler(baseHandler, cfg.IntakeService)
			intakeHandler.RegisterRoutes(intakes)

			saleHandler := handlers.NewSaleHandler(baseHandler, cfg.SaleService)
			saleHandler.RegisterRoutes(document.Group("/sales"))
		}

		registers := protected.Group("/registers")
		{
			stockHandler := handlers.NewStockHandler(baseHandler, cfg.StockService)
			stockHandler.RegisterRoutes(registers.Group("/stock"))

			snapshots := registers.Group("/inventory")
			snapshots.Use(middleware.RequireRole(appctx.RoleAdmin, appctx.RoleInventor))
			inventoryHandler := handlers.NewInventoryHandler(baseHandler, cfg.InventoryService)
			inventoryHandler.RegisterRoutes(snapshots)
		}

		auditGroup := protected.Group("/audit")
		auditGroup.Use(middleware.RequireRole(appctx.RoleAdmin))
		auditHandler := handlers.NewAuditHandler(baseHandler, cfg.AuditRecorder)
		auditHandler.RegisterRoutes(auditGroup)
	}

	return router
}
