package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/VerdeSupply/storefront_api/internal/cache"
	"github.com/VerdeSupply/storefront_api/internal/config"
	"github.com/VerdeSupply/storefront_api/internal/database"
	"github.com/VerdeSupply/storefront_api/internal/handler"
	"github.com/VerdeSupply/storefront_api/internal/middleware"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/internal/worker"
	"github.com/VerdeSupply/storefront_api/pkg/paygate"
	"github.com/VerdeSupply/storefront_api/pkg/twilio"
	"github.com/VerdeSupply/storefront_api/pkg/zoho"
)

// main is the application entrypoint for the VerdeSupply storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting storefront api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize catalog cache
	catalogCache := cache.NewCatalogCache(redisClient)

	// 4. Initialize provider clients
	paygateClient := paygate.NewClient(paygate.Config{
		BaseURL: cfg.Paygate.BaseURL,
		APIKey:  cfg.Paygate.APIKey,
	})
	twilioClient := twilio.NewClient(twilio.Config{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
	})
	zohoClient := zoho.NewClient(zoho.Config{
		ClientID:       cfg.Zoho.ClientID,
		ClientSecret:   cfg.Zoho.ClientSecret,
		RefreshToken:   cfg.Zoho.RefreshToken,
		OrganizationID: cfg.Zoho.OrganizationID,
	})

	// 5. Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	calculatorRepo := repository.NewCalculatorRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	syncJobRepo := repository.NewSyncJobRepository(db)
	smsLogRepo := repository.NewSMSLogRepository(db)

	// 6. Initialize services
	authSvc := service.NewAuthService(customerRepo)
	catalogSvc := service.NewCatalogService(productRepo, catalogCache)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	calculatorSvc := service.NewCalculatorService(calculatorRepo)
	couponSvc := service.NewCouponService(couponRepo)
	orderSvc := service.NewOrderService(orderRepo, cartSvc, syncJobRepo, cfg.TaxRateBps)
	checkoutSvc := service.NewCheckoutService(orderRepo, productRepo, couponSvc, orderSvc, paygateClient, cfg.Paygate.Currency)
	notificationSvc := service.NewNotificationService(twilioClient, smsLogRepo)
	syncSvc := service.NewSyncService(zohoClient, orderRepo, customerRepo, productRepo, notificationSvc)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:            handler.NewHealthHandler(db),
		Auth:              handler.NewAuthHandler(authSvc),
		Product:           handler.NewProductHandler(catalogSvc),
		ProductManagement: handler.NewProductManagementHandler(catalogSvc),
		Cart:              handler.NewCartHandler(cartSvc),
		Order:             handler.NewOrderHandler(orderSvc),
		Checkout:          handler.NewCheckoutHandler(checkoutSvc),
		Calculator:        handler.NewCalculatorHandler(calculatorSvc),
		Coupon:            handler.NewCouponHandler(couponSvc),
		SMS:               handler.NewSMSHandler(notificationSvc, orderSvc, authSvc),
		Zoho:              handler.NewZohoHandler(syncSvc),
		Webhook:           handler.NewWebhookHandler(syncSvc, cfg.Zoho.WebhookSecret),
	}

	// 8. Create context for graceful shutdown; also bounds background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 9. Initialize middleware
	authMw := middleware.NewAuthMiddleware(ctx, customerRepo)

	// 10. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, authMw)

	// 11. Start workers
	go worker.NewDocumentSyncWorker(syncSvc, syncJobRepo, cfg.Worker.SyncJobInterval, cfg.Worker.SyncJobMaxAttempts).Start(ctx)
	go worker.NewCatalogSyncWorker(syncSvc, cfg.Worker.CatalogSyncInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health            *handler.HealthHandler
	Auth              *handler.AuthHandler
	Product           *handler.ProductHandler
	ProductManagement *handler.ProductManagementHandler
	Cart              *handler.CartHandler
	Order             *handler.OrderHandler
	Checkout          *handler.CheckoutHandler
	Calculator        *handler.CalculatorHandler
	Coupon            *handler.CouponHandler
	SMS               *handler.SMSHandler
	Zoho              *handler.ZohoHandler
	Webhook           *handler.WebhookHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, authMw *middleware.AuthMiddleware) {
	// Zoho webhook endpoint (HMAC-signed, no JWT)
	router.POST("/webhook/zoho", handlers.Webhook.HandleZohoWebhook)

	router.GET("/v1/health", handlers.Health.GetHealth)

	// Auth
	router.POST("/v1/auth/register", handlers.Auth.Register)
	router.POST("/v1/auth/login", handlers.Auth.Login)

	// Profile (protected)
	profile := router.Group("/v1/profile")
	profile.Use(authMw.Handle())
	{
		profile.GET("", handlers.Auth.GetProfile)
		profile.PUT("", handlers.Auth.UpdateProfile)
	}

	// Catalog (public; tier pricing applies when a valid token is present)
	catalog := router.Group("/v1")
	catalog.Use(authMw.Optional())
	{
		catalog.GET("/products", handlers.Product.GetProducts)
		catalog.GET("/products/:id", handlers.Product.GetProduct)
		catalog.GET("/categories", handlers.Product.GetCategories)

		catalog.GET("/calculators", handlers.Calculator.GetCalculators)
		catalog.GET("/calculators/:id", handlers.Calculator.GetCalculator)
		catalog.POST("/calculators/:id/evaluate", handlers.Calculator.Evaluate)
	}

	// Coupons (protected)
	router.POST("/v1/coupons/validate", authMw.Handle(), handlers.Coupon.ValidateCoupon)

	// Cart (protected)
	cart := router.Group("/v1/cart")
	cart.Use(authMw.Handle())
	{
		cart.GET("", handlers.Cart.GetCart)
		cart.DELETE("", handlers.Cart.ClearCart)
		cart.POST("/items", handlers.Cart.AddItem)
		cart.PUT("/items/:productId", handlers.Cart.UpdateItem)
		cart.DELETE("/items/:productId", handlers.Cart.RemoveItem)
	}

	// Orders and checkout (protected)
	orders := router.Group("/v1")
	orders.Use(authMw.Handle())
	{
		orders.POST("/orders", handlers.Order.CreateOrder)
		orders.GET("/orders", handlers.Order.GetOrders)
		orders.GET("/orders/:id", handlers.Order.GetOrder)
		orders.POST("/checkout", handlers.Checkout.Checkout)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.Use(authMw.Handle(), authMw.RequireAdmin())
	{
		// Product Management
		admin.GET("/products", handlers.ProductManagement.ListProducts)
		admin.POST("/products", handlers.ProductManagement.CreateProduct)
		admin.GET("/products/:id", handlers.ProductManagement.GetProduct)
		admin.PUT("/products/:id", handlers.ProductManagement.UpdateProduct)
		admin.DELETE("/products/:id", handlers.ProductManagement.DeleteProduct)

		// Order Management
		admin.GET("/orders", handlers.Order.ListOrdersAdmin)
		admin.PUT("/orders/:id/status", handlers.Order.UpdateOrderStatus)
		admin.POST("/orders/:id/sync", handlers.Zoho.SyncOrderDocuments)
		admin.POST("/orders/:id/sms", handlers.SMS.SendOrderStatusSMS)
		admin.GET("/orders/:id/sms", handlers.SMS.GetOrderSMSLogs)

		// SMS
		admin.POST("/sms/test", handlers.SMS.SendTestSMS)

		// Zoho sync triggers
		admin.POST("/zoho/customers/:id/sync", handlers.Zoho.SyncCustomer)
		admin.POST("/zoho/items/:id/sync", handlers.Zoho.SyncItem)
		admin.POST("/zoho/items/pull", handlers.Zoho.PullItems)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
