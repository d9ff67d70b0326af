package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/api/handlers"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/api/middleware"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/cache"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/catalogue"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/config"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/health"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/metrics"
	repository "github.com/aaravmahajanofficial/antiques-catalogue/internal/repositories"
	service "github.com/aaravmahajanofficial/antiques-catalogue/internal/services"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/tracing"
	"github.com/aaravmahajanofficial/antiques-catalogue/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const version = "1.0.0"

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.OTel, version)
	if err != nil {
		slog.Error("❌ Error initialising tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serverCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer serverCache.Close()

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)

	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		slog.Warn("SendGrid API key not set, dealer notifications are disabled")
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	tokenTTL := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour
	cacheTTL := cfg.Cache.DefaultTTL
	filterCfg := catalogue.Config{DefaultLimit: cfg.Catalogue.DefaultLimit, MaxLimit: cfg.Catalogue.MaxLimit}

	productService := service.NewProductService(repos.Product, repos.Category, repos.Period, serverCache,
		service.ProductServiceConfig{FeaturedLimit: cfg.Catalogue.FeaturedLimit, CacheTTL: cacheTTL})
	categoryService := service.NewCategoryService(repos.Category, repos.Product, serverCache, cacheTTL)
	periodService := service.NewPeriodService(repos.Period, repos.Product, serverCache, cacheTTL)
	messageService := service.NewMessageService(repos.Message, repos.Product, emailService, cfg.SendGrid.DealerEmail, cfg.Catalogue.InboxLimit)
	settingsService := service.NewSettingsService(repos.Settings, serverCache, cacheTTL)
	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey, tokenTTL)

	productHandler := handlers.NewProductHandler(productService, filterCfg)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	periodHandler := handlers.NewPeriodHandler(periodService)
	messageHandler := handlers.NewMessageHandler(messageService, cfg.Catalogue.InboxMaxLimit)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	userHandler := handlers.NewUserHandler(userService)

	authMiddleware := middleware.NewAuthMiddleware(jwtKey)
	trustedProxies, err := middleware.ParseTrustedProxies(cfg.Messages.TrustedProxies)
	if err != nil {
		slog.Error("❌ Invalid trusted proxy configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	submissionLimiter := middleware.NewIPRateLimiter(cfg.Messages.RatePerMinute, cfg.Messages.Burst).
		WithTrustedProxies(trustedProxies)
	go submissionLimiter.Run(ctx, time.Minute)

	healthHandler, err := health.NewHealthHandler(cfg, version)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", version))

	admin := authMiddleware.RequireAdmin

	// Setup router
	routerMux := http.NewServeMux()

	// Public catalogue
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/featured", productHandler.ListFeatured())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories(false))
	routerMux.HandleFunc("GET /api/v1/categories/featured", categoryHandler.ListCategories(true))
	routerMux.HandleFunc("GET /api/v1/categories/{id}", categoryHandler.GetCategory())
	routerMux.HandleFunc("GET /api/v1/periods", periodHandler.ListPeriods(false))
	routerMux.HandleFunc("GET /api/v1/periods/featured", periodHandler.ListPeriods(true))
	routerMux.HandleFunc("GET /api/v1/periods/{id}", periodHandler.GetPeriod())
	routerMux.HandleFunc("GET /api/v1/settings", settingsHandler.GetSettings())
	routerMux.HandleFunc("POST /api/v1/messages/contact", submissionLimiter.Limit(messageHandler.SubmitContact()))
	routerMux.HandleFunc("POST /api/v1/messages/estimate", submissionLimiter.Limit(messageHandler.SubmitEstimate()))
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())

	// Back office
	routerMux.HandleFunc("GET /api/v1/admin/profile", admin(userHandler.Profile()))
	routerMux.HandleFunc("POST /api/v1/admin/products", admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}", admin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}", admin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("POST /api/v1/admin/categories", admin(categoryHandler.CreateCategory()))
	routerMux.HandleFunc("PUT /api/v1/admin/categories/{id}", admin(categoryHandler.UpdateCategory()))
	routerMux.HandleFunc("DELETE /api/v1/admin/categories/{id}", admin(categoryHandler.DeleteCategory()))
	routerMux.HandleFunc("POST /api/v1/admin/periods", admin(periodHandler.CreatePeriod()))
	routerMux.HandleFunc("PUT /api/v1/admin/periods/{id}", admin(periodHandler.UpdatePeriod()))
	routerMux.HandleFunc("DELETE /api/v1/admin/periods/{id}", admin(periodHandler.DeletePeriod()))
	routerMux.HandleFunc("GET /api/v1/admin/messages", admin(messageHandler.ListMessages()))
	routerMux.HandleFunc("GET /api/v1/admin/messages/{id}", admin(messageHandler.GetMessage()))
	routerMux.HandleFunc("PATCH /api/v1/admin/messages/{id}/read", admin(messageHandler.MarkRead()))
	routerMux.HandleFunc("DELETE /api/v1/admin/messages/{id}", admin(messageHandler.DeleteMessage()))
	routerMux.HandleFunc("PUT /api/v1/admin/settings", admin(settingsHandler.UpdateSettings()))

	// Operational
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "antiques-catalogue")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() { // Starts the HTTP server in a new goroutine so it doesn't block the main thread.

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Failed to flush traces", slog.String("error", err.Error()))
	}

}
