package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/vitalrecife/storefront/internal/catalog"
	"github.com/vitalrecife/storefront/internal/config"
	"github.com/vitalrecife/storefront/internal/database"
	"github.com/vitalrecife/storefront/internal/email"
	"github.com/vitalrecife/storefront/internal/handlers"
	"github.com/vitalrecife/storefront/internal/logging"
	"github.com/vitalrecife/storefront/internal/middleware"
	"github.com/vitalrecife/storefront/internal/routes"
	"github.com/vitalrecife/storefront/internal/services"
	"github.com/vitalrecife/storefront/internal/session"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.AppEnv)

	if cfg.SessionSecret == "" {
		slog.Error("SESSION_SECRET environment variable is required")
		os.Exit(1)
	}

	// Catalog
	cat, err := loadCatalog(cfg)
	if err != nil {
		slog.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded", "products", len(cat.Products()), "challenges", len(cat.Challenges()))

	// Database (optional error log sink)
	var pgLogHandler *logging.PGHandler
	cleanupDone := make(chan struct{})
	if cfg.DatabaseEnabled() {
		if err := database.Connect(cfg); err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}

		// PostgreSQL log handler (ERROR+ async batch)
		pgLogHandler = logging.NewPGHandler(database.DB)
		logging.Attach(stdout, pgLogHandler)

		// Log cleanup
		logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)
	} else {
		slog.Info("DB_PASSWORD not set, error logs go to stdout only")
	}

	// Services
	mailer := email.NewService(cfg)
	authService := services.NewAuthService(cfg, mailer)
	tokenService := services.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)

	// Sessions
	baseCtx, cancelSessions := context.WithCancel(context.Background())
	store := session.NewStore(baseCtx, authService, cfg.SessionTTL)
	sweepDone := make(chan struct{})
	store.StartSweeper(cfg.SweepInterval, sweepDone)

	// Handlers
	renderer := handlers.NewRenderer(cat, cfg.SiteURL)
	sessionHandler := handlers.NewSessionHandler(store, tokenService, renderer, cfg.AppEnv == "production")
	authHandler := handlers.NewAuthHandler(authService, renderer)
	profileHandler := handlers.NewProfileHandler(authService, renderer)
	rewardsHandler := handlers.NewRewardsHandler(cat, cfg.SiteURL, renderer)
	cartHandler := handlers.NewCartHandler(cat, renderer)
	healthHandler := handlers.NewHealthHandler(store)
	legalHandler := handlers.NewLegalHandler(cfg.SiteURL)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, store, sessionHandler, authHandler, profileHandler, rewardsHandler, cartHandler, healthHandler, legalHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(sweepDone)
	store.Close()
	cancelSessions()

	close(cleanupDone)
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func loadCatalog(cfg *config.Config) (*catalog.Static, error) {
	if cfg.CatalogPath != "" {
		return catalog.LoadFromFile(cfg.CatalogPath)
	}
	return catalog.Embedded()
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"request_id", middleware.GetRequestID(c),
			"action", c.Method()+" "+c.Path(),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
