package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/adityakashyap5047/Evix/internal/di"
	"github.com/adityakashyap5047/Evix/pkg/config"
	"github.com/adityakashyap5047/Evix/pkg/database"
	"github.com/adityakashyap5047/Evix/pkg/logger"
	"github.com/adityakashyap5047/Evix/pkg/middleware"
	"github.com/adityakashyap5047/Evix/pkg/redis"
	"github.com/adityakashyap5047/Evix/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	appLog, err := logger.Init(&logger.Config{
		Environment: cfg.App.Environment,
		ServiceName: cfg.App.Name,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog.Info("Starting Evix API...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	} else if telemetryCfg.Enabled {
		appLog.Info(fmt.Sprintf("Telemetry initialized (collector: %s)", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Apply schema migrations before opening the pool
	if cfg.Database.Migrate {
		if err := runMigrations(cfg); err != nil {
			appLog.Fatal(fmt.Sprintf("Migration failed: %v", err))
		}
		appLog.Info("Database schema up to date")
	}

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize Redis connection (optional - discovery caching is disabled
	// without it)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisCfg := &redis.Config{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			PoolSize:      cfg.Redis.PoolSize,
			MinIdleConns:  cfg.Redis.MinIdleConns,
			DialTimeout:   cfg.Redis.DialTimeout,
			ReadTimeout:   cfg.Redis.ReadTimeout,
			WriteTimeout:  cfg.Redis.WriteTimeout,
			MaxRetries:    3,
			RetryInterval: time.Second,
		}
		redisClient, err = redis.NewClient(ctx, redisCfg)
		if err != nil {
			appLog.Warn(fmt.Sprintf("Redis connection failed (caching disabled): %v", err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLog.Info(fmt.Sprintf("Redis connected (%s)", redisCfg.Addr()))
		}
	}

	// Build dependency injection container
	container, err := di.NewContainer(&di.ContainerConfig{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Log:    appLog,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to build container: %v", err))
	}

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))
	router.Use(middleware.CORS())
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}

	registerRoutes(router, container, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Evix API listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}

// registerRoutes wires the HTTP surface. Event detail is slug-addressed; the
// wildcard is registered as :id because the sibling routes are id-addressed
// and gin requires one name per segment.
func registerRoutes(router *gin.Engine, c *di.Container, cfg *config.Config) {
	authCfg := middleware.AuthConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	}

	// Health check endpoints
	router.GET("/health", c.HealthHandler.Health)
	router.GET("/ready", c.HealthHandler.Ready)

	// Signed webhooks from the identity provider
	router.POST("/webhooks/users", c.WebhookHandler.HandleUserEvent)

	v1 := router.Group("/api/v1")
	{
		events := v1.Group("/events")
		{
			// Public endpoints; the main listing personalizes when a token
			// is present
			events.GET("", middleware.OptionalAuth(authCfg), c.EventHandler.List)
			events.GET("/all", c.EventHandler.ListAll)
			events.GET("/search", c.EventHandler.Search)
			events.GET("/categories/counts", c.EventHandler.CategoryCounts)
			events.GET("/category/:category", c.EventHandler.ListByCategory)
			events.GET("/location", c.EventHandler.ListByLocation)
			events.GET("/:id", c.EventHandler.GetBySlug)

			protected := events.Group("")
			protected.Use(middleware.Auth(authCfg))
			{
				protected.POST("", c.EventHandler.Create)
				protected.GET("/my", c.EventHandler.ListMine)
				protected.DELETE("/:id", c.EventHandler.Delete)
				protected.POST("/:id/register", c.RegistrationHandler.Register)
				protected.GET("/:id/registration-status", c.RegistrationHandler.Status)
				protected.GET("/:id/registrations", c.RegistrationHandler.ListForEvent)
			}
		}

		registrations := v1.Group("/registrations")
		registrations.Use(middleware.Auth(authCfg))
		{
			registrations.GET("/my", c.RegistrationHandler.ListMine)
			registrations.POST("/checkin", c.RegistrationHandler.CheckIn)
			registrations.DELETE("/:id", c.RegistrationHandler.Cancel)
			registrations.GET("/:id/qr", c.RegistrationHandler.TicketQR)
		}

		users := v1.Group("/users")
		users.Use(middleware.Auth(authCfg))
		{
			users.GET("/me", c.UserHandler.Me)
			users.POST("/onboarding", c.UserHandler.CompleteOnboarding)
		}

		images := v1.Group("/images")
		images.Use(middleware.Auth(authCfg))
		{
			images.GET("", c.ImageHandler.Search)
		}
	}
}

// runMigrations applies pending SQL migrations from the configured directory
func runMigrations(cfg *config.Config) error {
	m, err := migrate.New("file://"+cfg.Database.MigrationsPath, cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
