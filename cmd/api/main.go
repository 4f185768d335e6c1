package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	adminUseCase "github.com/amirhossein-jamali/shift-monitor/internal/domain/usecase/admin"
	catalogUseCase "github.com/amirhossein-jamali/shift-monitor/internal/domain/usecase/catalog"
	lockUseCase "github.com/amirhossein-jamali/shift-monitor/internal/domain/usecase/lock"
	"github.com/amirhossein-jamali/shift-monitor/internal/domain/usecase/sweep"

	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == "production")

	// Setup database configuration
	dbConfig := &database.Config{
		Driver:          "postgres",
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay.Seconds()),
	}

	// Initialize time provider and the shared hour oracle
	tp := timeProvider.NewRealTimeProvider()
	oracle, err := timeProvider.NewZoneHourOracle(cfg.Reservation.Timezone, tp)
	if err != nil {
		log.Fatalf("Failed to initialize hour oracle: %v", err)
	}

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Initialize repositories
	reservationRepo := repository.NewReservationRepository(dbManager.DB(), tp, appLogger)
	portfolioRepo := repository.NewPortfolioRepository(dbManager.DB(), appLogger)
	observationRepo := repository.NewObservationRepository(dbManager.DB(), appLogger)
	completionRepo := repository.NewCompletionRepository(dbManager.DB(), appLogger)
	auditRepo := repository.NewAuditRepository(dbManager.DB(), appLogger)

	// Unit of work (transaction manager)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Run migrations
	if err := dbManager.MigrationManager().MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Seed the monitored catalog
	if err := migration.CreateDefaultPortfolios(context.Background(), portfolioRepo, tp); err != nil {
		appLogger.Error("Failed to seed default portfolios", map[string]any{
			"error": err.Error(),
		})
	}

	// Initialize use cases
	resolver := lockUseCase.NewResolver(reservationRepo, completionRepo, oracle, tp, appLogger)
	lockService := lockUseCase.NewService(reservationRepo, resolver, oracle, tp, appLogger, cfg.Reservation.TTL)
	catalogService := catalogUseCase.NewService(portfolioRepo, observationRepo, reservationRepo, uow, oracle, tp, appLogger)
	adminService := adminUseCase.NewService(reservationRepo, auditRepo, tp, appLogger)

	// Background sweeper for void reservations
	sweeper := sweep.NewSweeper(reservationRepo, oracle, tp, appLogger, cfg.Reservation.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize API handlers
	sessionHandler := handler.NewSessionHandler(appLogger)
	reservationHandler := handler.NewReservationHandler(lockService, appLogger)
	portfolioHandler := handler.NewPortfolioHandler(catalogService, appLogger)
	adminHandler := handler.NewAdminHandler(adminService, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger, cfg.RateLimit)

	// Setup routes
	routes.SetupRoutes(router, sessionHandler, reservationHandler, portfolioHandler, adminHandler, cfg.Cache)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port":     cfg.Server.Port,
			"env":      cfg.Environment,
			"timezone": cfg.Reservation.Timezone,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop the sweeper before closing the store connection
	sweeper.Stop()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	if cfg.Database.Host == "" {
		if cfg.Environment == config.Production && os.Getenv("SM_DB_HOST") == "" {
			missingConfigs = append(missingConfigs, "database.host (or SM_DB_HOST environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.host")
		}
	}

	if cfg.Database.Port == "" {
		if cfg.Environment == config.Production && os.Getenv("SM_DB_PORT") == "" {
			missingConfigs = append(missingConfigs, "database.port (or SM_DB_PORT environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.port")
		}
	}

	if cfg.Database.Username == "" {
		if cfg.Environment == config.Production && os.Getenv("SM_DB_USERNAME") == "" {
			missingConfigs = append(missingConfigs, "database.username (or SM_DB_USERNAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.username")
		}
	}

	if cfg.Database.Password == "" {
		if cfg.Environment == config.Production && os.Getenv("SM_DB_PASSWORD") == "" {
			missingConfigs = append(missingConfigs, "database.password (or SM_DB_PASSWORD environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.password")
		}
	}

	if cfg.Database.Database == "" {
		if cfg.Environment == config.Production && os.Getenv("SM_DB_NAME") == "" {
			missingConfigs = append(missingConfigs, "database.database (or SM_DB_NAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.database")
		}
	}

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Validate reservation configuration
	if cfg.Reservation.TTL == 0 {
		missingConfigs = append(missingConfigs, "reservation.ttl")
	}

	if cfg.Reservation.RefreshInterval == 0 {
		missingConfigs = append(missingConfigs, "reservation.refreshInterval")
	}

	if cfg.Reservation.SweepInterval == 0 {
		missingConfigs = append(missingConfigs, "reservation.sweepInterval")
	}

	if cfg.Reservation.Timezone == "" {
		missingConfigs = append(missingConfigs, "reservation.timezone")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		if strings.ToLower(cfg.Database.SSLMode) != "require" && strings.ToLower(cfg.Database.SSLMode) != "verify-ca" && strings.ToLower(cfg.Database.SSLMode) != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}

		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
