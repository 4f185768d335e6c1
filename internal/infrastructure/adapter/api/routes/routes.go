package routes

import (
	"net/http"
	"time"

	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	sessionHandler *handler.SessionHandler,
	reservationHandler *handler.ReservationHandler,
	portfolioHandler *handler.PortfolioHandler,
	adminHandler *handler.AdminHandler,
	cacheConf config.CacheConfig,
) {
	// Session bootstrap
	router.POST("/session", sessionHandler.CreateSession)

	// Reservation routes; the list endpoint is the polling hot path and gets
	// a short-lived response cache
	reservationRoutes := router.Group("/reservations")
	{
		reservationRoutes.POST("", reservationHandler.Acquire)
		reservationRoutes.DELETE("", reservationHandler.Release)

		if cacheConf.Enabled {
			store := cache.New(cacheConf.TTL, cacheConf.CleanupInterval)
			reservationRoutes.GET("", middleware.Cache(store, cacheConf.TTL), reservationHandler.ListLive)
		} else {
			reservationRoutes.GET("", reservationHandler.ListLive)
		}
	}

	// Catalog routes
	portfolioRoutes := router.Group("/portfolios")
	{
		portfolioRoutes.GET("", portfolioHandler.List)
		portfolioRoutes.POST("/:portfolioId/completions", portfolioHandler.MarkCompleted)
		portfolioRoutes.POST("/:portfolioId/observations", portfolioHandler.RecordObservation)
	}

	// Administrative routes
	adminRoutes := router.Group("/admin")
	{
		adminRoutes.DELETE("/reservations", adminHandler.ForceRelease)
		adminRoutes.GET("/audit", adminHandler.ListAudit)
	}

	// Liveness probe
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, rateConf config.RateLimitConfig) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())

	if rateConf.Enabled {
		router.Use(middleware.RateLimiter(rate.Limit(rateConf.RequestsPerSecond), rateConf.Burst))
	}
}
