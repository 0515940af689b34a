package http

import (
	"github.com/gin-gonic/gin"

	"github.com/foodtrack/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		foods := v1.Group("/foods")
		{
			foods.POST("/match", handler.MatchFood)
			foods.POST("/match/bulk", handler.MatchFoodsBulk)
			foods.POST("", handler.RegisterFood)
			foods.GET("", handler.ListFoods)
		}

		entries := v1.Group("/entries")
		{
			entries.POST("", handler.LogEntry)
			entries.GET("/:date", handler.GetDailyLog)
		}

		v1.GET("/summary", handler.GetSummary)
	}

	return router
}
