package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/leafline/leafline-backend/internal/http/handlers"
	httpMW "github.com/leafline/leafline-backend/internal/http/middleware"
	"github.com/leafline/leafline-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler         *httpH.HealthHandler
	RecommendationHandler *httpH.RecommendationHandler
	EventHandler          *httpH.EventHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Recommendations
		if cfg.RecommendationHandler != nil {
			api.GET("/recommendations/for-you", cfg.RecommendationHandler.GetForYou)
			api.GET("/recommendations/weather", cfg.RecommendationHandler.GetByWeather)
			api.GET("/products/:id/related", cfg.RecommendationHandler.GetRelated)
		}

		// Behavioral events
		if cfg.EventHandler != nil {
			api.POST("/events", cfg.EventHandler.IngestEvents)
		}
	}

	return r
}
