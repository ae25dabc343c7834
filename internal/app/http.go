package app

import (
	"github.com/leafline/leafline-backend/internal/http"
	httpH "github.com/leafline/leafline-backend/internal/http/handlers"
	"github.com/leafline/leafline-backend/internal/pkg/logger"
)

type Handlers struct {
	Health         *httpH.HealthHandler
	Recommendation *httpH.RecommendationHandler
	Event          *httpH.EventHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         httpH.NewHealthHandler(),
		Recommendation: httpH.NewRecommendationHandler(log, services.Recommendation),
		Event:          httpH.NewEventHandler(log, services.Events),
	}
}

func wireServer(log *logger.Logger, handlers Handlers) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:                   log,
		HealthHandler:         handlers.Health,
		RecommendationHandler: handlers.Recommendation,
		EventHandler:          handlers.Event,
	})
}
