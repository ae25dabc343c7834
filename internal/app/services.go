package app

import (
	"gorm.io/gorm"

	redisclient "github.com/leafline/leafline-backend/internal/clients/redis"
	"github.com/leafline/leafline-backend/internal/clients/weather"
	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/recs"
	"github.com/leafline/leafline-backend/internal/services"
)

type Services struct {
	Recommendation services.RecommendationService
	Events         services.EventService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	tunables, err := recs.LoadTunables(cfg.TunablesPath)
	if err != nil {
		// A broken tunables file should not take the service down.
		log.Warn("Could not load tunables, using defaults", "error", err, "path", cfg.TunablesPath)
		tunables = recs.DefaultTunables()
	}

	var provider recs.WeatherProvider
	if cfg.WeatherBaseURL != "" {
		client, err := weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cfg.WeatherTimeout, log)
		if err != nil {
			log.Warn("Could not init weather client, external branch disabled", "error", err)
		} else {
			provider = client
		}
	}

	var cache recs.ConditionCache
	if cfg.RedisAddr != "" {
		redisCache, err := redisclient.NewConditionCache(cfg.RedisAddr, log)
		if err != nil {
			log.Warn("Could not init redis condition cache, using in-process cache", "error", err)
		} else {
			cache = redisCache
		}
	}
	if cache == nil {
		cache = recs.NewMemoryConditionCache()
	}

	engine := recs.NewEngine(tunables.Weights)
	resolver := recs.NewConditionResolver(provider, cache, tunables.Thresholds, tunables.ConditionTTL(), log)

	recommendationService := services.NewRecommendationService(
		db,
		log,
		reposet.Product,
		reposet.StoreStock,
		reposet.UserEvent,
		engine,
		resolver,
	)
	eventService := services.NewEventService(db, log, reposet.UserEvent, reposet.Product)

	return Services{
		Recommendation: recommendationService,
		Events:         eventService,
	}, nil
}
