package app

import (
	"time"

	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/utils"
)

type Config struct {
	Port string

	// External weather provider; an empty URL disables the external branch.
	WeatherBaseURL string
	WeatherAPIKey  string
	WeatherTimeout time.Duration

	// Optional redis-backed condition cache; empty means in-process cache.
	RedisAddr string

	// Optional YAML file overriding scoring weights and weather thresholds.
	TunablesPath string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	weatherBaseURL := utils.GetEnv("WEATHER_API_URL", "", log)
	weatherAPIKey := utils.GetEnv("WEATHER_API_KEY", "", log)
	weatherTimeoutMs := utils.GetEnvAsInt("WEATHER_TIMEOUT_MS", 2500, log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	tunablesPath := utils.GetEnv("RECS_TUNABLES_PATH", "", log)

	return Config{
		Port:           port,
		WeatherBaseURL: weatherBaseURL,
		WeatherAPIKey:  weatherAPIKey,
		WeatherTimeout: time.Duration(weatherTimeoutMs) * time.Millisecond,
		RedisAddr:      redisAddr,
		TunablesPath:   tunablesPath,
	}
}
