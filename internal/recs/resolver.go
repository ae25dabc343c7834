package recs

import (
	"context"
	"fmt"
	"time"

	"github.com/leafline/leafline-backend/internal/pkg/logger"
)

// Coordinates of the requesting device or store.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ProviderReport is what an external weather source yields: either an
// explicit condition string, a partial observation, or both.
type ProviderReport struct {
	Condition   string
	Observation *WeatherObservation
}

// WeatherProvider abstracts the external weather source.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (ProviderReport, error)
}

// ConditionResolver turns whatever weather signal is at hand into exactly one
// supported condition key. It never fails: every degraded path falls through
// to a less-informed branch, ending at a pure time-of-day mapping.
type ConditionResolver struct {
	provider   WeatherProvider
	cache      ConditionCache
	thresholds Thresholds
	ttl        time.Duration
	now        func() time.Time
	log        *logger.Logger
}

const DefaultConditionTTL = 300000 * time.Millisecond

func NewConditionResolver(provider WeatherProvider, cache ConditionCache, thresholds Thresholds, ttl time.Duration, baseLog *logger.Logger) *ConditionResolver {
	if cache == nil {
		cache = NewMemoryConditionCache()
	}
	if ttl <= 0 {
		ttl = DefaultConditionTTL
	}
	return &ConditionResolver{
		provider:   provider,
		cache:      cache,
		thresholds: thresholds,
		ttl:        ttl,
		now:        time.Now,
		log:        baseLog.With("component", "ConditionResolver"),
	}
}

// WithClock overrides the resolver's time source.
func (r *ConditionResolver) WithClock(now func() time.Time) *ConditionResolver {
	r.now = now
	return r
}

// Resolve tries, in order: the external provider (cached by rounded
// coordinates), the caller-supplied observation, then local time of day.
func (r *ConditionResolver) Resolve(ctx context.Context, obs *WeatherObservation, coords *Coordinates) string {
	if r.provider != nil && coords != nil {
		if cond, ok := r.resolveExternal(ctx, *coords); ok {
			return cond
		}
	}
	if obs.HasSignal() {
		return r.thresholds.Normalize(obs)
	}
	return timeOfDayCondition(r.now().Hour())
}

func (r *ConditionResolver) resolveExternal(ctx context.Context, coords Coordinates) (string, bool) {
	key := cacheKey(coords)
	if cond, ok := r.cache.Get(ctx, key); ok {
		return cond, true
	}

	report, err := r.provider.Current(ctx, coords.Lat, coords.Lon)
	if err != nil {
		r.log.Debug("weather provider lookup failed, falling back", "error", err, "key", key)
		return "", false
	}

	cond := NormalizeConditionKey(report.Condition)
	if cond == "" {
		if !report.Observation.HasSignal() {
			return "", false
		}
		cond = r.thresholds.Normalize(report.Observation)
	}

	r.cache.Put(ctx, key, cond, r.ttl)
	return cond, true
}

// cacheKey rounds coordinates to 2 decimal places (~1km) so nearby requests
// share a cache entry.
func cacheKey(coords Coordinates) string {
	return fmt.Sprintf("%.2f,%.2f", coords.Lat, coords.Lon)
}
