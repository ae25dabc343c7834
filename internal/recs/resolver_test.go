package recs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/leafline/leafline-backend/internal/pkg/logger"
)

type fakeProvider struct {
	calls  int
	report ProviderReport
	err    error
}

func (p *fakeProvider) Current(_ context.Context, _, _ float64) (ProviderReport, error) {
	p.calls++
	return p.report, p.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestResolveUsesProviderAndCaches(t *testing.T) {
	provider := &fakeProvider{report: ProviderReport{Condition: "Rain"}}
	r := NewConditionResolver(provider, NewMemoryConditionCache(), DefaultThresholds(), time.Minute, testLogger(t))

	coords := &Coordinates{Lat: 40.7128, Lon: -74.0060}
	ctx := context.Background()

	if got := r.Resolve(ctx, nil, coords); got != ConditionRain {
		t.Fatalf("first resolve=%q, want %q", got, ConditionRain)
	}
	if got := r.Resolve(ctx, nil, coords); got != ConditionRain {
		t.Fatalf("second resolve=%q, want %q", got, ConditionRain)
	}
	if provider.calls != 1 {
		t.Fatalf("provider called %d times, want 1 (cache hit expected)", provider.calls)
	}

	// Same entry after rounding to two decimals.
	near := &Coordinates{Lat: 40.7129, Lon: -74.0062}
	if got := r.Resolve(ctx, nil, near); got != ConditionRain {
		t.Fatalf("near resolve=%q, want %q", got, ConditionRain)
	}
	if provider.calls != 1 {
		t.Fatalf("provider called %d times for rounded-equal coords, want 1", provider.calls)
	}

	// A different cell is a distinct entry.
	far := &Coordinates{Lat: 41.00, Lon: -74.0060}
	r.Resolve(ctx, nil, far)
	if provider.calls != 2 {
		t.Fatalf("provider called %d times for distinct coords, want 2", provider.calls)
	}
}

func TestResolveProviderMetricsMappedThroughThresholds(t *testing.T) {
	cover := 90.0
	provider := &fakeProvider{report: ProviderReport{Observation: &WeatherObservation{CloudCoverPct: &cover}}}
	r := NewConditionResolver(provider, NewMemoryConditionCache(), DefaultThresholds(), time.Minute, testLogger(t))

	got := r.Resolve(context.Background(), nil, &Coordinates{Lat: 1, Lon: 2})
	if got != ConditionOvercast {
		t.Fatalf("resolve=%q, want %q", got, ConditionOvercast)
	}
}

func TestResolveFallsBackToObservationOnProviderError(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("connection refused")}
	r := NewConditionResolver(provider, NewMemoryConditionCache(), DefaultThresholds(), time.Minute, testLogger(t))

	snow := true
	got := r.Resolve(context.Background(), &WeatherObservation{Snow: &snow}, &Coordinates{Lat: 1, Lon: 2})
	if got != ConditionSnow {
		t.Fatalf("resolve=%q, want %q after provider failure", got, ConditionSnow)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls=%d, want 1", provider.calls)
	}
}

func TestResolveFallsBackToTimeOfDay(t *testing.T) {
	r := NewConditionResolver(nil, NewMemoryConditionCache(), DefaultThresholds(), time.Minute, testLogger(t))

	cases := []struct {
		hour int
		want string
	}{
		{hour: 8, want: ConditionPartlyCloudy},
		{hour: 13, want: ConditionSunny},
		{hour: 18, want: ConditionCloudy},
		{hour: 23, want: ConditionOvercast},
		{hour: 3, want: ConditionOvercast},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("hour_%02d", tc.hour), func(t *testing.T) {
			r.WithClock(func() time.Time {
				return time.Date(2025, 6, 1, tc.hour, 30, 0, 0, time.Local)
			})
			first := r.Resolve(context.Background(), nil, nil)
			second := r.Resolve(context.Background(), nil, nil)
			if first != tc.want {
				t.Fatalf("resolve at hour %d=%q, want %q", tc.hour, first, tc.want)
			}
			if first != second {
				t.Fatalf("resolve not deterministic: %q then %q", first, second)
			}
		})
	}
}

func TestResolveExplicitObservationBeatsTimeOfDay(t *testing.T) {
	r := NewConditionResolver(nil, NewMemoryConditionCache(), DefaultThresholds(), time.Minute, testLogger(t))
	thunder := true
	got := r.Resolve(context.Background(), &WeatherObservation{Thunder: &thunder}, nil)
	if got != ConditionThunderstorm {
		t.Fatalf("resolve=%q, want %q", got, ConditionThunderstorm)
	}
}
