package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/recs"
)

// Upstream field aliases. The provider contract has been unstable, so the
// alias lists stay centralized here; extend them instead of branching inline.
var (
	conditionAliases = []string{"condition", "weather"}
	cloudAliases     = []string{"cloudCoverPct", "cloud_cover", "clouds"}
	precipAliases    = []string{"precipitationMm", "precip_mm", "rain_mm"}
	thunderAliases   = []string{"thunder", "thunderstorm"}
	snowAliases      = []string{"snow", "snowfall"}
)

const defaultTimeout = 2500 * time.Millisecond

// Client fetches current conditions from the configured provider endpoint.
// It implements recs.WeatherProvider.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logger.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, baseLog *logger.Logger) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("missing weather provider base URL")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		http:    &http.Client{Timeout: timeout},
		log:     baseLog.With("client", "WeatherClient"),
	}, nil
}

func (c *Client) Current(ctx context.Context, lat, lon float64) (recs.ProviderReport, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return recs.ProviderReport{}, fmt.Errorf("weather base url: %w", err)
	}
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return recs.ProviderReport{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return recs.ProviderReport{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<12))
		return recs.ProviderReport{}, fmt.Errorf("weather provider status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return recs.ProviderReport{}, fmt.Errorf("weather body: %w", err)
	}
	return parseReport(body)
}

func parseReport(body []byte) (recs.ProviderReport, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return recs.ProviderReport{}, fmt.Errorf("weather payload: %w", err)
	}

	report := recs.ProviderReport{}
	if s, ok := firstString(fields, conditionAliases); ok {
		report.Condition = strings.ToLower(strings.TrimSpace(s))
	}

	obs := &recs.WeatherObservation{}
	if f, ok := firstFloat(fields, cloudAliases); ok {
		obs.CloudCoverPct = &f
	}
	if f, ok := firstFloat(fields, precipAliases); ok {
		obs.PrecipitationMm = &f
	}
	if b, ok := firstBool(fields, thunderAliases); ok {
		obs.Thunder = &b
	}
	if b, ok := firstBool(fields, snowAliases); ok {
		obs.Snow = &b
	}
	if obs.HasSignal() {
		report.Observation = obs
	}

	if report.Condition == "" && report.Observation == nil {
		return recs.ProviderReport{}, fmt.Errorf("weather payload has no usable field")
	}
	return report, nil
}

func firstString(fields map[string]json.RawMessage, names []string) (string, bool) {
	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

func firstFloat(fields map[string]json.RawMessage, names []string) (float64, bool) {
	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

func firstBool(fields map[string]json.RawMessage, names []string) (bool, bool) {
	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return b, true
		}
		// Some providers report snowfall/thunder as a numeric intensity.
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return f > 0, true
		}
	}
	return false, false
}
