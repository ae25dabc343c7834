package recs

// WeatherObservation is a partial reading: nil fields did not arrive and do
// not participate in resolution.
type WeatherObservation struct {
	TempC           *float64 `json:"temp_c,omitempty"`
	CloudCoverPct   *float64 `json:"cloud_cover_pct,omitempty"`
	PrecipitationMm *float64 `json:"precipitation_mm,omitempty"`
	Thunder         *bool    `json:"thunder,omitempty"`
	Snow            *bool    `json:"snow,omitempty"`
}

// HasSignal reports whether any field relevant to condition mapping is set.
// Temperature alone carries no condition information.
func (o *WeatherObservation) HasSignal() bool {
	if o == nil {
		return false
	}
	return o.CloudCoverPct != nil || o.PrecipitationMm != nil || o.Thunder != nil || o.Snow != nil
}

// Thresholds holds the empirical mapping constants. They are preserved from
// production telemetry tuning, not derived; treat them as configuration.
type Thresholds struct {
	PrecipRainMm   float64 `yaml:"precip_rain_mm"`
	CloudClearPct  float64 `yaml:"cloud_clear_pct"`
	CloudSunnyPct  float64 `yaml:"cloud_sunny_pct"`
	CloudPartlyPct float64 `yaml:"cloud_partly_pct"`
	CloudCloudyPct float64 `yaml:"cloud_cloudy_pct"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		PrecipRainMm:   0.2,
		CloudClearPct:  10,
		CloudSunnyPct:  35,
		CloudPartlyPct: 60,
		CloudCloudyPct: 85,
	}
}

// Normalize maps an observation to a condition key. Rules fire in a fixed
// precedence order and the first hit wins: thunder, snow, precipitation,
// then cloud-cover buckets (cover defaults to 0 when absent).
func (t Thresholds) Normalize(o *WeatherObservation) string {
	if o != nil {
		if o.Thunder != nil && *o.Thunder {
			return ConditionThunderstorm
		}
		if o.Snow != nil && *o.Snow {
			return ConditionSnow
		}
		if o.PrecipitationMm != nil && *o.PrecipitationMm > t.PrecipRainMm {
			return ConditionRain
		}
	}
	cover := 0.0
	if o != nil && o.CloudCoverPct != nil {
		cover = *o.CloudCoverPct
	}
	switch {
	case cover < t.CloudClearPct:
		return ConditionClear
	case cover < t.CloudSunnyPct:
		return ConditionSunny
	case cover < t.CloudPartlyPct:
		return ConditionPartlyCloudy
	case cover < t.CloudCloudyPct:
		return ConditionCloudy
	default:
		return ConditionOvercast
	}
}

// timeOfDayCondition is the last-resort mapping; total over all 24 hours.
func timeOfDayCondition(hour int) string {
	switch {
	case hour >= 6 && hour < 11:
		return ConditionPartlyCloudy
	case hour >= 11 && hour < 16:
		return ConditionSunny
	case hour >= 16 && hour < 20:
		return ConditionCloudy
	default:
		return ConditionOvercast
	}
}
