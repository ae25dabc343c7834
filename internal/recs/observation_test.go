package recs

import "testing"

func fptr(f float64) *float64 { return &f }
func bptr(b bool) *bool       { return &b }

func TestNormalizePrecedence(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		name string
		obs  *WeatherObservation
		want string
	}{
		{
			name: "thunder_beats_everything",
			obs:  &WeatherObservation{Thunder: bptr(true), Snow: bptr(true), PrecipitationMm: fptr(12), CloudCoverPct: fptr(100)},
			want: ConditionThunderstorm,
		},
		{
			name: "snow_beats_rain_and_clouds",
			obs:  &WeatherObservation{Snow: bptr(true), PrecipitationMm: fptr(5), CloudCoverPct: fptr(100)},
			want: ConditionSnow,
		},
		{
			name: "thunder_false_does_not_fire",
			obs:  &WeatherObservation{Thunder: bptr(false), Snow: bptr(true)},
			want: ConditionSnow,
		},
		{
			name: "rain_above_threshold",
			obs:  &WeatherObservation{PrecipitationMm: fptr(0.3)},
			want: ConditionRain,
		},
		{
			name: "drizzle_at_threshold_is_not_rain",
			obs:  &WeatherObservation{PrecipitationMm: fptr(0.2)},
			want: ConditionClear,
		},
		{
			name: "missing_cover_defaults_to_clear",
			obs:  &WeatherObservation{Thunder: bptr(false)},
			want: ConditionClear,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := th.Normalize(tc.obs); got != tc.want {
				t.Fatalf("Normalize(%+v)=%q, want %q", tc.obs, got, tc.want)
			}
		})
	}
}

func TestNormalizeCloudBuckets(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		cover float64
		want  string
	}{
		{cover: 0, want: ConditionClear},
		{cover: 5, want: ConditionClear},
		{cover: 10, want: ConditionSunny},
		{cover: 20, want: ConditionSunny},
		{cover: 35, want: ConditionPartlyCloudy},
		{cover: 45, want: ConditionPartlyCloudy},
		{cover: 60, want: ConditionCloudy},
		{cover: 65, want: ConditionCloudy},
		{cover: 85, want: ConditionOvercast},
		{cover: 90, want: ConditionOvercast},
		{cover: 100, want: ConditionOvercast},
	}

	for _, tc := range cases {
		got := th.Normalize(&WeatherObservation{CloudCoverPct: fptr(tc.cover)})
		if got != tc.want {
			t.Fatalf("cover %.0f => %q, want %q", tc.cover, got, tc.want)
		}
	}
}

func TestTimeOfDayConditionIsTotal(t *testing.T) {
	wantByHour := map[string][2]int{
		ConditionPartlyCloudy: {6, 11},
		ConditionSunny:        {11, 16},
		ConditionCloudy:       {16, 20},
	}
	for hour := 0; hour < 24; hour++ {
		got := timeOfDayCondition(hour)
		if !IsValidWeatherCondition(got) {
			t.Fatalf("hour %d produced unsupported condition %q", hour, got)
		}
		expected := ConditionOvercast
		for cond, span := range wantByHour {
			if hour >= span[0] && hour < span[1] {
				expected = cond
			}
		}
		if got != expected {
			t.Fatalf("hour %d => %q, want %q", hour, got, expected)
		}
	}
}

func TestHasSignal(t *testing.T) {
	var nilObs *WeatherObservation
	if nilObs.HasSignal() {
		t.Fatalf("nil observation should have no signal")
	}
	if (&WeatherObservation{}).HasSignal() {
		t.Fatalf("empty observation should have no signal")
	}
	if (&WeatherObservation{TempC: fptr(21)}).HasSignal() {
		t.Fatalf("temperature alone is not a condition signal")
	}
	if !(&WeatherObservation{CloudCoverPct: fptr(0)}).HasSignal() {
		t.Fatalf("explicit zero cloud cover is a signal")
	}
}
