package recs

import "strings"

// Canonical condition keys.
const (
	ConditionSunny        = "sunny"
	ConditionClear        = "clear"
	ConditionPartlyCloudy = "partly cloudy"
	ConditionCloudy       = "cloudy"
	ConditionOvercast     = "overcast"
	ConditionRain         = "rain"
	ConditionSnow         = "snow"
	ConditionThunderstorm = "thunderstorm"
)

// WeatherCriteria maps a condition to the catalog facets and display copy
// used for weather-adaptive merchandising.
type WeatherCriteria struct {
	Condition   string
	Tags        []string
	Description string
	Categories  []string
	StrainTypes []string
	SearchTerms []string
}

var criteriaTable = map[string]WeatherCriteria{
	ConditionSunny: {
		Condition:   ConditionSunny,
		Tags:        []string{"Uplifting", "Energizing"},
		Description: "Sunshine picks: bright sativas, citrus terpenes and patio-ready beverages.",
		Categories:  []string{"beverages", "pre-rolls", "flower"},
		StrainTypes: []string{"sativa", "hybrid"},
		SearchTerms: []string{"citrus", "energizing", "uplift"},
	},
	ConditionClear: {
		Condition:   ConditionClear,
		Tags:        []string{"Crisp", "Focused"},
		Description: "Clear skies call for crisp, clear-headed strains and easy vapes.",
		Categories:  []string{"flower", "vaporizers"},
		StrainTypes: []string{"sativa", "hybrid"},
		SearchTerms: []string{"limonene", "focus", "clear"},
	},
	ConditionPartlyCloudy: {
		Condition:   ConditionPartlyCloudy,
		Tags:        []string{"Balanced", "Easygoing"},
		Description: "A little sun, a little shade: balanced hybrids for an easygoing day.",
		Categories:  []string{"flower", "edibles"},
		StrainTypes: []string{"hybrid"},
		SearchTerms: []string{"balanced", "smooth"},
	},
	ConditionCloudy: {
		Condition:   ConditionCloudy,
		Tags:        []string{"Mellow", "Comforting"},
		Description: "Grey outside, mellow inside: comforting edibles and soft indicas.",
		Categories:  []string{"edibles", "tinctures"},
		StrainTypes: []string{"hybrid", "indica"},
		SearchTerms: []string{"mellow", "relax"},
	},
	ConditionOvercast: {
		Condition:   ConditionOvercast,
		Tags:        []string{"Cozy", "Soothing"},
		Description: "Full cloud cover, full couch cover: soothing picks for staying in.",
		Categories:  []string{"edibles", "tinctures", "topicals"},
		StrainTypes: []string{"indica", "cbd"},
		SearchTerms: []string{"cozy", "soothing", "comfort"},
	},
	ConditionRain: {
		Condition:   ConditionRain,
		Tags:        []string{"Rainy Day", "Relaxing"},
		Description: "Rainy-day rotation: warm drinks, slow edibles and myrcene-heavy strains.",
		Categories:  []string{"edibles", "beverages", "tinctures"},
		StrainTypes: []string{"indica", "hybrid"},
		SearchTerms: []string{"myrcene", "chill", "rainy"},
	},
	ConditionSnow: {
		Condition:   ConditionSnow,
		Tags:        []string{"Warming", "Winter"},
		Description: "Snowed in: warming concentrates, rich edibles and body-melt topicals.",
		Categories:  []string{"concentrates", "edibles", "topicals"},
		StrainTypes: []string{"indica"},
		SearchTerms: []string{"warming", "winter", "cozy"},
	},
	ConditionThunderstorm: {
		Condition:   ConditionThunderstorm,
		Tags:        []string{"Calming", "Stay In"},
		Description: "Storm session: calming CBD blends and sleepy indicas while it rolls through.",
		Categories:  []string{"edibles", "tinctures", "cbd"},
		StrainTypes: []string{"indica", "cbd"},
		SearchTerms: []string{"calming", "sleep", "linalool"},
	},
}

// NormalizeConditionKey lower-cases and trims a caller-supplied key.
func NormalizeConditionKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// LookupCriteria returns the criteria for a normalized condition key. Callers
// treat a miss as "apply no weather filter", never as an error.
func LookupCriteria(conditionKey string) (WeatherCriteria, bool) {
	c, ok := criteriaTable[conditionKey]
	return c, ok
}

// IsValidWeatherCondition is a membership test over the eight supported keys,
// insensitive to case and surrounding whitespace.
func IsValidWeatherCondition(conditionKey string) bool {
	_, ok := criteriaTable[NormalizeConditionKey(conditionKey)]
	return ok
}

// SupportedConditions returns the canonical key set in a stable order.
func SupportedConditions() []string {
	return []string{
		ConditionSunny,
		ConditionClear,
		ConditionPartlyCloudy,
		ConditionCloudy,
		ConditionOvercast,
		ConditionRain,
		ConditionSnow,
		ConditionThunderstorm,
	}
}
