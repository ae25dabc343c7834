package recs

import "github.com/leafline/leafline-backend/internal/types"

// AffinityHistogram holds per-user frequency counts over recent behavior.
// It lives for a single request and is never persisted.
type AffinityHistogram struct {
	Brand   map[string]float64
	Strain  map[string]float64
	Terpene map[string]float64
}

// BuildAffinityHistogram folds a user's recent events into frequency maps.
// Every event contributes one count per populated field; terpenes count
// individually.
func BuildAffinityHistogram(events []*types.UserEvent) *AffinityHistogram {
	h := &AffinityHistogram{
		Brand:   map[string]float64{},
		Strain:  map[string]float64{},
		Terpene: map[string]float64{},
	}
	for _, e := range events {
		if e == nil {
			continue
		}
		if e.Brand != nil && *e.Brand != "" {
			h.Brand[*e.Brand]++
		}
		if e.StrainType != nil && *e.StrainType != "" {
			h.Strain[*e.StrainType]++
		}
		for _, t := range e.Terpenes {
			if t != "" {
				h.Terpene[t]++
			}
		}
	}
	return h
}

func (h *AffinityHistogram) IsEmpty() bool {
	if h == nil {
		return true
	}
	return len(h.Brand) == 0 && len(h.Strain) == 0 && len(h.Terpene) == 0
}
