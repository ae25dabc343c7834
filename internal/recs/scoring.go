package recs

import (
	"sort"

	"github.com/leafline/leafline-backend/internal/types"
)

// Weights are the empirical scoring constants. Preserved verbatim from
// production tuning; override through the tunables file, not in code.
type Weights struct {
	Brand         float64 `yaml:"brand"`
	Strain        float64 `yaml:"strain"`
	Terpene       float64 `yaml:"terpene"`
	Popularity    float64 `yaml:"popularity"`
	RelatedBrand  float64 `yaml:"related_brand"`
	RelatedStrain float64 `yaml:"related_strain"`
}

func DefaultWeights() Weights {
	return Weights{
		Brand:         0.6,
		Strain:        0.6,
		Terpene:       0.3,
		Popularity:    0.02,
		RelatedBrand:  0.3,
		RelatedStrain: 0.3,
	}
}

// Engine ranks candidate products. It holds no mutable state; both ranking
// operations are pure functions of their inputs and safe for concurrent use.
type Engine struct {
	w Weights
}

func NewEngine(w Weights) *Engine {
	return &Engine{w: w}
}

// ForYou ranks candidates against a user's affinity histogram. When no
// histogram is available (anonymous or brand-new user) scoring is skipped
// entirely and candidates are ordered by 30-day purchases instead.
func (e *Engine) ForYou(hist *AffinityHistogram, candidates []*types.Product, limit int) []*types.Product {
	if hist.IsEmpty() {
		return popularityBaseline(candidates, limit)
	}

	ranked := make([]*types.Product, len(candidates))
	copy(ranked, candidates)

	scores := make(map[*types.Product]float64, len(ranked))
	for _, p := range ranked {
		score := e.w.Brand*hist.Brand[p.Brand] + e.w.Strain*hist.Strain[p.StrainType]
		for _, t := range p.Terpenes {
			score += e.w.Terpene * hist.Terpene[t]
		}
		score += e.w.Popularity * float64(p.PurchasesLast30d)
		scores[p] = score
	}

	// Stable sort: ties keep the candidates' original relative order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return truncate(ranked, limit)
}

// RelatedTo ranks candidates by similarity to an anchor product. The anchor
// itself is always excluded, even if present in the candidate slice.
func (e *Engine) RelatedTo(anchor *types.Product, candidates []*types.Product, limit int) []*types.Product {
	if anchor == nil {
		return []*types.Product{}
	}

	ranked := make([]*types.Product, 0, len(candidates))
	for _, p := range candidates {
		if p == nil || p.ID == anchor.ID {
			continue
		}
		ranked = append(ranked, p)
	}

	scores := make(map[*types.Product]float64, len(ranked))
	for _, p := range ranked {
		score := Jaccard(anchor.Terpenes, p.Terpenes)
		if p.Brand == anchor.Brand && anchor.Brand != "" {
			score += e.w.RelatedBrand
		}
		if p.StrainType == anchor.StrainType && anchor.StrainType != "" {
			score += e.w.RelatedStrain
		}
		scores[p] = score
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return truncate(ranked, limit)
}

// Jaccard computes |a∩b| / |a∪b| over string sets. Two empty sets yield 0,
// not a division by zero.
func Jaccard(a, b []string) float64 {
	setA := map[string]struct{}{}
	for _, s := range a {
		if s != "" {
			setA[s] = struct{}{}
		}
	}
	setB := map[string]struct{}{}
	for _, s := range b {
		if s != "" {
			setB[s] = struct{}{}
		}
	}
	inter := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		union = 1
	}
	return float64(inter) / float64(union)
}

func popularityBaseline(candidates []*types.Product, limit int) []*types.Product {
	ranked := make([]*types.Product, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PurchasesLast30d > ranked[j].PurchasesLast30d
	})
	return truncate(ranked, limit)
}

func truncate(products []*types.Product, limit int) []*types.Product {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}
