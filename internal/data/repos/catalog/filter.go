package catalog

import "github.com/google/uuid"

// OrderBy selectors understood by ProductRepo.FindCandidates.
const (
	OrderByPopularity = "popularity"
	OrderByNone       = ""
)

// ProductFilter is a storage-agnostic candidate descriptor. Facet slices are
// OR-ed within themselves and OR-ed against each other; the repo translates
// the whole descriptor into SQL so callers never touch query objects.
type ProductFilter struct {
	// Weather-criteria facets.
	Categories  []string
	StrainTypes []string
	SearchTerms []string

	// Related-product facets: any of brand match, strain match or terpene
	// overlap qualifies a candidate.
	Brand            string
	StrainType       string
	TerpeneOverlap   []string
	ExcludeProductID *uuid.UUID

	// Store scoping: when non-empty, candidates are restricted to this set.
	ProductIDs []uuid.UUID

	OrderBy string
}

// HasFacets reports whether any OR-facet is populated. An empty descriptor
// matches the whole catalog.
func (f ProductFilter) HasFacets() bool {
	return len(f.Categories) > 0 ||
		len(f.StrainTypes) > 0 ||
		len(f.SearchTerms) > 0 ||
		f.Brand != "" ||
		f.StrainType != "" ||
		len(f.TerpeneOverlap) > 0
}
