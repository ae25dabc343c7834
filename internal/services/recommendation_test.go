package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/internal/data/repos/catalog"
	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/platform/apierr"
	"github.com/leafline/leafline-backend/internal/recs"
	"github.com/leafline/leafline-backend/internal/types"
)

type fakeProductRepo struct {
	products   map[uuid.UUID]*types.Product
	candidates []*types.Product
	lastFilter catalog.ProductFilter
}

func (r *fakeProductRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) FindCandidates(_ context.Context, _ *gorm.DB, filter catalog.ProductFilter, limit int) ([]*types.Product, error) {
	r.lastFilter = filter
	out := r.candidates
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeStockRepo struct {
	ids map[uuid.UUID][]uuid.UUID
}

func (r *fakeStockRepo) ListProductIDs(_ context.Context, _ *gorm.DB, storeID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids[storeID], nil
}

type fakeEventRepo struct {
	events []*types.UserEvent
}

func (r *fakeEventRepo) ListRecent(_ context.Context, _ *gorm.DB, _ uuid.UUID, _ int) ([]*types.UserEvent, error) {
	return r.events, nil
}

func (r *fakeEventRepo) Create(_ context.Context, _ *gorm.DB, events []*types.UserEvent) ([]*types.UserEvent, error) {
	r.events = append(events, r.events...)
	return events, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func newTestService(t *testing.T, products *fakeProductRepo, stock *fakeStockRepo, events *fakeEventRepo) RecommendationService {
	t.Helper()
	if products == nil {
		products = &fakeProductRepo{products: map[uuid.UUID]*types.Product{}}
	}
	if stock == nil {
		stock = &fakeStockRepo{ids: map[uuid.UUID][]uuid.UUID{}}
	}
	if events == nil {
		events = &fakeEventRepo{}
	}
	log := testLogger(t)
	engine := recs.NewEngine(recs.DefaultWeights())
	resolver := recs.NewConditionResolver(nil, recs.NewMemoryConditionCache(), recs.DefaultThresholds(), time.Minute, log)
	return NewRecommendationService(nil, log, products, stock, events, engine, resolver)
}

func catalogProduct(name, brand, strain string, terpenes []string, purchases int) *types.Product {
	return &types.Product{
		ID:               uuid.New(),
		Name:             name,
		Brand:            brand,
		StrainType:       strain,
		Terpenes:         terpenes,
		PurchasesLast30d: purchases,
	}
}

func TestGetForYouAnonymousIsPopularityOnly(t *testing.T) {
	products := &fakeProductRepo{
		candidates: []*types.Product{
			catalogProduct("top", "x", "hybrid", nil, 50),
			catalogProduct("mid", "x", "hybrid", nil, 20),
		},
	}
	svc := newTestService(t, products, nil, nil)

	res, err := svc.GetForYou(context.Background(), nil, nil, 0)
	if err != nil {
		t.Fatalf("GetForYou: %v", err)
	}
	if res.Personalized {
		t.Fatalf("anonymous result marked personalized")
	}
	if len(res.Items) != 2 || res.Items[0].Name != "top" {
		t.Fatalf("unexpected items %v", res.Items)
	}
	if products.lastFilter.OrderBy != catalog.OrderByPopularity {
		t.Fatalf("anonymous fetch must order by popularity")
	}
}

func TestGetForYouPersonalizedPrefersAffineProducts(t *testing.T) {
	brand := "kiva"
	affine := catalogProduct("affine", brand, "indica", []string{"myrcene"}, 0)
	popular := catalogProduct("popular", "other", "sativa", nil, 100)
	products := &fakeProductRepo{candidates: []*types.Product{popular, affine}}
	events := &fakeEventRepo{events: []*types.UserEvent{
		{Brand: &brand, StrainType: strPtr("indica"), Terpenes: []string{"myrcene"}},
		{Brand: &brand},
		{StrainType: strPtr("indica")},
	}}
	svc := newTestService(t, products, nil, events)

	userID := uuid.New()
	res, err := svc.GetForYou(context.Background(), &userID, nil, 12)
	if err != nil {
		t.Fatalf("GetForYou: %v", err)
	}
	if !res.Personalized {
		t.Fatalf("result with events not marked personalized")
	}
	if res.Items[0].Name != "affine" {
		t.Fatalf("top item=%q, want affine", res.Items[0].Name)
	}
}

func TestGetForYouUserWithoutHistoryFallsBackToPopularity(t *testing.T) {
	products := &fakeProductRepo{candidates: []*types.Product{
		catalogProduct("b", "x", "hybrid", nil, 5),
		catalogProduct("a", "x", "hybrid", nil, 50),
	}}
	svc := newTestService(t, products, nil, &fakeEventRepo{})

	userID := uuid.New()
	res, err := svc.GetForYou(context.Background(), &userID, nil, 12)
	if err != nil {
		t.Fatalf("GetForYou: %v", err)
	}
	if res.Personalized {
		t.Fatalf("no-history result marked personalized")
	}
	if res.Items[0].Name != "a" {
		t.Fatalf("top item=%q, want most purchased", res.Items[0].Name)
	}
}

func TestGetRelatedUnknownAnchorYieldsEmpty(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	res, err := svc.GetRelated(context.Background(), uuid.New(), nil, 8)
	if err != nil {
		t.Fatalf("GetRelated returned error for unknown anchor: %v", err)
	}
	if res.Items == nil || len(res.Items) != 0 {
		t.Fatalf("want empty items slice, got %v", res.Items)
	}
}

func TestGetRelatedBuildsOverlapFilter(t *testing.T) {
	anchor := catalogProduct("anchor", "kiva", "indica", []string{"myrcene"}, 0)
	twin := catalogProduct("twin", "kiva", "indica", []string{"myrcene"}, 0)
	products := &fakeProductRepo{
		products:   map[uuid.UUID]*types.Product{anchor.ID: anchor},
		candidates: []*types.Product{twin, anchor},
	}
	svc := newTestService(t, products, nil, nil)

	res, err := svc.GetRelated(context.Background(), anchor.ID, nil, 8)
	if err != nil {
		t.Fatalf("GetRelated: %v", err)
	}
	for _, p := range res.Items {
		if p.ID == anchor.ID {
			t.Fatalf("anchor leaked into related items")
		}
	}
	f := products.lastFilter
	if f.Brand != "kiva" || f.StrainType != "indica" || len(f.TerpeneOverlap) != 1 {
		t.Fatalf("filter facets not populated from anchor: %+v", f)
	}
	if f.ExcludeProductID == nil || *f.ExcludeProductID != anchor.ID {
		t.Fatalf("anchor not excluded at query level: %+v", f)
	}
}

func TestGetByWeatherExplicitCondition(t *testing.T) {
	products := &fakeProductRepo{candidates: []*types.Product{
		catalogProduct("gummies", "kiva", "indica", nil, 10),
	}}
	svc := newTestService(t, products, nil, nil)

	res, err := svc.GetByWeather(context.Background(), WeatherInput{ConditionKey: "Thunderstorm"})
	if err != nil {
		t.Fatalf("GetByWeather: %v", err)
	}
	if res.Condition != recs.ConditionThunderstorm || res.Derived {
		t.Fatalf("condition=%q derived=%v, want thunderstorm/false", res.Condition, res.Derived)
	}
	if res.Description == "" {
		t.Fatalf("missing description")
	}
	found := false
	for _, tag := range res.Tags {
		if tag == "Calming" {
			found = true
		}
	}
	if !found {
		t.Fatalf("tags %v missing Calming", res.Tags)
	}
	if len(products.lastFilter.Categories) == 0 {
		t.Fatalf("criteria facets not applied to candidate filter")
	}
}

func TestGetByWeatherUnsupportedConditionRejects(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	_, err := svc.GetByWeather(context.Background(), WeatherInput{ConditionKey: "not-a-condition"})
	if err == nil {
		t.Fatalf("expected rejection for unsupported condition")
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("want *apierr.Error, got %T", err)
	}
	if ae.Status != 400 || ae.Code != "unsupported_condition" {
		t.Fatalf("unexpected apierr %+v", ae)
	}
	for _, key := range recs.SupportedConditions() {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("error %q does not list valid key %q", err.Error(), key)
		}
	}
}

func TestGetByWeatherDerivedConditionNeverRejects(t *testing.T) {
	products := &fakeProductRepo{candidates: []*types.Product{}}
	svc := newTestService(t, products, nil, nil)

	res, err := svc.GetByWeather(context.Background(), WeatherInput{})
	if err != nil {
		t.Fatalf("derived path must not reject: %v", err)
	}
	if !res.Derived {
		t.Fatalf("result not marked derived")
	}
	if !recs.IsValidWeatherCondition(res.Condition) {
		t.Fatalf("derived condition %q unsupported", res.Condition)
	}
}

func TestStoreScopingRestrictsCandidates(t *testing.T) {
	storeID := uuid.New()
	stocked := uuid.New()
	products := &fakeProductRepo{candidates: []*types.Product{}}
	stock := &fakeStockRepo{ids: map[uuid.UUID][]uuid.UUID{storeID: {stocked}}}
	svc := newTestService(t, products, stock, nil)

	if _, err := svc.GetForYou(context.Background(), nil, &storeID, 12); err != nil {
		t.Fatalf("GetForYou: %v", err)
	}
	if len(products.lastFilter.ProductIDs) != 1 || products.lastFilter.ProductIDs[0] != stocked {
		t.Fatalf("stock scope not applied: %+v", products.lastFilter.ProductIDs)
	}
}

func TestStoreScopingEmptyStockMatchesNothing(t *testing.T) {
	storeID := uuid.New()
	products := &fakeProductRepo{candidates: []*types.Product{}}
	stock := &fakeStockRepo{ids: map[uuid.UUID][]uuid.UUID{}}
	svc := newTestService(t, products, stock, nil)

	if _, err := svc.GetForYou(context.Background(), nil, &storeID, 12); err != nil {
		t.Fatalf("GetForYou: %v", err)
	}
	ids := products.lastFilter.ProductIDs
	if len(ids) != 1 || ids[0] != uuid.Nil {
		t.Fatalf("empty stock must scope to a no-match sentinel, got %v", ids)
	}
}

func strPtr(s string) *string { return &s }
