package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/internal/data/repos"
	"github.com/leafline/leafline-backend/internal/data/repos/catalog"
	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/platform/apierr"
	"github.com/leafline/leafline-backend/internal/recs"
	"github.com/leafline/leafline-backend/internal/types"
)

const (
	defaultForYouLimit  = 12
	defaultRelatedLimit = 8
	defaultWeatherLimit = 24

	forYouCandidatePool  = 500
	forYouEventWindow    = 500
	relatedCandidatePool = 200
)

type ForYouResult struct {
	Items        []*types.Product `json:"items"`
	Personalized bool             `json:"personalized"`
}

type RelatedResult struct {
	Items []*types.Product `json:"items"`
}

type WeatherInput struct {
	ConditionKey string
	Observation  *recs.WeatherObservation
	Coordinates  *recs.Coordinates
	StoreID      *uuid.UUID
	Limit        int
}

type WeatherResult struct {
	Items       []*types.Product `json:"items"`
	Condition   string           `json:"condition"`
	Derived     bool             `json:"derived"`
	Tags        []string         `json:"tags"`
	Description string           `json:"description"`
}

type RecommendationService interface {
	GetForYou(ctx context.Context, userID *uuid.UUID, storeID *uuid.UUID, limit int) (*ForYouResult, error)
	GetRelated(ctx context.Context, productID uuid.UUID, storeID *uuid.UUID, limit int) (*RelatedResult, error)
	GetByWeather(ctx context.Context, input WeatherInput) (*WeatherResult, error)
}

type recommendationService struct {
	db         *gorm.DB
	log        *logger.Logger
	products   repos.ProductRepo
	storeStock repos.StoreStockRepo
	events     repos.UserEventRepo
	engine     *recs.Engine
	resolver   *recs.ConditionResolver
}

func NewRecommendationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	products repos.ProductRepo,
	storeStock repos.StoreStockRepo,
	events repos.UserEventRepo,
	engine *recs.Engine,
	resolver *recs.ConditionResolver,
) RecommendationService {
	return &recommendationService{
		db:         db,
		log:        baseLog.With("service", "RecommendationService"),
		products:   products,
		storeStock: storeStock,
		events:     events,
		engine:     engine,
		resolver:   resolver,
	}
}

func (s *recommendationService) GetForYou(ctx context.Context, userID *uuid.UUID, storeID *uuid.UUID, limit int) (*ForYouResult, error) {
	if limit <= 0 {
		limit = defaultForYouLimit
	}

	stockIDs, err := s.stockScope(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if userID == nil || *userID == uuid.Nil {
		items, err := s.products.FindCandidates(ctx, nil, catalog.ProductFilter{
			ProductIDs: stockIDs,
			OrderBy:    catalog.OrderByPopularity,
		}, limit)
		if err != nil {
			return nil, err
		}
		return &ForYouResult{Items: items, Personalized: false}, nil
	}

	var (
		userEvents []*types.UserEvent
		candidates []*types.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userEvents, err = s.events.ListRecent(gctx, nil, *userID, forYouEventWindow)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = s.products.FindCandidates(gctx, nil, catalog.ProductFilter{
			ProductIDs: stockIDs,
			OrderBy:    catalog.OrderByPopularity,
		}, forYouCandidatePool)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hist := recs.BuildAffinityHistogram(userEvents)
	items := s.engine.ForYou(hist, candidates, limit)
	return &ForYouResult{Items: items, Personalized: !hist.IsEmpty()}, nil
}

func (s *recommendationService) GetRelated(ctx context.Context, productID uuid.UUID, storeID *uuid.UUID, limit int) (*RelatedResult, error) {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	anchor, err := s.products.GetByID(ctx, nil, productID)
	if err != nil {
		return nil, err
	}
	if anchor == nil {
		// A deleted or unknown product simply has no relations.
		return &RelatedResult{Items: []*types.Product{}}, nil
	}

	stockIDs, err := s.stockScope(ctx, storeID)
	if err != nil {
		return nil, err
	}

	anchorID := anchor.ID
	candidates, err := s.products.FindCandidates(ctx, nil, catalog.ProductFilter{
		Brand:            anchor.Brand,
		StrainType:       anchor.StrainType,
		TerpeneOverlap:   anchor.Terpenes,
		ExcludeProductID: &anchorID,
		ProductIDs:       stockIDs,
		OrderBy:          catalog.OrderByPopularity,
	}, relatedCandidatePool)
	if err != nil {
		return nil, err
	}

	items := s.engine.RelatedTo(anchor, candidates, limit)
	return &RelatedResult{Items: items}, nil
}

func (s *recommendationService) GetByWeather(ctx context.Context, input WeatherInput) (*WeatherResult, error) {
	if input.Limit <= 0 {
		input.Limit = defaultWeatherLimit
	}

	condition := recs.NormalizeConditionKey(input.ConditionKey)
	derived := false
	if condition != "" {
		if !recs.IsValidWeatherCondition(condition) {
			return nil, apierr.New(400, "unsupported_condition",
				fmt.Errorf("unsupported weather condition %q; valid conditions: %s",
					input.ConditionKey, strings.Join(recs.SupportedConditions(), ", ")))
		}
	} else {
		condition = s.resolver.Resolve(ctx, input.Observation, input.Coordinates)
		derived = true
		if !recs.IsValidWeatherCondition(condition) {
			condition = recs.ConditionClear
		}
	}

	criteria, ok := recs.LookupCriteria(condition)
	if !ok {
		// A table miss means "apply no weather filter", not a failure.
		criteria = recs.WeatherCriteria{Condition: condition}
	}

	stockIDs, err := s.stockScope(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}

	items, err := s.products.FindCandidates(ctx, nil, catalog.ProductFilter{
		Categories:  criteria.Categories,
		StrainTypes: criteria.StrainTypes,
		SearchTerms: criteria.SearchTerms,
		ProductIDs:  stockIDs,
		OrderBy:     catalog.OrderByPopularity,
	}, input.Limit)
	if err != nil {
		return nil, err
	}

	return &WeatherResult{
		Items:       items,
		Condition:   condition,
		Derived:     derived,
		Tags:        criteria.Tags,
		Description: criteria.Description,
	}, nil
}

// stockScope translates an optional store ID into the product-ID restriction
// used by candidate queries. A store with nothing on the shelf yields a
// sentinel that matches no products; products are never fabricated for it.
func (s *recommendationService) stockScope(ctx context.Context, storeID *uuid.UUID) ([]uuid.UUID, error) {
	if storeID == nil || *storeID == uuid.Nil {
		return nil, nil
	}
	ids, err := s.storeStock.ListProductIDs(ctx, nil, *storeID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []uuid.UUID{uuid.Nil}, nil
	}
	return ids, nil
}
