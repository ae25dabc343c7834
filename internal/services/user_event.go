package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/internal/data/repos"
	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/types"
)

var allowedEventTypes = map[string]struct{}{
	types.EventTypeView:     {},
	types.EventTypeFavorite: {},
	types.EventTypePurchase: {},
}

type EventInput struct {
	Type      string         `json:"type"`
	ProductID string         `json:"product_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

type EventService interface {
	Ingest(ctx context.Context, tx *gorm.DB, userID uuid.UUID, inputs []EventInput) (int, error)
}

type eventService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.UserEventRepo
	products repos.ProductRepo
}

func NewEventService(db *gorm.DB, baseLog *logger.Logger, repo repos.UserEventRepo, products repos.ProductRepo) EventService {
	return &eventService{
		db:       db,
		log:      baseLog.With("service", "EventService"),
		repo:     repo,
		products: products,
	}
}

// Ingest records behavioral events, denormalizing brand/strain/terpenes from
// the referenced product so affinity folding stays a single-table read.
func (s *eventService) Ingest(ctx context.Context, tx *gorm.DB, userID uuid.UUID, inputs []EventInput) (int, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("missing user id")
	}
	if len(inputs) == 0 {
		return 0, nil
	}
	if len(inputs) > 200 {
		return 0, fmt.Errorf("too many events (max 200)")
	}

	now := time.Now().UTC()
	rows := make([]*types.UserEvent, 0, len(inputs))
	for i := range inputs {
		in := inputs[i]

		typ := strings.TrimSpace(strings.ToLower(in.Type))
		if _, ok := allowedEventTypes[typ]; !ok {
			return 0, fmt.Errorf("invalid event type at index %d", i)
		}

		row := &types.UserEvent{
			ID:        uuid.New(),
			UserID:    userID,
			Type:      typ,
			CreatedAt: now,
		}

		if v := strings.TrimSpace(in.ProductID); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				return 0, fmt.Errorf("invalid product id at index %d", i)
			}
			product, err := s.products.GetByID(ctx, tx, id)
			if err != nil {
				return 0, err
			}
			if product != nil {
				row.ProductID = &product.ID
				if product.Brand != "" {
					brand := product.Brand
					row.Brand = &brand
				}
				if product.StrainType != "" {
					strain := product.StrainType
					row.StrainType = &strain
				}
				row.Terpenes = append(row.Terpenes, product.Terpenes...)
			}
		}

		if len(in.Data) > 0 {
			b, _ := json.Marshal(in.Data)
			row.Data = datatypes.JSON(b)
		}

		rows = append(rows, row)
	}

	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	created, err := s.repo.Create(ctx, transaction, rows)
	if err != nil {
		s.log.Warn("event ingest failed", "error", err)
		return 0, err
	}
	return len(created), nil
}
