package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/types"
)

type ProductRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Product, error)
	FindCandidates(ctx context.Context, tx *gorm.DB, filter ProductFilter, limit int) ([]*types.Product, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Product, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out types.Product
	if err := t.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *productRepo) FindCandidates(ctx context.Context, tx *gorm.DB, filter ProductFilter, limit int) ([]*types.Product, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	q := t.WithContext(ctx).Model(&types.Product{})

	if len(filter.ProductIDs) > 0 {
		q = q.Where("id IN ?", filter.ProductIDs)
	}
	if filter.ExcludeProductID != nil {
		q = q.Where("id <> ?", *filter.ExcludeProductID)
	}

	if filter.HasFacets() {
		var (
			clauses []string
			args    []interface{}
		)
		if len(filter.Categories) > 0 {
			clauses = append(clauses, "category IN ?")
			args = append(args, filter.Categories)
		}
		if len(filter.StrainTypes) > 0 {
			clauses = append(clauses, "strain_type IN ?")
			args = append(args, filter.StrainTypes)
		}
		for _, term := range filter.SearchTerms {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			clauses = append(clauses, "(name ILIKE ? OR description ILIKE ?)")
			args = append(args, "%"+term+"%", "%"+term+"%")
		}
		if filter.Brand != "" {
			clauses = append(clauses, "brand = ?")
			args = append(args, filter.Brand)
		}
		if filter.StrainType != "" {
			clauses = append(clauses, "strain_type = ?")
			args = append(args, filter.StrainType)
		}
		if len(filter.TerpeneOverlap) > 0 {
			clauses = append(clauses, "terpenes && ?")
			args = append(args, pq.Array(filter.TerpeneOverlap))
		}
		if len(clauses) > 0 {
			q = q.Where("("+strings.Join(clauses, " OR ")+")", args...)
		}
	}

	switch filter.OrderBy {
	case OrderByPopularity:
		q = q.Order("purchases_last_30d DESC, id ASC")
	default:
		q = q.Order("id ASC")
	}

	var out []*types.Product
	if err := q.Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
