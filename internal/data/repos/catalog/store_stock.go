package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/types"
)

type StoreStockRepo interface {
	ListProductIDs(ctx context.Context, tx *gorm.DB, storeID uuid.UUID) ([]uuid.UUID, error)
}

type storeStockRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoreStockRepo(db *gorm.DB, baseLog *logger.Logger) StoreStockRepo {
	return &storeStockRepo{db: db, log: baseLog.With("repo", "StoreStockRepo")}
}

func (r *storeStockRepo) ListProductIDs(ctx context.Context, tx *gorm.DB, storeID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if storeID == uuid.Nil {
		return []uuid.UUID{}, nil
	}
	var out []uuid.UUID
	if err := t.WithContext(ctx).
		Model(&types.StoreStock{}).
		Where("store_id = ?", storeID).
		Pluck("product_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
