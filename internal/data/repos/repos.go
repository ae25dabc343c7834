package repos

import (
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/internal/data/repos/catalog"
	"github.com/leafline/leafline-backend/internal/data/repos/events"
	"github.com/leafline/leafline-backend/internal/pkg/logger"
)

type ProductRepo = catalog.ProductRepo
type StoreStockRepo = catalog.StoreStockRepo
type ProductFilter = catalog.ProductFilter

type UserEventRepo = events.UserEventRepo

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return catalog.NewProductRepo(db, baseLog)
}

func NewStoreStockRepo(db *gorm.DB, baseLog *logger.Logger) StoreStockRepo {
	return catalog.NewStoreStockRepo(db, baseLog)
}

func NewUserEventRepo(db *gorm.DB, baseLog *logger.Logger) UserEventRepo {
	return events.NewUserEventRepo(db, baseLog)
}
