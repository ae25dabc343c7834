package app

import (
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/internal/data/repos"
	"github.com/leafline/leafline-backend/internal/pkg/logger"
)

type Repos struct {
	Product    repos.ProductRepo
	StoreStock repos.StoreStockRepo
	UserEvent  repos.UserEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Product:    repos.NewProductRepo(db, log),
		StoreStock: repos.NewStoreStockRepo(db, log),
		UserEvent:  repos.NewUserEventRepo(db, log),
	}
}
