package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Catalog
		&types.Product{},
		&types.Store{},
		&types.StoreStock{},

		// Personalization backbone
		&types.UserEvent{},
	)
}

func EnsureCatalogIndexes(db *gorm.DB) error {
	// uuid-ossp is already enabled in NewPostgresService, but safe to re-run
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}
	// Popularity ordering is the hot path for every candidate fetch.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_product_purchases_30d
		ON product (purchases_last_30d DESC)
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_product_purchases_30d: %w", err)
	}
	// Terpene overlap filter for related-product candidates.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_product_terpenes
		ON product USING GIN (terpenes);
	`).Error; err != nil {
		return fmt.Errorf("create idx_product_terpenes: %w", err)
	}
	// Search-term matching over name/description.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_product_fts
		ON product
		USING GIN (to_tsvector('english', name || ' ' || coalesce(description, '')));
	`).Error; err != nil {
		return fmt.Errorf("create idx_product_fts: %w", err)
	}
	return nil
}

func EnsureEventIndexes(db *gorm.DB) error {
	// Newest-first reads per user.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_user_event_user_created_desc
		ON user_event (user_id, created_at DESC)
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_user_event_user_created_desc: %w", err)
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureCatalogIndexes(s.db); err != nil {
		s.log.Error("Catalog index migration failed", "error", err)
		return err
	}
	if err := EnsureEventIndexes(s.db); err != nil {
		s.log.Error("Event index migration failed", "error", err)
		return err
	}
	return nil
}
