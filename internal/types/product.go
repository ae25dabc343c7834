package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Product category slugs as stored in the catalog.
const (
	CategoryFlower       = "flower"
	CategoryPreRolls     = "pre-rolls"
	CategoryVaporizers   = "vaporizers"
	CategoryEdibles      = "edibles"
	CategoryBeverages    = "beverages"
	CategoryConcentrates = "concentrates"
	CategoryTinctures    = "tinctures"
	CategoryTopicals     = "topicals"
	CategoryCBD          = "cbd"
	CategoryAccessories  = "accessories"
)

const (
	StrainSativa = "sativa"
	StrainIndica = "indica"
	StrainHybrid = "hybrid"
	StrainCBD    = "cbd"
	StrainNone   = "none"
)

type Product struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name             string         `gorm:"column:name;not null;index" json:"name"`
	Description      string         `gorm:"column:description" json:"description"`
	Brand            string         `gorm:"column:brand;not null;index" json:"brand"`
	Category         string         `gorm:"column:category;not null;index" json:"category"`
	StrainType       string         `gorm:"column:strain_type;not null;default:'none';index" json:"strain_type"`
	Terpenes         pq.StringArray `gorm:"column:terpenes;type:text[];not null;default:ARRAY[]::text[]" json:"terpenes"`
	PriceCents       int            `gorm:"column:price_cents;not null" json:"price_cents"`
	PurchasesLast30d int            `gorm:"column:purchases_last_30d;not null;default:0" json:"purchases_last_30d"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string { return "product" }
