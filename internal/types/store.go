package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	City      string         `gorm:"column:city" json:"city"`
	Lat       *float64       `gorm:"column:lat" json:"lat,omitempty"`
	Lon       *float64       `gorm:"column:lon" json:"lon,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Store) TableName() string { return "store" }

// StoreStock marks a product as carried by a store. Presence of a row is the
// only signal; quantities live in the inventory system, not here.
type StoreStock struct {
	StoreID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"store_id"`
	Store     *Store    `gorm:"constraint:OnDelete:CASCADE;foreignKey:StoreID;references:ID" json:"store,omitempty"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (StoreStock) TableName() string { return "store_stock" }
