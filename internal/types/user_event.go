package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventTypeView     = "view"
	EventTypeFavorite = "favorite"
	EventTypePurchase = "purchase"
)

// UserEvent is an immutable behavioral signal. Brand, strain type and
// terpenes are denormalized from the product at record time so affinity
// folding never has to join back into the catalog.
type UserEvent struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_event_user_created" json:"user_id"`
	ProductID  *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Product    *Product       `gorm:"constraint:OnDelete:SET NULL;foreignKey:ProductID;references:ID" json:"product,omitempty"`
	Type       string         `gorm:"column:type;not null;index" json:"type"`
	Brand      *string        `gorm:"column:brand" json:"brand,omitempty"`
	StrainType *string        `gorm:"column:strain_type" json:"strain_type,omitempty"`
	Terpenes   pq.StringArray `gorm:"column:terpenes;type:text[];not null;default:ARRAY[]::text[]" json:"terpenes"`
	Data       datatypes.JSON `gorm:"type:jsonb;column:data" json:"data"`
	CreatedAt  time.Time      `gorm:"not null;default:now();index:idx_user_event_user_created" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserEvent) TableName() string { return "user_event" }
