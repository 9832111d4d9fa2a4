package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"github.com/sokoerp/pos-api/pkg/payment"
	"gorm.io/gorm"
)

// PaymentProvider is an organization's configuration for one provider type.
// The config blob holds credentials and is opaque to everything except the
// pkg/payment implementation for that type. Provider type is unique per
// organization.
type PaymentProvider struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_providers_org_type" json:"organization_id"`
	ProviderType   enum.ProviderType `gorm:"size:50;not null;uniqueIndex:idx_providers_org_type" json:"provider_type"`
	DisplayName    string            `gorm:"size:255;not null" json:"display_name"`
	IsActive       bool              `gorm:"default:true" json:"is_active"`
	ForPOS         bool              `gorm:"default:false" json:"for_pos"`
	ForEcommerce   bool              `gorm:"default:false" json:"for_ecommerce"`
	Config         payment.Config    `gorm:"type:jsonb;serializer:json" json:"-"` // credentials, never serialized out
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment provider
func (p *PaymentProvider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentProvider model
func (PaymentProvider) TableName() string {
	return "payment_providers"
}
