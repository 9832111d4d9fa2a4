package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// POSTerminal is a named checkout point. Sessions are opened against a
// terminal, and sales committed under a session deduct stock from the
// terminal's warehouse (falling back to the organization default).
type POSTerminal struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Location       *string        `gorm:"size:255" json:"location,omitempty"`
	Status         string         `gorm:"size:50;default:'ACTIVE'" json:"status"`
	WarehouseID    *uuid.UUID     `gorm:"type:uuid;index" json:"warehouse_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	Warehouse    *Warehouse   `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

// BeforeCreate generates a UUID before creating a new terminal
func (t *POSTerminal) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the POSTerminal model
func (POSTerminal) TableName() string {
	return "pos_terminals"
}
