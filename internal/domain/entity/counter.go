package entity

import (
	"github.com/google/uuid"
)

// SequenceCounter backs the human-readable document numbers (sale numbers,
// stock movement numbers). It is advanced with a single atomic upsert inside
// the caller's transaction, so concurrent commits can never mint the same
// number. One row per (organization, scope).
type SequenceCounter struct {
	OrganizationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"organization_id"`
	Scope          string    `gorm:"size:50;primaryKey" json:"scope"`
	Value          int64     `gorm:"not null;default:0" json:"value"`
}

// Counter scopes
const (
	CounterScopeSale          = "pos_sale"
	CounterScopeStockMovement = "stock_movement"
)

// TableName returns the table name for the SequenceCounter model
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
