package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// OrgIDKey is the context key for the authenticated organization ID
	OrgIDKey ctxKey = "organization_id"
)

// OrgScope returns a GORM scope that filters by organization.
// This should be applied to all queries for organization-scoped entities.
func OrgScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		orgID, ok := ctx.Value(OrgIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if org context missing
			// This prevents accidental cross-tenant data access
			return db.Where("1 = 0")
		}
		return db.Where("organization_id = ?", orgID)
	}
}

// WithOrg adds the organization ID to context
func WithOrg(ctx context.Context, orgID uuid.UUID) context.Context {
	return context.WithValue(ctx, OrgIDKey, orgID)
}

// GetOrgID extracts the organization ID from context
func GetOrgID(ctx context.Context) (uuid.UUID, bool) {
	orgID, ok := ctx.Value(OrgIDKey).(uuid.UUID)
	return orgID, ok
}
