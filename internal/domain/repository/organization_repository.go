package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
)

// OrganizationRepository defines the interface for organization data operations
type OrganizationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Organization, error)
	Create(ctx context.Context, org *entity.Organization) error
}

// EmployeeRepository is the directory lookup used to label a session's
// cashier at open time.
type EmployeeRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Employee, error)
}
