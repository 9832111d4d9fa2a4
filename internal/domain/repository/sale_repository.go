package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"github.com/sokoerp/pos-api/pkg/pagination"
)

// SaleRepository defines the interface for POS sale data operations.
//
// Create and Void are composite: the sale row, its items and payments, the
// stock movements and the stock level updates commit or roll back as one
// database transaction. Sale and movement numbers are minted inside that
// same transaction from the per-organization sequence counter.
type SaleRepository interface {
	// CreateWithInventory persists the sale with nested items/payments,
	// assigns its sale number, appends one OUT/SALE movement per item and
	// decrements stock at the given warehouse with a quantity >= ? guard.
	// Insufficient stock fails the whole transaction.
	CreateWithInventory(ctx context.Context, sale *entity.POSSale, warehouseID uuid.UUID) error
	// VoidWithInventory flips COMPLETED -> VOIDED (compare-and-swap; a
	// second void reports no update), restores stock and appends IN/RETURN
	// movements. Items and payments are left untouched for audit.
	VoidWithInventory(ctx context.Context, sale *entity.POSSale, warehouseID uuid.UUID, voidedBy uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.POSSale, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.POSSale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.POSSale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	SessionID  *uuid.UUID
	Status     *enum.SaleStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
