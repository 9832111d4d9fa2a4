package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/pkg/pagination"
)

// ProductRepository defines catalog reads the POS needs. Catalog management
// itself lives outside this service.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	// SearchSellable returns active, sellable products matched on name, SKU
	// or barcode, for the POS product picker.
	SearchSellable(ctx context.Context, search string, limit int) ([]entity.Product, error)
}

// WarehouseRepository resolves stock locations. Terminals without an
// assigned warehouse fall back to the organization default.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error)
	GetDefault(ctx context.Context) (*entity.Warehouse, error)
	List(ctx context.Context) ([]entity.Warehouse, error)
}

// StockRepository exposes inventory reads. All stock writes happen inside
// the sale repository's transactions.
type StockRepository interface {
	GetLevel(ctx context.Context, productID, warehouseID uuid.UUID) (*entity.StockLevel, error)
	ListLevels(ctx context.Context, productID uuid.UUID) ([]entity.StockLevel, error)
	ListMovements(ctx context.Context, params *MovementFilterParams) ([]entity.StockMovement, int64, error)
}

// MovementFilterParams contains filtering parameters for stock movement queries
type MovementFilterParams struct {
	Pagination *pagination.PaginationParams
	ProductID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
