package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/cache"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/repository"
	infraRepo "github.com/sokoerp/pos-api/internal/infrastructure/repository"
	"github.com/sokoerp/pos-api/pkg/apperror"
	"github.com/sokoerp/pos-api/pkg/pagination"
)

const productCacheTTL = 60 * time.Second

// CatalogService serves the POS product picker and inventory reads. Lookups
// are cached briefly per organization; the terminal UI hammers the search
// endpoint while a cashier types.
type CatalogService struct {
	productRepo   repository.ProductRepository
	stockRepo     repository.StockRepository
	warehouseRepo repository.WarehouseRepository
	productCache  cache.ProductCache
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
	productCache cache.ProductCache,
) *CatalogService {
	return &CatalogService{
		productRepo:   productRepo,
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		productCache:  productCache,
	}
}

// SearchProducts finds active, sellable products for the POS picker
func (s *CatalogService) SearchProducts(ctx context.Context, search string, limit int) ([]entity.Product, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Organization context required")
	}

	key := fmt.Sprintf("pos:products:%s:%s:%d", orgID, search, limit)
	if cached, hit, err := s.productCache.Get(ctx, key); err == nil && hit {
		return cached, nil
	}

	products, err := s.productRepo.SearchSellable(ctx, search, limit)
	if err != nil {
		return nil, err
	}

	// Cache failures are not search failures.
	_ = s.productCache.Set(ctx, key, products, productCacheTTL)

	return products, nil
}

// GetProduct retrieves a product with its stock levels
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, []entity.StockLevel, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, apperror.NewNotFoundError("Product")
	}

	levels, err := s.stockRepo.ListLevels(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return product, levels, nil
}

// ListWarehouses lists the organization's warehouses
func (s *CatalogService) ListWarehouses(ctx context.Context) ([]entity.Warehouse, error) {
	return s.warehouseRepo.List(ctx)
}

// ListMovements lists the stock movement ledger with filtering
func (s *CatalogService) ListMovements(ctx context.Context, params *repository.MovementFilterParams) (*pagination.PaginatedResult[entity.StockMovement], error) {
	movements, total, err := s.stockRepo.ListMovements(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(movements, pag), nil
}
