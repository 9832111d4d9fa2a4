package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	domainRepo "github.com/sokoerp/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) SearchSellable(ctx context.Context, search string, limit int) ([]entity.Product, error) {
	var products []entity.Product

	query := r.db.WithContext(ctx).Model(&entity.Product{}).
		Scopes(OrgScope(ctx)).
		Where("is_active = ? AND is_sellable = ?", true, true)

	if search != "" {
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR barcode = ?",
			"%"+search+"%", "%"+search+"%", search)
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	err := query.Limit(limit).
		Order("name ASC").
		Find(&products).Error

	return products, err
}

type warehouseRepository struct {
	db *gorm.DB
}

// NewWarehouseRepository creates a new warehouse repository
func NewWarehouseRepository(db *gorm.DB) domainRepo.WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	var warehouse entity.Warehouse
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&warehouse, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &warehouse, err
}

func (r *warehouseRepository) GetDefault(ctx context.Context) (*entity.Warehouse, error) {
	var warehouse entity.Warehouse
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&warehouse, "is_default = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &warehouse, err
}

func (r *warehouseRepository) List(ctx context.Context) ([]entity.Warehouse, error) {
	var warehouses []entity.Warehouse
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Order("name ASC").
		Find(&warehouses).Error
	return warehouses, err
}

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) GetLevel(ctx context.Context, productID, warehouseID uuid.UUID) (*entity.StockLevel, error) {
	var level entity.StockLevel
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&level, "product_id = ? AND warehouse_id = ?", productID, warehouseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &level, err
}

func (r *stockRepository) ListLevels(ctx context.Context, productID uuid.UUID) ([]entity.StockLevel, error) {
	var levels []entity.StockLevel
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Preload("Warehouse").
		Where("product_id = ?", productID).
		Find(&levels).Error
	return levels, err
}

func (r *stockRepository) ListMovements(ctx context.Context, params *domainRepo.MovementFilterParams) ([]entity.StockMovement, int64, error) {
	var movements []entity.StockMovement
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockMovement{}).Scopes(OrgScope(ctx))

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&movements).Error

	return movements, total, err
}
