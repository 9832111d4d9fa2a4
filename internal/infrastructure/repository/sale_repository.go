package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	domainRepo "github.com/sokoerp/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when a sale would drive a stock level
// negative. The whole sale transaction rolls back.
var ErrInsufficientStock = errors.New("insufficient stock")

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new POS sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

const (
	saleNumberPrefix     = "POS"
	movementNumberPrefix = "SM"
	saleReferenceType    = "pos_sale"
)

// CreateWithInventory commits the sale, its items and payments, the stock
// movements and the guarded stock decrements in one transaction. The sale
// number and movement numbers come from the sequence counter inside the same
// transaction, so an aborted sale never leaves a gap a later sale reuses.
func (r *saleRepository) CreateWithInventory(ctx context.Context, sale *entity.POSSale, warehouseID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		saleNumber, err := nextNumber(tx, sale.OrganizationID, entity.CounterScopeSale, saleNumberPrefix)
		if err != nil {
			return err
		}
		sale.SaleNumber = saleNumber

		// Nested items and payments are created with the sale row.
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		refType := saleReferenceType
		for i := range sale.Items {
			item := &sale.Items[i]

			result := tx.Model(&entity.StockLevel{}).
				Where("product_id = ? AND warehouse_id = ? AND quantity >= ?",
					item.ProductID, warehouseID, item.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductSKU)
			}

			movementNumber, err := nextNumber(tx, sale.OrganizationID, entity.CounterScopeStockMovement, movementNumberPrefix)
			if err != nil {
				return err
			}

			movement := entity.StockMovement{
				OrganizationID: sale.OrganizationID,
				MovementNumber: movementNumber,
				ProductID:      item.ProductID,
				WarehouseID:    warehouseID,
				Type:           enum.MovementTypeOut,
				Reason:         enum.MovementReasonSale,
				Quantity:       -item.Quantity,
				ReferenceType:  &refType,
				ReferenceID:    &sale.ID,
				CreatedBy:      sale.CreatedBy,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// VoidWithInventory flips the sale COMPLETED -> VOIDED and restores stock.
// The status flip is a compare-and-swap; a sale already voided yields no
// update and the method reports false without touching inventory.
func (r *saleRepository) VoidWithInventory(ctx context.Context, sale *entity.POSSale, warehouseID uuid.UUID, voidedBy uuid.UUID) (bool, error) {
	voided := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.POSSale{}).
			Where("id = ? AND status = ?", sale.ID, enum.SaleStatusCompleted).
			Updates(map[string]interface{}{
				"status":      enum.SaleStatusVoided,
				"void_reason": sale.VoidReason,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		voided = true

		refType := saleReferenceType
		for i := range sale.Items {
			item := &sale.Items[i]

			if err := tx.Model(&entity.StockLevel{}).
				Where("product_id = ? AND warehouse_id = ?", item.ProductID, warehouseID).
				Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error; err != nil {
				return err
			}

			movementNumber, err := nextNumber(tx, sale.OrganizationID, entity.CounterScopeStockMovement, movementNumberPrefix)
			if err != nil {
				return err
			}

			movement := entity.StockMovement{
				OrganizationID: sale.OrganizationID,
				MovementNumber: movementNumber,
				ProductID:      item.ProductID,
				WarehouseID:    warehouseID,
				Type:           enum.MovementTypeIn,
				Reason:         enum.MovementReasonReturn,
				Quantity:       item.Quantity,
				ReferenceType:  &refType,
				ReferenceID:    &sale.ID,
				CreatedBy:      voidedBy,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}

		return nil
	})

	return voided, err
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.POSSale, error) {
	var sale entity.POSSale
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.POSSale, error) {
	var sale entity.POSSale
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Preload("Items").
		Preload("Payments").
		Preload("Session").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.POSSale, int64, error) {
	var sales []entity.POSSale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.POSSale{}).Scopes(OrgScope(ctx))

	if params.SessionID != nil {
		query = query.Where("session_id = ?", *params.SessionID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
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
		Preload("Items").
		Preload("Payments").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}
