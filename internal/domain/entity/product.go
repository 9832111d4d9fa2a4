package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Product represents a sellable catalog item. Price and tax rate are read at
// sale time and frozen onto the sale line, so later catalog edits never
// rewrite committed history.
type Product struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_products_org_sku" json:"organization_id"`
	SKU            string          `gorm:"size:100;not null;uniqueIndex:idx_products_org_sku" json:"sku"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Barcode        *string         `gorm:"size:100;index" json:"barcode,omitempty"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"selling_price"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"tax_rate"` // percentage
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	IsSellable     bool            `gorm:"default:true" json:"is_sellable"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	StockLevels  []StockLevel `gorm:"foreignKey:ProductID" json:"stock_levels,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Warehouse represents a physical stock location
type Warehouse struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Location       *string        `gorm:"size:255" json:"location,omitempty"`
	IsDefault      bool           `gorm:"default:false" json:"is_default"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new warehouse
func (w *Warehouse) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Warehouse model
func (Warehouse) TableName() string {
	return "warehouses"
}

// StockLevel is the quantity on hand for one product at one warehouse.
// It is only ever mutated through guarded update expressions
// (quantity = quantity - ? ... WHERE quantity >= ?), never read-then-write.
type StockLevel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse" json:"product_id"`
	WarehouseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse" json:"warehouse_id"`
	Quantity       int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
	Warehouse Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

// BeforeCreate generates a UUID before creating a new stock level
func (s *StockLevel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockLevel model
func (StockLevel) TableName() string {
	return "stock_levels"
}

// StockMovement is an append-only ledger entry for every stock change.
// Rows are never updated or deleted; a void creates an inverse entry.
type StockMovement struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID           `gorm:"type:uuid;not null;index;uniqueIndex:idx_movements_org_number" json:"organization_id"`
	MovementNumber string              `gorm:"size:50;not null;uniqueIndex:idx_movements_org_number" json:"movement_number"`
	ProductID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"product_id"`
	WarehouseID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	Type           enum.MovementType   `gorm:"size:10;not null" json:"type"`
	Reason         enum.MovementReason `gorm:"size:20;not null" json:"reason"`
	Quantity       int                 `gorm:"not null" json:"quantity"` // signed: negative = out
	ReferenceType  *string             `gorm:"size:50" json:"reference_type,omitempty"`
	ReferenceID    *uuid.UUID          `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	Notes          *string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy      uuid.UUID           `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt      time.Time           `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
