package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// POSSale is one committed POS transaction. Items and payments are written
// in the same database transaction as the sale row and the stock effect, so
// a sale either exists fully adjusted or not at all.
//
// A VOIDED sale keeps its items and payments for audit; only the inventory
// effect is reversed.
type POSSale struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_sales_org_number" json:"organization_id"`
	SessionID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"session_id"`
	SaleNumber     string            `gorm:"size:50;not null;uniqueIndex:idx_sales_org_number" json:"sale_number"`
	CustomerName   *string           `gorm:"size:255" json:"customer_name,omitempty"`
	Subtotal       decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountAmount decimal.Decimal   `gorm:"type:decimal(12,2);default:0" json:"discount_amount"`
	DiscountType   *enum.DiscountType `gorm:"size:20" json:"discount_type,omitempty"`
	TaxAmount      decimal.Decimal   `gorm:"type:decimal(12,2);default:0" json:"tax_amount"`
	TotalAmount    decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status         enum.SaleStatus   `gorm:"size:20;not null;default:'COMPLETED'" json:"status"`
	VoidReason     *string           `gorm:"size:255" json:"void_reason,omitempty"`
	CreatedBy      uuid.UUID         `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Relationships
	Organization Organization  `gorm:"foreignKey:OrganizationID" json:"-"`
	Session      POSSession    `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	Items        []SaleItem    `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments     []SalePayment `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *POSSale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the POSSale model
func (POSSale) TableName() string {
	return "pos_sales"
}

// SaleItem is one line of a sale. Product name and SKU are denormalized at
// sale time so catalog edits never rewrite history. Immutable after create.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	ProductSKU  string          `gorm:"size:100" json:"product_sku"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Discount    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Sale    POSSale `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// SalePayment is one tender applied to a sale
type SalePayment struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	SaleID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProviderType enum.ProviderType `gorm:"size:50;not null" json:"provider_type"`
	Method       string            `gorm:"size:100" json:"method"`
	Amount       decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reference    *string           `gorm:"size:255" json:"reference,omitempty"` // external transaction id
	ChangeGiven  *decimal.Decimal  `gorm:"type:decimal(12,2)" json:"change_given,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`

	// Relationships
	Sale POSSale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale payment
func (p *SalePayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalePayment model
func (SalePayment) TableName() string {
	return "sale_payments"
}
