package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest represents an open session request
type OpenSessionRequest struct {
	TerminalID  uuid.UUID       `json:"terminal_id" binding:"required"`
	OpeningCash decimal.Decimal `json:"opening_cash"`
	Notes       *string         `json:"notes"`
}

// CloseSessionRequest represents a close session request
type CloseSessionRequest struct {
	ClosingCash decimal.Decimal `json:"closing_cash"`
	Notes       *string         `json:"notes"`
}

// SessionFilterRequest represents session filter parameters
type SessionFilterRequest struct {
	TerminalID string `form:"terminal_id"`
	Status     string `form:"status"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// SaleItemRequest represents one cart line in a sale request
type SaleItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Discount  decimal.Decimal `json:"discount"`
}

// SalePaymentRequest represents one tender in a sale request
type SalePaymentRequest struct {
	ProviderType string            `json:"provider_type" binding:"required"`
	Amount       decimal.Decimal   `json:"amount" binding:"required"`
	Reference    *string           `json:"reference"`
	Metadata     map[string]string `json:"metadata"`
}

// CreateSaleRequest represents a sale creation request. Prices are not
// accepted from the client; the server reads them from the catalog.
type CreateSaleRequest struct {
	SessionID    uuid.UUID            `json:"session_id" binding:"required"`
	CustomerName *string              `json:"customer_name"`
	Items        []SaleItemRequest    `json:"items" binding:"required,min=1,dive"`
	Discount     decimal.Decimal      `json:"discount"`
	DiscountType string               `json:"discount_type" binding:"omitempty,oneof=FIXED PERCENTAGE"`
	Payments     []SalePaymentRequest `json:"payments" binding:"required,min=1,dive"`
}

// VoidSaleRequest represents a void sale request. The reason is optional.
type VoidSaleRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=255"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	SessionID string `form:"session_id"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// TerminalRequest represents a create/update terminal request
type TerminalRequest struct {
	Name        string     `json:"name" binding:"required,min=2,max=255"`
	Location    *string    `json:"location"`
	WarehouseID *uuid.UUID `json:"warehouse_id"`
}

// MovementFilterRequest represents stock movement filter parameters
type MovementFilterRequest struct {
	ProductID string `form:"product_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
