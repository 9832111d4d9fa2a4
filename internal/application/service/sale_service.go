package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/application/pricing"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"github.com/sokoerp/pos-api/internal/domain/repository"
	infraRepo "github.com/sokoerp/pos-api/internal/infrastructure/repository"
	"github.com/sokoerp/pos-api/pkg/apperror"
	"github.com/sokoerp/pos-api/pkg/pagination"
	"github.com/sokoerp/pos-api/pkg/payment"
)

// SaleService handles POS checkout and voiding
type SaleService struct {
	saleRepo      repository.SaleRepository
	sessionRepo   repository.SessionRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	providerRepo  repository.ProviderRepository
	orgRepo       repository.OrganizationRepository

	newProvider func(enum.ProviderType, payment.Config) (payment.Provider, error)
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	sessionRepo repository.SessionRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	providerRepo repository.ProviderRepository,
	orgRepo repository.OrganizationRepository,
) *SaleService {
	return &SaleService{
		saleRepo:      saleRepo,
		sessionRepo:   sessionRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		providerRepo:  providerRepo,
		orgRepo:       orgRepo,
		newProvider:   payment.New,
	}
}

// SaleItemInput represents one cart line
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Discount  decimal.Decimal
}

// SalePaymentInput represents one tender
type SalePaymentInput struct {
	ProviderType enum.ProviderType
	Amount       decimal.Decimal
	Reference    *string
	Metadata     map[string]string
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	SessionID    uuid.UUID
	CashierID    uuid.UUID
	CustomerName *string
	Items        []SaleItemInput
	Discount     decimal.Decimal
	DiscountType enum.DiscountType
	Payments     []SalePaymentInput
}

// CreateSale commits a sale. Prices and tax rates come from the catalog, not
// the request, so a tampered client cannot change what gets charged.
// Electronic tenders are charged through their provider before the database
// transaction; the sale, its lines, payments and stock effect then commit
// atomically.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.POSSale, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Organization context required")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one item")
	}
	if len(input.Payments) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one payment")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if item.Discount.IsNegative() {
			return nil, apperror.NewBadRequestError("Item discount cannot be negative")
		}
	}

	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	if !session.IsOpen() {
		return nil, apperror.NewConflictError("Session is closed")
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	cart := pricing.Cart{
		Lines:        make([]pricing.Line, 0, len(input.Items)),
		Discount:     input.Discount,
		DiscountType: input.DiscountType,
	}

	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !product.IsActive || !product.IsSellable {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Product %s is not sellable", product.SKU))
		}

		cart.Lines = append(cart.Lines, pricing.Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.SellingPrice,
			TaxRate:   product.TaxRate,
			Discount:  item.Discount,
		})
	}

	totals := pricing.Compute(cart)

	paid := decimal.Zero
	for _, p := range input.Payments {
		if !p.Amount.IsPositive() {
			return nil, apperror.NewBadRequestError("Payment amount must be positive")
		}
		paid = paid.Add(p.Amount)
	}
	if paid.LessThan(totals.Total) {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Payments (%s) do not cover sale total (%s)", paid.StringFixed(2), totals.Total.StringFixed(2)))
	}

	// Overpayment becomes change, which only a cash drawer can hand back.
	change := paid.Sub(totals.Total)
	cashIdx := -1
	for i, p := range input.Payments {
		if p.ProviderType == enum.ProviderTypeCash {
			cashIdx = i
			break
		}
	}
	if change.IsPositive() && cashIdx < 0 {
		return nil, apperror.NewBadRequestError("Overpayment requires a cash payment to give change")
	}

	currency := "KES"
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org != nil && org.Currency != "" {
		currency = org.Currency
	}

	salePayments := make([]entity.SalePayment, 0, len(input.Payments))
	captured := make([]capturedTender, 0)
	for i, p := range input.Payments {
		sp := entity.SalePayment{
			ProviderType: p.ProviderType,
			Method:       string(p.ProviderType),
			Amount:       p.Amount,
			Reference:    p.Reference,
		}

		if i == cashIdx && change.IsPositive() {
			c := change
			sp.ChangeGiven = &c
		}

		if p.ProviderType != enum.ProviderTypeCash {
			result, provider, err := s.processPayment(ctx, p, currency)
			if err != nil {
				s.refundCaptured(ctx, captured)
				return nil, err
			}
			captured = append(captured, capturedTender{
				provider:      provider,
				transactionID: result.TransactionID,
				amount:        p.Amount,
			})
			ref := result.TransactionID
			sp.Reference = &ref
		}

		salePayments = append(salePayments, sp)
	}

	warehouseID, err := s.resolveWarehouse(ctx, session)
	if err != nil {
		return nil, err
	}

	items := make([]entity.SaleItem, 0, len(input.Items))
	for i, line := range cart.Lines {
		product := productMap[line.ProductID]
		items = append(items, entity.SaleItem{
			ProductID:   line.ProductID,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Discount:    line.Discount,
			Total:       totals.LineTotals[i],
		})
	}

	var discountType *enum.DiscountType
	if !input.Discount.IsZero() {
		dt := input.DiscountType
		discountType = &dt
	}

	sale := &entity.POSSale{
		OrganizationID: orgID,
		SessionID:      session.ID,
		CustomerName:   input.CustomerName,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		DiscountType:   discountType,
		TaxAmount:      totals.TaxAmount,
		TotalAmount:    totals.Total,
		Status:         enum.SaleStatusCompleted,
		CreatedBy:      input.CashierID,
		Items:          items,
		Payments:       salePayments,
	}

	if err := s.saleRepo.CreateWithInventory(ctx, sale, warehouseID); err != nil {
		s.refundCaptured(ctx, captured)
		if errors.Is(err, infraRepo.ErrInsufficientStock) {
			return nil, apperror.NewConflictError(err.Error())
		}
		return nil, err
	}

	return s.saleRepo.GetWithDetails(ctx, sale.ID)
}

// capturedTender is an electronic charge taken before the sale committed. If
// the commit never happens, the charge is reversed.
type capturedTender struct {
	provider      payment.Provider
	transactionID string
	amount        decimal.Decimal
}

// processPayment charges one electronic tender through its configured
// provider. A declined charge surfaces as 402.
func (s *SaleService) processPayment(ctx context.Context, p SalePaymentInput, currency string) (*payment.PaymentResult, payment.Provider, error) {
	providerCfg, err := s.providerRepo.GetByType(ctx, p.ProviderType)
	if err != nil {
		return nil, nil, err
	}
	if providerCfg == nil || !providerCfg.IsActive {
		return nil, nil, apperror.NewBadRequestError(fmt.Sprintf("Payment provider %s is not configured", p.ProviderType))
	}
	if !providerCfg.ForPOS {
		return nil, nil, apperror.NewBadRequestError(fmt.Sprintf("Payment provider %s is not enabled for POS", p.ProviderType))
	}

	provider, err := s.newProvider(providerCfg.ProviderType, providerCfg.Config)
	if err != nil {
		return nil, nil, apperror.NewBadRequestError(err.Error())
	}

	result := provider.ProcessPayment(ctx, p.Amount, currency, p.Metadata)
	if !result.Success {
		return nil, nil, apperror.NewAppError(http.StatusPaymentRequired,
			fmt.Sprintf("Payment failed: %s", result.Error))
	}

	return &result, provider, nil
}

// refundCaptured reverses charges captured for a sale that will never commit.
// Best effort: a reversal the processor rejects is logged for manual
// follow-up, since the money already moved.
func (s *SaleService) refundCaptured(ctx context.Context, captured []capturedTender) {
	for _, c := range captured {
		amount := c.amount
		result := c.provider.Refund(ctx, c.transactionID, &amount)
		if !result.Success {
			log.Printf("refund of %s transaction %s (%s) after aborted sale failed: %s",
				c.provider.Type(), c.transactionID, amount.StringFixed(2), result.Error)
		}
	}
}

// VoidSaleInput represents the void sale input
type VoidSaleInput struct {
	SaleID   uuid.UUID
	VoidedBy uuid.UUID
	Reason   string
}

// VoidSale reverses a committed sale's inventory effect and marks it VOIDED.
// The sale row, items and payments remain for audit. The reason is optional;
// a blank one is recorded as "No reason".
func (s *SaleService) VoidSale(ctx context.Context, input *VoidSaleInput) (*entity.POSSale, error) {
	reason := input.Reason
	if reason == "" {
		reason = "No reason"
	}

	sale, err := s.saleRepo.GetWithDetails(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status != enum.SaleStatusCompleted {
		return nil, apperror.NewConflictError("Sale is already voided")
	}

	session, err := s.sessionRepo.GetByID(ctx, sale.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}

	warehouseID, err := s.resolveWarehouse(ctx, session)
	if err != nil {
		return nil, err
	}

	sale.VoidReason = &reason
	voided, err := s.saleRepo.VoidWithInventory(ctx, sale, warehouseID, input.VoidedBy)
	if err != nil {
		return nil, err
	}
	if !voided {
		return nil, apperror.NewConflictError("Sale is already voided")
	}

	return s.saleRepo.GetWithDetails(ctx, sale.ID)
}

// GetSale retrieves a sale with items and payments
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.POSSale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.POSSale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// resolveWarehouse picks where stock moves for a session's sales: the
// terminal's warehouse when assigned, the organization default otherwise.
func (s *SaleService) resolveWarehouse(ctx context.Context, session *entity.POSSession) (uuid.UUID, error) {
	if session.Terminal.WarehouseID != nil {
		return *session.Terminal.WarehouseID, nil
	}

	warehouse, err := s.warehouseRepo.GetDefault(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if warehouse == nil {
		return uuid.Nil, apperror.NewBadRequestError("No warehouse configured for this terminal")
	}
	return warehouse.ID, nil
}
