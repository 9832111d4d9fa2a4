package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	infraRepo "github.com/sokoerp/pos-api/internal/infrastructure/repository"
	"github.com/sokoerp/pos-api/pkg/apperror"
	"github.com/sokoerp/pos-api/pkg/payment"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type saleFixture struct {
	svc       *SaleService
	saleRepo  *fakeSaleRepo
	sessions  *fakeSessionRepo
	products  *fakeProductRepo
	providers *fakeProviderRepo
	ctx       context.Context
	orgID     uuid.UUID
	session   *entity.POSSession
	product   entity.Product
}

// newSaleFixture wires a sale service against in-memory fakes with one open
// session at a terminal bound to a warehouse, and one sellable product with
// 10 units of stock at 100.00 + 16% tax.
func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()

	orgID := uuid.New()
	warehouseID := uuid.New()
	ctx := infraRepo.WithOrg(context.Background(), orgID)

	saleRepo := newFakeSaleRepo()
	sessions := newFakeSessionRepo()
	products := newFakeProductRepo()
	providers := newFakeProviderRepo()
	warehouses := &fakeWarehouseRepo{warehouses: []entity.Warehouse{
		{ID: warehouseID, OrganizationID: orgID, Name: "Main Store", IsDefault: true},
	}}
	orgs := &fakeOrgRepo{org: &entity.Organization{ID: orgID, Name: "Demo", Slug: "demo", Currency: "KES"}}

	session := &entity.POSSession{
		OrganizationID: orgID,
		TerminalID:     uuid.New(),
		CashierID:      uuid.New(),
		CashierName:    "Cynthia Wanjiru",
		OpeningCash:    d("100.00"),
		Status:         enum.SessionStatusOpen,
		Terminal:       entity.POSTerminal{WarehouseID: &warehouseID},
	}
	if err := sessions.Create(ctx, session); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	product := products.add(entity.Product{
		OrganizationID: orgID,
		SKU:            "BEV-001",
		Name:           "Bottled Water 500ml",
		SellingPrice:   d("100.00"),
		TaxRate:        d("16"),
		IsActive:       true,
		IsSellable:     true,
	})
	saleRepo.stock[product.ID] = 10

	return &saleFixture{
		svc:       NewSaleService(saleRepo, sessions, products, warehouses, providers, orgs),
		saleRepo:  saleRepo,
		sessions:  sessions,
		products:  products,
		providers: providers,
		ctx:       ctx,
		orgID:     orgID,
		session:   session,
		product:   product,
	}
}

func assertAppErrorCode(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", want)
	}
	if got := apperror.GetAppError(err).Code; got != want {
		t.Fatalf("expected error code %d, got %d (%v)", want, got, err)
	}
}

func TestCreateSale_CashWithChange(t *testing.T) {
	f := newSaleFixture(t)

	sale, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items: []SaleItemInput{
			{ProductID: f.product.ID, Quantity: 2},
		},
		Payments: []SalePaymentInput{
			{ProviderType: enum.ProviderTypeCash, Amount: d("250.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	// 2x100 = 200 subtotal, 16% tax = 32, total 232
	if !sale.Subtotal.Equal(d("200.00")) {
		t.Errorf("subtotal: got %s, want 200.00", sale.Subtotal)
	}
	if !sale.TaxAmount.Equal(d("32.00")) {
		t.Errorf("tax: got %s, want 32.00", sale.TaxAmount)
	}
	if !sale.TotalAmount.Equal(d("232.00")) {
		t.Errorf("total: got %s, want 232.00", sale.TotalAmount)
	}
	if sale.SaleNumber != "POS-000001" {
		t.Errorf("sale number: got %s, want POS-000001", sale.SaleNumber)
	}
	if sale.Status != enum.SaleStatusCompleted {
		t.Errorf("status: got %s, want COMPLETED", sale.Status)
	}

	if len(sale.Payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(sale.Payments))
	}
	if sale.Payments[0].ChangeGiven == nil || !sale.Payments[0].ChangeGiven.Equal(d("18.00")) {
		t.Errorf("change given: got %v, want 18.00", sale.Payments[0].ChangeGiven)
	}

	if got := f.saleRepo.stock[f.product.ID]; got != 8 {
		t.Errorf("stock after sale: got %d, want 8", got)
	}

	// line snapshot froze the catalog values
	if len(sale.Items) != 1 || sale.Items[0].ProductName != "Bottled Water 500ml" || sale.Items[0].ProductSKU != "BEV-001" {
		t.Errorf("sale item snapshot wrong: %+v", sale.Items)
	}
}

func TestCreateSale_PaymentsMustCoverTotal(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items:     []SaleItemInput{{ProductID: f.product.ID, Quantity: 2}},
		Payments:  []SalePaymentInput{{ProviderType: enum.ProviderTypeCash, Amount: d("200.00")}},
	})

	assertAppErrorCode(t, err, 400)
	if got := f.saleRepo.stock[f.product.ID]; got != 10 {
		t.Errorf("failed sale must not touch stock: got %d, want 10", got)
	}
}

func TestCreateSale_OverpaymentNeedsCashTender(t *testing.T) {
	f := newSaleFixture(t)
	f.providers.Create(f.ctx, &entity.PaymentProvider{
		OrganizationID: f.orgID,
		ProviderType:   enum.ProviderTypeMpesa,
		DisplayName:    "M-Pesa",
		IsActive:       true,
		ForPOS:         true,
	})

	_, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items:     []SaleItemInput{{ProductID: f.product.ID, Quantity: 1}},
		// 116 due, 150 tendered electronically: no drawer to give change from
		Payments: []SalePaymentInput{{ProviderType: enum.ProviderTypeMpesa, Amount: d("150.00")}},
	})

	assertAppErrorCode(t, err, 400)
}

func TestCreateSale_ClosedSessionRejected(t *testing.T) {
	f := newSaleFixture(t)
	f.sessions.sessions[f.session.ID].Status = enum.SessionStatusClosed

	_, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items:     []SaleItemInput{{ProductID: f.product.ID, Quantity: 1}},
		Payments:  []SalePaymentInput{{ProviderType: enum.ProviderTypeCash, Amount: d("116.00")}},
	})

	assertAppErrorCode(t, err, 409)
}

func TestCreateSale_UnsellableProductRejected(t *testing.T) {
	f := newSaleFixture(t)
	discontinued := f.products.add(entity.Product{
		OrganizationID: f.orgID,
		SKU:            "OLD-001",
		Name:           "Discontinued",
		SellingPrice:   d("10.00"),
		IsActive:       true,
		IsSellable:     false,
	})

	_, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items:     []SaleItemInput{{ProductID: discontinued.ID, Quantity: 1}},
		Payments:  []SalePaymentInput{{ProviderType: enum.ProviderTypeCash, Amount: d("10.00")}},
	})

	assertAppErrorCode(t, err, 400)
}

func TestCreateSale_UnknownProduct(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items:     []SaleItemInput{{ProductID: uuid.New(), Quantity: 1}},
		Payments:  []SalePaymentInput{{ProviderType: enum.ProviderTypeCash, Amount: d("10.00")}},
	})

	assertAppErrorCode(t, err, 404)
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	f := newSaleFixture(t)
	f.saleRepo.stock[f.product.ID] = 1

	_, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items:     []SaleItemInput{{ProductID: f.product.ID, Quantity: 2}},
		Payments:  []SalePaymentInput{{ProviderType: enum.ProviderTypeCash, Amount: d("232.00")}},
	})

	assertAppErrorCode(t, err, 409)
	if got := f.saleRepo.stock[f.product.ID]; got != 1 {
		t.Errorf("failed sale must not touch stock: got %d, want 1", got)
	}
}

func TestCreateSale_UnconfiguredElectronicProvider(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items:     []SaleItemInput{{ProductID: f.product.ID, Quantity: 1}},
		Payments:  []SalePaymentInput{{ProviderType: enum.ProviderTypeMpesa, Amount: d("116.00")}},
	})

	assertAppErrorCode(t, err, 400)
}

func TestCreateSale_OrderDiscount(t *testing.T) {
	f := newSaleFixture(t)

	sale, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID:    f.session.ID,
		CashierID:    f.session.CashierID,
		Items:        []SaleItemInput{{ProductID: f.product.ID, Quantity: 1}},
		Discount:     d("10"),
		DiscountType: enum.DiscountTypePercentage,
		// 100 - 10% + 16 tax = 106
		Payments: []SalePaymentInput{{ProviderType: enum.ProviderTypeCash, Amount: d("106.00")}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if !sale.DiscountAmount.Equal(d("10.00")) {
		t.Errorf("discount: got %s, want 10.00", sale.DiscountAmount)
	}
	if !sale.TotalAmount.Equal(d("106.00")) {
		t.Errorf("total: got %s, want 106.00", sale.TotalAmount)
	}
	if sale.DiscountType == nil || *sale.DiscountType != enum.DiscountTypePercentage {
		t.Errorf("discount type: got %v, want PERCENTAGE", sale.DiscountType)
	}
}

func TestVoidSale_RestoresStockOnce(t *testing.T) {
	f := newSaleFixture(t)

	sale, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items:     []SaleItemInput{{ProductID: f.product.ID, Quantity: 3}},
		Payments:  []SalePaymentInput{{ProviderType: enum.ProviderTypeCash, Amount: d("348.00")}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if got := f.saleRepo.stock[f.product.ID]; got != 7 {
		t.Fatalf("stock after sale: got %d, want 7", got)
	}

	voided, err := f.svc.VoidSale(f.ctx, &VoidSaleInput{
		SaleID:   sale.ID,
		VoidedBy: f.session.CashierID,
		Reason:   "wrong items rung up",
	})
	if err != nil {
		t.Fatalf("VoidSale: %v", err)
	}
	if voided.Status != enum.SaleStatusVoided {
		t.Errorf("status: got %s, want VOIDED", voided.Status)
	}
	if voided.VoidReason == nil || *voided.VoidReason != "wrong items rung up" {
		t.Errorf("void reason not recorded: %v", voided.VoidReason)
	}
	if got := f.saleRepo.stock[f.product.ID]; got != 10 {
		t.Errorf("stock after void: got %d, want 10", got)
	}

	// a second void must not restore stock again
	_, err = f.svc.VoidSale(f.ctx, &VoidSaleInput{
		SaleID:   sale.ID,
		VoidedBy: f.session.CashierID,
		Reason:   "double click",
	})
	assertAppErrorCode(t, err, 409)
	if got := f.saleRepo.stock[f.product.ID]; got != 10 {
		t.Errorf("stock after double void: got %d, want 10", got)
	}
}

func TestVoidSale_BlankReasonRecordedAsNoReason(t *testing.T) {
	f := newSaleFixture(t)

	sale, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items:     []SaleItemInput{{ProductID: f.product.ID, Quantity: 1}},
		Payments:  []SalePaymentInput{{ProviderType: enum.ProviderTypeCash, Amount: d("116.00")}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	voided, err := f.svc.VoidSale(f.ctx, &VoidSaleInput{
		SaleID:   sale.ID,
		VoidedBy: f.session.CashierID,
	})
	if err != nil {
		t.Fatalf("void without reason must succeed: %v", err)
	}
	if voided.VoidReason == nil || *voided.VoidReason != "No reason" {
		t.Errorf("void reason: got %v, want \"No reason\"", voided.VoidReason)
	}
	if got := f.saleRepo.stock[f.product.ID]; got != 10 {
		t.Errorf("stock after void: got %d, want 10", got)
	}
}

// scriptedProvider stands in for an external processor so charge and refund
// traffic can be observed.
type scriptedProvider struct {
	providerType enum.ProviderType
	decline      bool
	charges      int
	refunded     []string
}

func (p *scriptedProvider) Type() enum.ProviderType { return p.providerType }

func (p *scriptedProvider) ProcessPayment(_ context.Context, _ decimal.Decimal, _ string, _ map[string]string) payment.PaymentResult {
	if p.decline {
		return payment.PaymentResult{Success: false, Error: "card declined"}
	}
	p.charges++
	return payment.PaymentResult{
		Success:       true,
		TransactionID: fmt.Sprintf("%s-TX-%d", p.providerType, p.charges),
	}
}

func (p *scriptedProvider) Refund(_ context.Context, transactionID string, _ *decimal.Decimal) payment.RefundResult {
	p.refunded = append(p.refunded, transactionID)
	return payment.RefundResult{Success: true}
}

func (p *scriptedProvider) HandleWebhook(_ []byte, _ string) payment.WebhookResult {
	return payment.WebhookResult{Verified: false}
}

func TestCreateSale_AbortedCommitRefundsCapturedTender(t *testing.T) {
	f := newSaleFixture(t)
	f.providers.Create(f.ctx, &entity.PaymentProvider{
		OrganizationID: f.orgID,
		ProviderType:   enum.ProviderTypeMpesa,
		DisplayName:    "M-Pesa",
		IsActive:       true,
		ForPOS:         true,
	})

	mpesa := &scriptedProvider{providerType: enum.ProviderTypeMpesa}
	f.svc.newProvider = func(_ enum.ProviderType, _ payment.Config) (payment.Provider, error) {
		return mpesa, nil
	}

	f.saleRepo.stock[f.product.ID] = 1

	_, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items:     []SaleItemInput{{ProductID: f.product.ID, Quantity: 2}},
		Payments:  []SalePaymentInput{{ProviderType: enum.ProviderTypeMpesa, Amount: d("232.00")}},
	})

	assertAppErrorCode(t, err, 409)
	if mpesa.charges != 1 {
		t.Fatalf("expected the tender to be charged once, got %d", mpesa.charges)
	}
	if len(mpesa.refunded) != 1 || mpesa.refunded[0] != "MPESA-TX-1" {
		t.Errorf("captured tender must be refunded after rollback: %v", mpesa.refunded)
	}
	if got := f.saleRepo.stock[f.product.ID]; got != 1 {
		t.Errorf("failed sale must not touch stock: got %d, want 1", got)
	}
}

func TestCreateSale_DeclinedTenderRefundsEarlierCharge(t *testing.T) {
	f := newSaleFixture(t)
	for _, pt := range []enum.ProviderType{enum.ProviderTypeMpesa, enum.ProviderTypeStripe} {
		f.providers.Create(f.ctx, &entity.PaymentProvider{
			OrganizationID: f.orgID,
			ProviderType:   pt,
			DisplayName:    string(pt),
			IsActive:       true,
			ForPOS:         true,
		})
	}

	mpesa := &scriptedProvider{providerType: enum.ProviderTypeMpesa}
	stripe := &scriptedProvider{providerType: enum.ProviderTypeStripe, decline: true}
	f.svc.newProvider = func(pt enum.ProviderType, _ payment.Config) (payment.Provider, error) {
		if pt == enum.ProviderTypeStripe {
			return stripe, nil
		}
		return mpesa, nil
	}

	// 2x100 + 16% tax = 232, split across two electronic tenders
	_, err := f.svc.CreateSale(f.ctx, &CreateSaleInput{
		SessionID: f.session.ID,
		CashierID: f.session.CashierID,
		Items:     []SaleItemInput{{ProductID: f.product.ID, Quantity: 2}},
		Payments: []SalePaymentInput{
			{ProviderType: enum.ProviderTypeMpesa, Amount: d("100.00")},
			{ProviderType: enum.ProviderTypeStripe, Amount: d("132.00")},
		},
	})

	assertAppErrorCode(t, err, 402)
	if len(mpesa.refunded) != 1 || mpesa.refunded[0] != "MPESA-TX-1" {
		t.Errorf("earlier charge must be refunded after the decline: %v", mpesa.refunded)
	}
	if len(stripe.refunded) != 0 {
		t.Errorf("declined tender has nothing to refund: %v", stripe.refunded)
	}
	if got := f.saleRepo.stock[f.product.ID]; got != 10 {
		t.Errorf("failed sale must not touch stock: got %d, want 10", got)
	}
}
