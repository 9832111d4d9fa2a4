package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"github.com/sokoerp/pos-api/internal/domain/repository"
	infraRepo "github.com/sokoerp/pos-api/internal/infrastructure/repository"
)

// In-memory repository fakes. They honor the same contracts as the GORM
// implementations (nil for missing rows, compare-and-swap semantics on
// status flips, guarded stock decrements) so service tests exercise the
// real decision paths.

type fakeSessionRepo struct {
	sessions      map[uuid.UUID]*entity.POSSession
	cashCollected decimal.Decimal
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.POSSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.POSSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.Status == "" {
		session.Status = enum.SessionStatusOpen
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.POSSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) GetActiveByCashier(_ context.Context, cashierID uuid.UUID) (*entity.POSSession, error) {
	for _, s := range r.sessions {
		if s.CashierID == cashierID && s.Status == enum.SessionStatusOpen {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) List(_ context.Context, _ *repository.SessionFilterParams) ([]entity.POSSession, int64, error) {
	out := make([]entity.POSSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSessionRepo) SumCashCollected(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return r.cashCollected, nil
}

func (r *fakeSessionRepo) Close(_ context.Context, session *entity.POSSession) (bool, error) {
	stored, ok := r.sessions[session.ID]
	if !ok || stored.Status != enum.SessionStatusOpen {
		return false, nil
	}
	stored.Status = enum.SessionStatusClosed
	stored.ClosingCash = session.ClosingCash
	stored.ExpectedCash = session.ExpectedCash
	stored.CashDifference = session.CashDifference
	stored.ClosedAt = session.ClosedAt
	stored.Notes = session.Notes
	return true, nil
}

type fakeSaleRepo struct {
	sales map[uuid.UUID]*entity.POSSale
	// stock is keyed by product ID; the fake tracks one warehouse only
	stock   map[uuid.UUID]int
	nextSeq int64
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		sales: make(map[uuid.UUID]*entity.POSSale),
		stock: make(map[uuid.UUID]int),
	}
}

func (r *fakeSaleRepo) CreateWithInventory(_ context.Context, sale *entity.POSSale, _ uuid.UUID) error {
	for _, item := range sale.Items {
		if r.stock[item.ProductID] < item.Quantity {
			return fmt.Errorf("%w: product %s", infraRepo.ErrInsufficientStock, item.ProductSKU)
		}
	}
	for _, item := range sale.Items {
		r.stock[item.ProductID] -= item.Quantity
	}

	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	r.nextSeq++
	sale.SaleNumber = fmt.Sprintf("POS-%06d", r.nextSeq)

	copied := *sale
	r.sales[sale.ID] = &copied
	return nil
}

func (r *fakeSaleRepo) VoidWithInventory(_ context.Context, sale *entity.POSSale, _ uuid.UUID, _ uuid.UUID) (bool, error) {
	stored, ok := r.sales[sale.ID]
	if !ok || stored.Status != enum.SaleStatusCompleted {
		return false, nil
	}
	stored.Status = enum.SaleStatusVoided
	stored.VoidReason = sale.VoidReason
	for _, item := range stored.Items {
		r.stock[item.ProductID] += item.Quantity
	}
	return true, nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.POSSale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSaleRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.POSSale, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.POSSale, int64, error) {
	out := make([]entity.POSSale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]entity.Product)}
}

func (r *fakeProductRepo) add(p entity.Product) entity.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) SearchSellable(_ context.Context, _ string, _ int) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.IsActive && p.IsSellable {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeWarehouseRepo struct {
	warehouses []entity.Warehouse
}

func (r *fakeWarehouseRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.ID == id {
			copied := w
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) GetDefault(_ context.Context) (*entity.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.IsDefault {
			copied := w
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) List(_ context.Context) ([]entity.Warehouse, error) {
	return append([]entity.Warehouse(nil), r.warehouses...), nil
}

type fakeProviderRepo struct {
	providers map[enum.ProviderType]*entity.PaymentProvider
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{providers: make(map[enum.ProviderType]*entity.PaymentProvider)}
}

func (r *fakeProviderRepo) Create(_ context.Context, provider *entity.PaymentProvider) error {
	if provider.ID == uuid.Nil {
		provider.ID = uuid.New()
	}
	copied := *provider
	r.providers[provider.ProviderType] = &copied
	return nil
}

func (r *fakeProviderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.PaymentProvider, error) {
	for _, p := range r.providers {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProviderRepo) GetByType(_ context.Context, providerType enum.ProviderType) (*entity.PaymentProvider, error) {
	p, ok := r.providers[providerType]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProviderRepo) List(_ context.Context) ([]entity.PaymentProvider, error) {
	out := make([]entity.PaymentProvider, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProviderRepo) ListForChannel(_ context.Context, channel enum.PaymentChannel) ([]entity.PaymentProvider, error) {
	out := make([]entity.PaymentProvider, 0)
	for _, p := range r.providers {
		if !p.IsActive {
			continue
		}
		if channel == enum.PaymentChannelPOS && p.ForPOS {
			out = append(out, *p)
		}
		if channel == enum.PaymentChannelEcommerce && p.ForEcommerce {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProviderRepo) Update(_ context.Context, provider *entity.PaymentProvider) error {
	copied := *provider
	r.providers[provider.ProviderType] = &copied
	return nil
}

func (r *fakeProviderRepo) Delete(_ context.Context, id uuid.UUID) error {
	for pt, p := range r.providers {
		if p.ID == id {
			delete(r.providers, pt)
			return nil
		}
	}
	return nil
}

type fakeOrgRepo struct {
	org *entity.Organization
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Organization, error) {
	if r.org != nil && r.org.ID == id {
		copied := *r.org
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeOrgRepo) GetBySlug(_ context.Context, slug string) (*entity.Organization, error) {
	if r.org != nil && r.org.Slug == slug {
		copied := *r.org
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeOrgRepo) Create(_ context.Context, org *entity.Organization) error {
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	copied := *org
	r.org = &copied
	return nil
}

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]entity.Employee
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.Employee, error) {
	e, ok := r.employees[userID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

type fakeTerminalRepo struct {
	terminals   map[uuid.UUID]entity.POSTerminal
	hasSessions bool
}

func newFakeTerminalRepo() *fakeTerminalRepo {
	return &fakeTerminalRepo{terminals: make(map[uuid.UUID]entity.POSTerminal)}
}

func (r *fakeTerminalRepo) Create(_ context.Context, terminal *entity.POSTerminal) error {
	if terminal.ID == uuid.Nil {
		terminal.ID = uuid.New()
	}
	r.terminals[terminal.ID] = *terminal
	return nil
}

func (r *fakeTerminalRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.POSTerminal, error) {
	t, ok := r.terminals[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTerminalRepo) Update(_ context.Context, terminal *entity.POSTerminal) error {
	r.terminals[terminal.ID] = *terminal
	return nil
}

func (r *fakeTerminalRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.terminals, id)
	return nil
}

func (r *fakeTerminalRepo) List(_ context.Context) ([]entity.POSTerminal, error) {
	out := make([]entity.POSTerminal, 0, len(r.terminals))
	for _, t := range r.terminals {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTerminalRepo) HasSessions(_ context.Context, _ uuid.UUID) (bool, error) {
	return r.hasSessions, nil
}
