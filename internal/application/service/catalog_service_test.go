package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/cache"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/repository"
	infraRepo "github.com/sokoerp/pos-api/internal/infrastructure/repository"
)

// recordingCache wraps Noop semantics with a one-slot store so cache
// interaction can be observed.
type recordingCache struct {
	key      string
	stored   []entity.Product
	sets     int
	hits     int
	populate bool
}

func (c *recordingCache) Get(_ context.Context, key string) ([]entity.Product, bool, error) {
	if c.populate && key == c.key {
		c.hits++
		return c.stored, true, nil
	}
	return nil, false, nil
}

func (c *recordingCache) Set(_ context.Context, key string, products []entity.Product, _ time.Duration) error {
	c.key = key
	c.stored = products
	c.sets++
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, _ string) error {
	c.stored = nil
	c.populate = false
	return nil
}

type fakeStockRepo struct {
	levels []entity.StockLevel
}

func (r *fakeStockRepo) GetLevel(_ context.Context, productID, warehouseID uuid.UUID) (*entity.StockLevel, error) {
	for _, l := range r.levels {
		if l.ProductID == productID && l.WarehouseID == warehouseID {
			copied := l
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeStockRepo) ListLevels(_ context.Context, productID uuid.UUID) ([]entity.StockLevel, error) {
	out := make([]entity.StockLevel, 0)
	for _, l := range r.levels {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListMovements(_ context.Context, _ *repository.MovementFilterParams) ([]entity.StockMovement, int64, error) {
	return nil, 0, nil
}

func TestGetProduct_IncludesStockLevels(t *testing.T) {
	orgID := uuid.New()
	ctx := infraRepo.WithOrg(context.Background(), orgID)

	products := newFakeProductRepo()
	product := products.add(entity.Product{
		OrganizationID: orgID,
		SKU:            "BEV-001",
		Name:           "Bottled Water 500ml",
		SellingPrice:   d("50.00"),
		IsActive:       true,
		IsSellable:     true,
	})
	stock := &fakeStockRepo{levels: []entity.StockLevel{
		{ProductID: product.ID, WarehouseID: uuid.New(), Quantity: 12},
	}}

	svc := NewCatalogService(products, stock, nil, cache.NoopProductCache{})

	got, levels, err := svc.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.SKU != "BEV-001" {
		t.Errorf("sku: got %q, want BEV-001", got.SKU)
	}
	if len(levels) != 1 || levels[0].Quantity != 12 {
		t.Errorf("stock levels: got %+v", levels)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	ctx := infraRepo.WithOrg(context.Background(), uuid.New())
	svc := NewCatalogService(newFakeProductRepo(), &fakeStockRepo{}, nil, cache.NoopProductCache{})

	_, _, err := svc.GetProduct(ctx, uuid.New())
	assertAppErrorCode(t, err, 404)
}

func TestSearchProducts_PopulatesAndHitsCache(t *testing.T) {
	orgID := uuid.New()
	ctx := infraRepo.WithOrg(context.Background(), orgID)

	products := newFakeProductRepo()
	products.add(entity.Product{
		OrganizationID: orgID,
		SKU:            "BEV-001",
		Name:           "Bottled Water 500ml",
		SellingPrice:   d("50.00"),
		IsActive:       true,
		IsSellable:     true,
	})

	rc := &recordingCache{}
	svc := NewCatalogService(products, nil, nil, rc)

	first, err := svc.SearchProducts(ctx, "water", 50)
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 product, got %d", len(first))
	}
	if rc.sets != 1 {
		t.Fatalf("expected search miss to populate the cache, sets=%d", rc.sets)
	}

	rc.populate = true
	second, err := svc.SearchProducts(ctx, "water", 50)
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if rc.hits != 1 {
		t.Errorf("expected a cache hit, hits=%d", rc.hits)
	}
	if len(second) != 1 || second[0].SKU != first[0].SKU {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestSearchProducts_RequiresOrgContext(t *testing.T) {
	svc := NewCatalogService(newFakeProductRepo(), nil, nil, cache.NoopProductCache{})

	_, err := svc.SearchProducts(context.Background(), "water", 50)
	assertAppErrorCode(t, err, 400)
}

func TestNoopProductCache_AlwaysMisses(t *testing.T) {
	c := cache.NoopProductCache{}

	if err := c.Set(context.Background(), "k", []entity.Product{{}}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, hit, err := c.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("noop cache must never hit")
	}
}
