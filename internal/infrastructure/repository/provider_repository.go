package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	domainRepo "github.com/sokoerp/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a new payment provider repository
func NewProviderRepository(db *gorm.DB) domainRepo.ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) Create(ctx context.Context, provider *entity.PaymentProvider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}

func (r *providerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentProvider, error) {
	var provider entity.PaymentProvider
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&provider, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &provider, err
}

func (r *providerRepository) GetByType(ctx context.Context, providerType enum.ProviderType) (*entity.PaymentProvider, error) {
	var provider entity.PaymentProvider
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&provider, "provider_type = ?", providerType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &provider, err
}

func (r *providerRepository) List(ctx context.Context) ([]entity.PaymentProvider, error) {
	var providers []entity.PaymentProvider
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Order("display_name ASC").
		Find(&providers).Error
	return providers, err
}

func (r *providerRepository) ListForChannel(ctx context.Context, channel enum.PaymentChannel) ([]entity.PaymentProvider, error) {
	var providers []entity.PaymentProvider

	query := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Where("is_active = ?", true)

	switch channel {
	case enum.PaymentChannelPOS:
		query = query.Where("for_pos = ?", true)
	case enum.PaymentChannelEcommerce:
		query = query.Where("for_ecommerce = ?", true)
	}

	err := query.Order("display_name ASC").Find(&providers).Error
	return providers, err
}

func (r *providerRepository) Update(ctx context.Context, provider *entity.PaymentProvider) error {
	return r.db.WithContext(ctx).Save(provider).Error
}

func (r *providerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PaymentProvider{}, "id = ?", id).Error
}
