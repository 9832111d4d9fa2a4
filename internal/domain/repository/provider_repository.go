package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
)

// ProviderRepository defines the interface for payment provider configuration
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.PaymentProvider) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentProvider, error)
	// GetByType resolves the organization's configuration for one provider
	// type, used when processing a payment or a webhook.
	GetByType(ctx context.Context, providerType enum.ProviderType) (*entity.PaymentProvider, error)
	List(ctx context.Context) ([]entity.PaymentProvider, error)
	// ListForChannel returns active providers enabled for POS or e-commerce.
	ListForChannel(ctx context.Context, channel enum.PaymentChannel) ([]entity.PaymentProvider, error)
	Update(ctx context.Context, provider *entity.PaymentProvider) error
	Delete(ctx context.Context, id uuid.UUID) error
}
