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
	"github.com/sokoerp/pos-api/pkg/apperror"
	"github.com/sokoerp/pos-api/pkg/payment"
)

// ProviderService manages payment provider configurations and routes
// provider-facing operations (hosted checkout, webhooks) to the right
// implementation.
type ProviderService struct {
	providerRepo repository.ProviderRepository
	orgRepo      repository.OrganizationRepository
}

// NewProviderService creates a new provider service
func NewProviderService(providerRepo repository.ProviderRepository, orgRepo repository.OrganizationRepository) *ProviderService {
	return &ProviderService{
		providerRepo: providerRepo,
		orgRepo:      orgRepo,
	}
}

// ConfigureProviderInput represents the configure provider input
type ConfigureProviderInput struct {
	ProviderType enum.ProviderType
	DisplayName  string
	ForPOS       bool
	ForEcommerce bool
	Config       payment.Config
}

// ConfigureProvider registers a provider type for the organization. Each
// type can be configured once; a second configuration is a conflict, not an
// overwrite.
func (s *ProviderService) ConfigureProvider(ctx context.Context, input *ConfigureProviderInput) (*entity.PaymentProvider, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Organization context required")
	}

	info, known := payment.CatalogInfo(input.ProviderType)
	if !known {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown payment provider type: %s", input.ProviderType))
	}

	existing, err := s.providerRepo.GetByType(ctx, input.ProviderType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("Provider %s is already configured", input.ProviderType))
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = info.Name
	}

	provider := &entity.PaymentProvider{
		OrganizationID: orgID,
		ProviderType:   input.ProviderType,
		DisplayName:    displayName,
		IsActive:       true,
		ForPOS:         input.ForPOS && info.ForPOS,
		ForEcommerce:   input.ForEcommerce && info.ForEcommerce,
		Config:         input.Config,
	}

	if err := s.providerRepo.Create(ctx, provider); err != nil {
		return nil, err
	}

	return provider, nil
}

// UpdateProviderInput represents the update provider input
type UpdateProviderInput struct {
	DisplayName  *string
	ForPOS       *bool
	ForEcommerce *bool
	Config       *payment.Config
}

// UpdateProvider updates an existing provider configuration
func (s *ProviderService) UpdateProvider(ctx context.Context, id uuid.UUID, input *UpdateProviderInput) (*entity.PaymentProvider, error) {
	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperror.NewNotFoundError("Payment provider")
	}

	info, _ := payment.CatalogInfo(provider.ProviderType)

	if input.DisplayName != nil && *input.DisplayName != "" {
		provider.DisplayName = *input.DisplayName
	}
	if input.ForPOS != nil {
		provider.ForPOS = *input.ForPOS && info.ForPOS
	}
	if input.ForEcommerce != nil {
		provider.ForEcommerce = *input.ForEcommerce && info.ForEcommerce
	}
	if input.Config != nil {
		provider.Config = *input.Config
	}

	if err := s.providerRepo.Update(ctx, provider); err != nil {
		return nil, err
	}

	return provider, nil
}

// ToggleProvider flips a provider's active flag
func (s *ProviderService) ToggleProvider(ctx context.Context, id uuid.UUID, active bool) (*entity.PaymentProvider, error) {
	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperror.NewNotFoundError("Payment provider")
	}

	provider.IsActive = active
	if err := s.providerRepo.Update(ctx, provider); err != nil {
		return nil, err
	}

	return provider, nil
}

// DeleteProvider removes a provider configuration
func (s *ProviderService) DeleteProvider(ctx context.Context, id uuid.UUID) error {
	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if provider == nil {
		return apperror.NewNotFoundError("Payment provider")
	}

	return s.providerRepo.Delete(ctx, id)
}

// ListProviders lists every provider configured for the organization
func (s *ProviderService) ListProviders(ctx context.Context) ([]entity.PaymentProvider, error) {
	return s.providerRepo.List(ctx)
}

// ListProvidersForChannel lists active providers enabled for a channel
func (s *ProviderService) ListProvidersForChannel(ctx context.Context, channel enum.PaymentChannel) ([]entity.PaymentProvider, error) {
	return s.providerRepo.ListForChannel(ctx, channel)
}

// AvailableProviders returns catalog entries not yet configured, for the
// settings UI's add-provider picker.
func (s *ProviderService) AvailableProviders(ctx context.Context) ([]payment.ProviderInfo, error) {
	configured, err := s.providerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	taken := make(map[enum.ProviderType]bool, len(configured))
	for _, p := range configured {
		taken[p.ProviderType] = true
	}

	available := make([]payment.ProviderInfo, 0)
	for _, info := range payment.Catalog() {
		if !taken[info.Type] {
			available = append(available, info)
		}
	}
	return available, nil
}

// GetCheckoutURL creates a hosted checkout session for providers that
// support one.
func (s *ProviderService) GetCheckoutURL(ctx context.Context, providerType enum.ProviderType, amount decimal.Decimal, returnURL string, metadata map[string]string) (*payment.CheckoutSession, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Organization context required")
	}

	if !amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}

	cfg, err := s.providerRepo.GetByType(ctx, providerType)
	if err != nil {
		return nil, err
	}
	if cfg == nil || !cfg.IsActive {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Payment provider %s is not configured", providerType))
	}

	provider, err := payment.New(cfg.ProviderType, cfg.Config)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	checkout, ok := provider.(payment.CheckoutProvider)
	if !ok {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Provider %s does not support hosted checkout", providerType))
	}

	currency := "KES"
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org != nil && org.Currency != "" {
		currency = org.Currency
	}

	return checkout.GetCheckoutURL(ctx, amount, currency, returnURL, metadata)
}

// HandleWebhook verifies and parses an inbound provider webhook. Callers get
// the verified event back; persisting any effect is their concern.
func (s *ProviderService) HandleWebhook(ctx context.Context, providerType enum.ProviderType, payload []byte, signature string) (*payment.WebhookResult, error) {
	cfg, err := s.providerRepo.GetByType(ctx, providerType)
	if err != nil {
		return nil, err
	}
	if cfg == nil || !cfg.IsActive {
		return nil, apperror.NewNotFoundError("Payment provider")
	}

	provider, err := payment.New(cfg.ProviderType, cfg.Config)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	result := provider.HandleWebhook(payload, signature)
	if !result.Verified {
		return nil, apperror.NewAppError(401, "Webhook verification failed: "+result.Error)
	}

	return &result, nil
}
