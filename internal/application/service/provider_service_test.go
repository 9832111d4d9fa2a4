package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	infraRepo "github.com/sokoerp/pos-api/internal/infrastructure/repository"
	"github.com/sokoerp/pos-api/pkg/payment"
)

func newProviderFixture(t *testing.T) (*ProviderService, *fakeProviderRepo, context.Context) {
	t.Helper()

	orgID := uuid.New()
	ctx := infraRepo.WithOrg(context.Background(), orgID)
	providers := newFakeProviderRepo()
	orgs := &fakeOrgRepo{org: &entity.Organization{ID: orgID, Name: "Demo", Slug: "demo", Currency: "KES"}}

	return NewProviderService(providers, orgs), providers, ctx
}

func TestConfigureProvider_Success(t *testing.T) {
	svc, _, ctx := newProviderFixture(t)

	provider, err := svc.ConfigureProvider(ctx, &ConfigureProviderInput{
		ProviderType: enum.ProviderTypeMpesa,
		ForPOS:       true,
		Config:       payment.Config{ShortCode: "174379", Passkey: "pk"},
	})
	if err != nil {
		t.Fatalf("ConfigureProvider: %v", err)
	}

	if provider.DisplayName != "M-Pesa" {
		t.Errorf("display name should default from the catalog, got %q", provider.DisplayName)
	}
	if !provider.IsActive || !provider.ForPOS {
		t.Errorf("expected active POS provider, got %+v", provider)
	}
}

func TestConfigureProvider_DuplicateTypeConflicts(t *testing.T) {
	svc, _, ctx := newProviderFixture(t)

	if _, err := svc.ConfigureProvider(ctx, &ConfigureProviderInput{
		ProviderType: enum.ProviderTypeStripe,
		ForPOS:       true,
	}); err != nil {
		t.Fatalf("first configure: %v", err)
	}

	_, err := svc.ConfigureProvider(ctx, &ConfigureProviderInput{
		ProviderType: enum.ProviderTypeStripe,
		ForPOS:       true,
	})
	assertAppErrorCode(t, err, 409)
}

func TestConfigureProvider_UnknownTypeRejected(t *testing.T) {
	svc, _, ctx := newProviderFixture(t)

	_, err := svc.ConfigureProvider(ctx, &ConfigureProviderInput{
		ProviderType: enum.ProviderType("BARTER"),
	})
	assertAppErrorCode(t, err, 400)
}

func TestConfigureProvider_ChannelCappedByCatalog(t *testing.T) {
	svc, _, ctx := newProviderFixture(t)

	// PayPal has no POS capability; asking for it must not grant it
	provider, err := svc.ConfigureProvider(ctx, &ConfigureProviderInput{
		ProviderType: enum.ProviderTypePaypal,
		ForPOS:       true,
		ForEcommerce: true,
	})
	if err != nil {
		t.Fatalf("ConfigureProvider: %v", err)
	}
	if provider.ForPOS {
		t.Error("PayPal must not be enabled for POS")
	}
	if !provider.ForEcommerce {
		t.Error("PayPal should be enabled for e-commerce")
	}
}

func TestToggleProvider(t *testing.T) {
	svc, _, ctx := newProviderFixture(t)

	provider, err := svc.ConfigureProvider(ctx, &ConfigureProviderInput{
		ProviderType: enum.ProviderTypeMpesa,
		ForPOS:       true,
	})
	if err != nil {
		t.Fatalf("configure: %v", err)
	}

	toggled, err := svc.ToggleProvider(ctx, provider.ID, false)
	if err != nil {
		t.Fatalf("ToggleProvider: %v", err)
	}
	if toggled.IsActive {
		t.Error("provider should be inactive after toggle")
	}

	active, err := svc.ListProvidersForChannel(ctx, enum.PaymentChannelPOS)
	if err != nil {
		t.Fatalf("ListProvidersForChannel: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("inactive providers must not be offered at the till, got %d", len(active))
	}
}

func TestAvailableProviders_ExcludesConfigured(t *testing.T) {
	svc, _, ctx := newProviderFixture(t)

	if _, err := svc.ConfigureProvider(ctx, &ConfigureProviderInput{
		ProviderType: enum.ProviderTypeStripe,
	}); err != nil {
		t.Fatalf("configure: %v", err)
	}

	available, err := svc.AvailableProviders(ctx)
	if err != nil {
		t.Fatalf("AvailableProviders: %v", err)
	}

	if len(available) != len(payment.Catalog())-1 {
		t.Errorf("expected %d available, got %d", len(payment.Catalog())-1, len(available))
	}
	for _, info := range available {
		if info.Type == enum.ProviderTypeStripe {
			t.Error("configured provider still listed as available")
		}
	}
}

func TestHandleWebhook_UnconfiguredProviderNotFound(t *testing.T) {
	svc, _, ctx := newProviderFixture(t)

	_, err := svc.HandleWebhook(ctx, enum.ProviderTypeStripe, []byte(`{}`), "t=1,v1=00")
	assertAppErrorCode(t, err, 404)
}

func TestHandleWebhook_BadSignatureUnauthorized(t *testing.T) {
	svc, providers, ctx := newProviderFixture(t)
	providers.Create(ctx, &entity.PaymentProvider{
		ID:           uuid.New(),
		ProviderType: enum.ProviderTypeStripe,
		DisplayName:  "Stripe",
		IsActive:     true,
		ForEcommerce: true,
		Config:       payment.Config{WebhookSecret: "whsec_test"},
	})

	_, err := svc.HandleWebhook(ctx, enum.ProviderTypeStripe, []byte(`{"type":"x"}`), "t=1,v1=00")
	assertAppErrorCode(t, err, 401)
}

func TestGetCheckoutURL_CashHasNoHostedCheckout(t *testing.T) {
	svc, providers, ctx := newProviderFixture(t)
	providers.Create(ctx, &entity.PaymentProvider{
		ID:           uuid.New(),
		ProviderType: enum.ProviderTypeCash,
		DisplayName:  "Cash",
		IsActive:     true,
		ForPOS:       true,
	})

	_, err := svc.GetCheckoutURL(ctx, enum.ProviderTypeCash, d("100.00"), "https://shop.test/return", nil)
	assertAppErrorCode(t, err, 400)
}

func TestGetCheckoutURL_RejectsNonPositiveAmount(t *testing.T) {
	svc, _, ctx := newProviderFixture(t)

	_, err := svc.GetCheckoutURL(ctx, enum.ProviderTypeStripe, d("0"), "https://shop.test/return", nil)
	assertAppErrorCode(t, err, 400)
}
