package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/enum"
)

// Config is the opaque credentials blob stored per (organization, provider
// type). Only the provider implementation for that type reads it.
type Config struct {
	APIKey        string            `json:"api_key,omitempty"`
	SecretKey     string            `json:"secret_key,omitempty"`
	WebhookSecret string            `json:"webhook_secret,omitempty"`
	ShortCode     string            `json:"short_code,omitempty"` // M-Pesa business short code
	Passkey       string            `json:"passkey,omitempty"`    // M-Pesa STK passkey
	SandboxMode   bool              `json:"sandbox_mode,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// PaymentResult is the outcome of a payment attempt. Provider failures are
// carried in the result, never raised past the provider boundary.
type PaymentResult struct {
	Success       bool              `json:"success"`
	TransactionID string            `json:"transaction_id,omitempty"`
	Error         string            `json:"error,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// RefundResult is the outcome of a refund attempt
type RefundResult struct {
	Success  bool   `json:"success"`
	RefundID string `json:"refund_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// WebhookResult is the outcome of webhook verification. When Verified is
// false no payload data is exposed.
type WebhookResult struct {
	Verified  bool   `json:"verified"`
	EventType string `json:"event_type,omitempty"`
	Data      []byte `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CheckoutSession is a hosted checkout page created by a provider
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// Provider is the uniform capability contract every payment integration
// implements. A manual tender (cash) succeeds locally with no external call;
// card/online tenders call out to the processor and translate its failures
// into unsuccessful results.
type Provider interface {
	Type() enum.ProviderType

	// ProcessPayment charges the given amount. The amount is a decimal in
	// major currency units; implementations convert to the processor's
	// smallest unit themselves.
	ProcessPayment(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) PaymentResult

	// Refund reverses a prior payment, partially when amount is non-nil.
	Refund(ctx context.Context, transactionID string, amount *decimal.Decimal) RefundResult

	// HandleWebhook verifies the payload signature before trusting its
	// contents. Unverifiable payloads yield Verified=false and no data.
	HandleWebhook(payload []byte, signature string) WebhookResult
}

// CheckoutProvider is the optional hosted-checkout capability. Callers
// type-assert; providers without hosted checkout simply don't implement it.
type CheckoutProvider interface {
	Provider
	GetCheckoutURL(ctx context.Context, amount decimal.Decimal, currency string, returnURL string, metadata map[string]string) (*CheckoutSession, error)
}

// New returns the concrete provider for the given type and configuration.
// An unrecognized type is a configuration error and fails fast.
func New(providerType enum.ProviderType, cfg Config) (Provider, error) {
	switch providerType {
	case enum.ProviderTypeCash:
		return NewCashProvider(), nil
	case enum.ProviderTypeStripe:
		return NewStripeProvider(cfg), nil
	case enum.ProviderTypeMpesa:
		return NewMpesaProvider(cfg), nil
	default:
		return nil, fmt.Errorf("payment provider %s is not implemented", providerType)
	}
}
