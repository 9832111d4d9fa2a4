package request

import "github.com/shopspring/decimal"

// ProviderConfigRequest carries provider credentials. Never echoed back in
// responses.
type ProviderConfigRequest struct {
	APIKey        string            `json:"api_key"`
	SecretKey     string            `json:"secret_key"`
	WebhookSecret string            `json:"webhook_secret"`
	ShortCode     string            `json:"short_code"`
	Passkey       string            `json:"passkey"`
	SandboxMode   bool              `json:"sandbox_mode"`
	Extra         map[string]string `json:"extra"`
}

// ConfigureProviderRequest represents a configure provider request
type ConfigureProviderRequest struct {
	ProviderType string                `json:"provider_type" binding:"required"`
	DisplayName  string                `json:"display_name" binding:"omitempty,max=255"`
	ForPOS       bool                  `json:"for_pos"`
	ForEcommerce bool                  `json:"for_ecommerce"`
	Config       ProviderConfigRequest `json:"config"`
}

// UpdateProviderRequest represents an update provider request
type UpdateProviderRequest struct {
	DisplayName  *string                `json:"display_name" binding:"omitempty,max=255"`
	ForPOS       *bool                  `json:"for_pos"`
	ForEcommerce *bool                  `json:"for_ecommerce"`
	Config       *ProviderConfigRequest `json:"config"`
}

// ToggleProviderRequest represents an activate/deactivate request
type ToggleProviderRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// CheckoutURLRequest represents a hosted checkout session request
type CheckoutURLRequest struct {
	ProviderType string            `json:"provider_type" binding:"required"`
	Amount       decimal.Decimal   `json:"amount" binding:"required"`
	ReturnURL    string            `json:"return_url" binding:"required,url"`
	Metadata     map[string]string `json:"metadata"`
}
