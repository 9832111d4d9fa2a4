package payment

import "github.com/sokoerp/pos-api/internal/domain/enum"

// ProviderInfo is catalog metadata about a provider type, used by the
// settings UI to list what can be configured and on which channel.
type ProviderInfo struct {
	Type         enum.ProviderType `json:"type"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	ForPOS       bool              `json:"for_pos"`
	ForEcommerce bool              `json:"for_ecommerce"`
}

var catalog = []ProviderInfo{
	{Type: enum.ProviderTypeStripe, Name: "Stripe", Description: "Credit/Debit Cards", ForPOS: true, ForEcommerce: true},
	{Type: enum.ProviderTypeMpesa, Name: "M-Pesa", Description: "Mobile Money (Kenya)", ForPOS: true, ForEcommerce: true},
	{Type: enum.ProviderTypePaypal, Name: "PayPal", Description: "PayPal Account", ForPOS: false, ForEcommerce: true},
	{Type: enum.ProviderTypeRazorpay, Name: "Razorpay", Description: "UPI, Cards (India)", ForPOS: true, ForEcommerce: true},
	{Type: enum.ProviderTypeFlutterwave, Name: "Flutterwave", Description: "Africa-wide Payments", ForPOS: true, ForEcommerce: true},
	{Type: enum.ProviderTypeCash, Name: "Cash", Description: "Manual Cash Payment", ForPOS: true, ForEcommerce: false},
}

// Catalog returns metadata for every provider type the system knows about
func Catalog() []ProviderInfo {
	out := make([]ProviderInfo, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogInfo returns the metadata for one provider type
func CatalogInfo(t enum.ProviderType) (ProviderInfo, bool) {
	for _, info := range catalog {
		if info.Type == t {
			return info, true
		}
	}
	return ProviderInfo{}, false
}
