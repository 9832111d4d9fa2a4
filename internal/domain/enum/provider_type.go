package enum

// ProviderType identifies a payment provider integration
type ProviderType string

const (
	ProviderTypeCash        ProviderType = "CASH"
	ProviderTypeStripe      ProviderType = "STRIPE"
	ProviderTypeMpesa       ProviderType = "MPESA"
	ProviderTypePaypal      ProviderType = "PAYPAL"
	ProviderTypeRazorpay    ProviderType = "RAZORPAY"
	ProviderTypeFlutterwave ProviderType = "FLUTTERWAVE"
)

func (p ProviderType) String() string {
	return string(p)
}

// PaymentChannel distinguishes where a configured provider may be used
type PaymentChannel string

const (
	PaymentChannelPOS       PaymentChannel = "POS"
	PaymentChannelEcommerce PaymentChannel = "ECOMMERCE"
)

func (c PaymentChannel) String() string {
	return string(c)
}

// IsValid reports whether the value is a known payment channel
func (c PaymentChannel) IsValid() bool {
	switch c {
	case PaymentChannelPOS, PaymentChannelEcommerce:
		return true
	}
	return false
}
