package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/enum"
)

// CashProvider handles manual cash tenders. It never calls out anywhere:
// payment and refund are recorded offline by the cashier, so both always
// succeed with a locally synthesized reference.
type CashProvider struct{}

// NewCashProvider creates a cash provider
func NewCashProvider() *CashProvider {
	return &CashProvider{}
}

func (p *CashProvider) Type() enum.ProviderType {
	return enum.ProviderTypeCash
}

func (p *CashProvider) ProcessPayment(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) PaymentResult {
	md := map[string]string{
		"amount":   amount.StringFixed(2),
		"currency": currency,
		"method":   "cash",
	}
	for k, v := range metadata {
		md[k] = v
	}
	return PaymentResult{
		Success:       true,
		TransactionID: fmt.Sprintf("CASH-%d", time.Now().UnixMilli()),
		Metadata:      md,
	}
}

func (p *CashProvider) Refund(ctx context.Context, transactionID string, amount *decimal.Decimal) RefundResult {
	return RefundResult{
		Success:  true,
		RefundID: fmt.Sprintf("CASH-REFUND-%d", time.Now().UnixMilli()),
	}
}

func (p *CashProvider) HandleWebhook(payload []byte, signature string) WebhookResult {
	return WebhookResult{
		Verified: false,
		Error:    "cash payments do not support webhooks",
	}
}
