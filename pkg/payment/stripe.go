package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/enum"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// webhookTolerance bounds how old a signed webhook timestamp may be before
// it is treated as a replay.
const webhookTolerance = 5 * time.Minute

// StripeProvider charges cards through the Stripe REST API. Amounts are
// converted to the smallest currency unit before hitting the wire, and API
// failures come back as unsuccessful results rather than errors.
type StripeProvider struct {
	cfg     Config
	apiBase string
	client  *http.Client
	now     func() time.Time
}

// NewStripeProvider creates a Stripe provider from stored configuration
func NewStripeProvider(cfg Config) *StripeProvider {
	return &StripeProvider{
		cfg:     cfg,
		apiBase: stripeAPIBase,
		client:  &http.Client{Timeout: 15 * time.Second},
		now:     time.Now,
	}
}

func (p *StripeProvider) Type() enum.ProviderType {
	return enum.ProviderTypeStripe
}

// smallestUnit converts a decimal major-unit amount to integer minor units
// (e.g. 22.00 KES -> 2200).
func smallestUnit(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *StripeProvider) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiBase+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr stripeError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("stripe: request failed with status %d", resp.StatusCode)
	}

	return json.Unmarshal(body, out)
}

func (p *StripeProvider) ProcessPayment(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) PaymentResult {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(smallestUnit(amount), 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	var intent struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		ClientSecret string `json:"client_secret"`
	}
	if err := p.post(ctx, "/payment_intents", form, &intent); err != nil {
		return PaymentResult{Success: false, Error: err.Error()}
	}

	return PaymentResult{
		Success:       true,
		TransactionID: intent.ID,
		Metadata: map[string]string{
			"client_secret": intent.ClientSecret,
			"status":        intent.Status,
		},
	}
}

func (p *StripeProvider) Refund(ctx context.Context, transactionID string, amount *decimal.Decimal) RefundResult {
	form := url.Values{}
	form.Set("payment_intent", transactionID)
	if amount != nil {
		form.Set("amount", strconv.FormatInt(smallestUnit(*amount), 10))
	}

	var refund struct {
		ID string `json:"id"`
	}
	if err := p.post(ctx, "/refunds", form, &refund); err != nil {
		return RefundResult{Success: false, Error: err.Error()}
	}

	return RefundResult{Success: true, RefundID: refund.ID}
}

// HandleWebhook verifies Stripe's v1 signature scheme: the header carries
// "t=<unix>,v1=<hex hmac>" and the signed payload is "<t>.<body>" keyed with
// the configured webhook secret.
func (p *StripeProvider) HandleWebhook(payload []byte, signature string) WebhookResult {
	timestamp, expected, err := parseStripeSignature(signature)
	if err != nil {
		return WebhookResult{Verified: false, Error: err.Error()}
	}

	if p.now().Sub(time.Unix(timestamp, 0)) > webhookTolerance {
		return WebhookResult{Verified: false, Error: "webhook timestamp outside tolerance"}
	}

	mac := hmac.New(sha256.New, []byte(p.cfg.WebhookSecret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	if !hmac.Equal(mac.Sum(nil), expected) {
		return WebhookResult{Verified: false, Error: "webhook signature mismatch"}
	}

	var event struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return WebhookResult{Verified: false, Error: "malformed webhook payload"}
	}

	return WebhookResult{Verified: true, EventType: event.Type, Data: event.Data}
}

func parseStripeSignature(header string) (int64, []byte, error) {
	var timestamp int64
	var sig []byte
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("invalid signature timestamp")
			}
			timestamp = ts
		case "v1":
			decoded, err := hex.DecodeString(kv[1])
			if err != nil {
				return 0, nil, fmt.Errorf("invalid signature encoding")
			}
			sig = decoded
		}
	}
	if timestamp == 0 || len(sig) == 0 {
		return 0, nil, fmt.Errorf("missing signature components")
	}
	return timestamp, sig, nil
}

func (p *StripeProvider) GetCheckoutURL(ctx context.Context, amount decimal.Decimal, currency string, returnURL string, metadata map[string]string) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(smallestUnit(amount), 10))
	form.Set("line_items[0][price_data][product_data][name]", "Purchase")
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", returnURL+"?success=true")
	form.Set("cancel_url", returnURL+"?canceled=true")
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	var session struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := p.post(ctx, "/checkout/sessions", form, &session); err != nil {
		return nil, err
	}

	return &CheckoutSession{URL: session.URL, SessionID: session.ID}, nil
}
