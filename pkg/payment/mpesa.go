package payment

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/enum"
)

const (
	mpesaAPIBase        = "https://api.safaricom.co.ke"
	mpesaSandboxAPIBase = "https://sandbox.safaricom.co.ke"
)

// MpesaProvider integrates Safaricom's Daraja API: STK push for charges and
// the reversal API for refunds. Daraja does not sign its callbacks, so
// webhook verification relies on the shared token configured as the
// webhook secret.
type MpesaProvider struct {
	cfg     Config
	apiBase string
	client  *http.Client
	now     func() time.Time
}

// NewMpesaProvider creates an M-Pesa provider from stored configuration
func NewMpesaProvider(cfg Config) *MpesaProvider {
	base := mpesaAPIBase
	if cfg.SandboxMode {
		base = mpesaSandboxAPIBase
	}
	return &MpesaProvider{
		cfg:     cfg,
		apiBase: base,
		client:  &http.Client{Timeout: 30 * time.Second},
		now:     time.Now,
	}
}

func (p *MpesaProvider) Type() enum.ProviderType {
	return enum.ProviderTypeMpesa
}

// accessToken fetches an OAuth token using the consumer key/secret pair
func (p *MpesaProvider) accessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.apiBase+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(p.cfg.APIKey + ":" + p.cfg.SecretKey))
	req.Header.Set("Authorization", "Basic "+credentials)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("mpesa: token request failed with status %d", resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("mpesa: empty access token")
	}
	return token.AccessToken, nil
}

func (p *MpesaProvider) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	token, err := p.accessToken(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiBase+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			ErrorMessage string `json:"errorMessage"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.ErrorMessage != "" {
			return fmt.Errorf("mpesa: %s", apiErr.ErrorMessage)
		}
		return fmt.Errorf("mpesa: request failed with status %d", resp.StatusCode)
	}

	return json.Unmarshal(respBody, out)
}

func (p *MpesaProvider) ProcessPayment(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) PaymentResult {
	timestamp := p.now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(p.cfg.ShortCode + p.cfg.Passkey + timestamp))

	phone := metadata["phone"]
	if phone == "" {
		return PaymentResult{Success: false, Error: "mpesa: customer phone number is required"}
	}

	body := map[string]interface{}{
		"BusinessShortCode": p.cfg.ShortCode,
		"Password":          password,
		"Timestamp":         timestamp,
		"TransactionType":   "CustomerPayBillOnline",
		// M-Pesa deals in whole shillings
		"Amount":           amount.Round(0).IntPart(),
		"PartyA":           phone,
		"PartyB":           p.cfg.ShortCode,
		"PhoneNumber":      phone,
		"CallBackURL":      metadata["callback_url"],
		"AccountReference": metadata["reference"],
		"TransactionDesc":  "POS sale",
	}

	var stk struct {
		CheckoutRequestID string `json:"CheckoutRequestID"`
		ResponseCode      string `json:"ResponseCode"`
		ResponseDesc      string `json:"ResponseDescription"`
	}
	if err := p.post(ctx, "/mpesa/stkpush/v1/processrequest", body, &stk); err != nil {
		return PaymentResult{Success: false, Error: err.Error()}
	}
	if stk.ResponseCode != "0" {
		return PaymentResult{Success: false, Error: "mpesa: " + stk.ResponseDesc}
	}

	return PaymentResult{
		Success:       true,
		TransactionID: stk.CheckoutRequestID,
		Metadata:      map[string]string{"status": "pending_confirmation"},
	}
}

func (p *MpesaProvider) Refund(ctx context.Context, transactionID string, amount *decimal.Decimal) RefundResult {
	body := map[string]interface{}{
		"Initiator":              p.cfg.Extra["initiator"],
		"SecurityCredential":     p.cfg.Extra["security_credential"],
		"CommandID":              "TransactionReversal",
		"TransactionID":          transactionID,
		"ReceiverParty":          p.cfg.ShortCode,
		"RecieverIdentifierType": "11",
		"Remarks":                "POS refund",
	}
	if amount != nil {
		body["Amount"] = amount.Round(0).IntPart()
	}

	var reversal struct {
		ConversationID string `json:"ConversationID"`
		ResponseCode   string `json:"ResponseCode"`
		ResponseDesc   string `json:"ResponseDescription"`
	}
	if err := p.post(ctx, "/mpesa/reversal/v1/request", body, &reversal); err != nil {
		return RefundResult{Success: false, Error: err.Error()}
	}
	if reversal.ResponseCode != "0" {
		return RefundResult{Success: false, Error: "mpesa: " + reversal.ResponseDesc}
	}

	return RefundResult{Success: true, RefundID: reversal.ConversationID}
}

// HandleWebhook accepts a Daraja callback. The signature argument carries
// the shared token the callback URL was registered with; without a match the
// payload is not trusted.
func (p *MpesaProvider) HandleWebhook(payload []byte, signature string) WebhookResult {
	if p.cfg.WebhookSecret == "" {
		return WebhookResult{Verified: false, Error: "mpesa: webhook secret not configured"}
	}
	if subtle.ConstantTimeCompare([]byte(signature), []byte(p.cfg.WebhookSecret)) != 1 {
		return WebhookResult{Verified: false, Error: "mpesa: webhook token mismatch"}
	}

	var callback struct {
		Body struct {
			StkCallback json.RawMessage `json:"stkCallback"`
		} `json:"Body"`
	}
	if err := json.Unmarshal(payload, &callback); err != nil || callback.Body.StkCallback == nil {
		return WebhookResult{Verified: false, Error: "mpesa: malformed callback payload"}
	}

	return WebhookResult{Verified: true, EventType: "stk_callback", Data: callback.Body.StkCallback}
}
