package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/payment/domain"
	"github.com/shopspring/decimal"
)

// Adapter talks to the PayPal Orders v2 API. Webhook authenticity is
// delegated to PayPal's verify-webhook-signature endpoint.
type Adapter struct {
	clientID     string
	clientSecret string
	webhookID    string
	baseURL      string
	http         *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func New(clientID, clientSecret, webhookID, baseURL string) *Adapter {
	return &Adapter{
		clientID:     strings.TrimSpace(clientID),
		clientSecret: strings.TrimSpace(clientSecret),
		webhookID:    strings.TrimSpace(webhookID),
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:         &http.Client{Timeout: 12 * time.Second},
	}
}

func (a *Adapter) Name() string { return "paypal" }

func (a *Adapter) VerifyAndParse(ctx context.Context, payload []byte, headers http.Header) (*domain.CheckoutEvent, error) {
	if !json.Valid(payload) {
		return nil, domain.ErrInvalidPayload
	}
	if err := a.verify(ctx, payload, headers); err != nil {
		return nil, err
	}
	return a.parse(payload)
}

func (a *Adapter) verify(ctx context.Context, payload []byte, headers http.Header) error {
	if a.webhookID == "" {
		return domain.ErrProviderNotConfigured
	}

	body := map[string]any{
		"transmission_id":   headers.Get("Paypal-Transmission-Id"),
		"transmission_time": headers.Get("Paypal-Transmission-Time"),
		"transmission_sig":  headers.Get("Paypal-Transmission-Sig"),
		"cert_url":          headers.Get("Paypal-Cert-Url"),
		"auth_algo":         headers.Get("Paypal-Auth-Algo"),
		"webhook_id":        a.webhookID,
		"webhook_event":     json.RawMessage(payload),
	}

	var result struct {
		VerificationStatus string `json:"verification_status"`
	}
	if err := a.doJSON(ctx, http.MethodPost, "/v1/notifications/verify-webhook-signature", body, &result); err != nil {
		return err
	}
	if result.VerificationStatus != "SUCCESS" {
		return domain.ErrInvalidSignature
	}
	return nil
}

type webhookEvent struct {
	ID        string          `json:"id"`
	EventType string          `json:"event_type"`
	Resource  json.RawMessage `json:"resource"`
}

type orderResource struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Amount      amount `json:"amount"`
		Description string `json:"description"`
		CustomID    string `json:"custom_id"`
	} `json:"purchase_units"`
	Payer payer `json:"payer"`
}

type captureResource struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	Amount            amount `json:"amount"`
	CustomID          string `json:"custom_id"`
	SupplementaryData struct {
		RelatedIDs struct {
			OrderID string `json:"order_id"`
		} `json:"related_ids"`
	} `json:"supplementary_data"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type payer struct {
	EmailAddress string `json:"email_address"`
	Name         struct {
		GivenName string `json:"given_name"`
		Surname   string `json:"surname"`
	} `json:"name"`
}

func (a *Adapter) parse(payload []byte) (*domain.CheckoutEvent, error) {
	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(event.ID) == "" {
		return nil, domain.ErrInvalidEvent
	}

	switch strings.TrimSpace(event.EventType) {
	case "PAYMENT.CAPTURE.COMPLETED":
		return a.parseCapture(event)
	default:
		// CHECKOUT.ORDER.APPROVED and the rest precede capture; nothing is
		// charged yet, so only the capture materializes an order
		return nil, domain.ErrEventIgnored
	}
}

func (a *Adapter) parseCapture(event webhookEvent) (*domain.CheckoutEvent, error) {
	var resource captureResource
	if err := json.Unmarshal(event.Resource, &resource); err != nil {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(resource.ID) == "" {
		return nil, domain.ErrInvalidEvent
	}

	minor, err := minorUnits(resource.Amount.Value)
	if err != nil {
		return nil, domain.ErrInvalidPayload
	}

	sessionID := strings.TrimSpace(resource.SupplementaryData.RelatedIDs.OrderID)
	if sessionID == "" {
		sessionID = resource.ID
	}

	return &domain.CheckoutEvent{
		Provider:    "paypal",
		EventID:     event.ID,
		SessionID:   sessionID,
		AmountTotal: minor,
		Currency:    strings.ToLower(resource.Amount.CurrencyCode),
		Metadata:    metadataFromCustomID(resource.CustomID),
		Method:      domain.MethodDetail{Type: "paypal"},
	}, nil
}

func (a *Adapter) CreateCheckout(ctx context.Context, params domain.CheckoutParams) (domain.CheckoutSession, error) {
	value := decimal.NewFromInt(params.AmountMinor).Shift(-2).StringFixed(2)

	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"amount": map[string]any{
				"currency_code": strings.ToUpper(params.Currency),
				"value":         value,
			},
			"description": params.Description,
			"custom_id":   params.Metadata["kind"],
		}},
		"application_context": map[string]any{
			"return_url": params.SuccessURL,
			"cancel_url": params.CancelURL,
		},
	}

	var result struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Links  []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	if err := a.doJSON(ctx, http.MethodPost, "/v2/checkout/orders", body, &result); err != nil {
		return domain.CheckoutSession{}, err
	}
	if result.ID == "" {
		return domain.CheckoutSession{}, errors.New("paypal_response_invalid")
	}

	var approveURL string
	for _, link := range result.Links {
		if link.Rel == "approve" {
			approveURL = link.Href
		}
	}

	return domain.CheckoutSession{
		ID:     result.ID,
		URL:    approveURL,
		Status: result.Status,
	}, nil
}

func (a *Adapter) GetSession(ctx context.Context, sessionID string) (domain.CheckoutSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.CheckoutSession{}, domain.ErrInvalidEvent
	}

	var resource orderResource
	if err := a.doJSON(ctx, http.MethodGet, "/v2/checkout/orders/"+url.PathEscape(sessionID), nil, &resource); err != nil {
		return domain.CheckoutSession{}, err
	}
	if resource.ID == "" {
		return domain.CheckoutSession{}, errors.New("paypal_response_invalid")
	}

	session := domain.CheckoutSession{
		ID:            resource.ID,
		Status:        resource.Status,
		PaymentStatus: resource.Status,
		CustomerName:  payerName(resource.Payer),
		CustomerEmail: strings.TrimSpace(resource.Payer.EmailAddress),
		Method:        domain.MethodDetail{Type: "paypal"},
	}
	if len(resource.PurchaseUnits) > 0 {
		unit := resource.PurchaseUnits[0]
		if minor, err := minorUnits(unit.Amount.Value); err == nil {
			session.AmountTotal = minor
		}
		session.Currency = strings.ToLower(unit.Amount.CurrencyCode)
		session.Metadata = metadataFromCustomID(unit.CustomID)
	}
	return session, nil
}

func (a *Adapter) doJSON(ctx context.Context, method string, path string, body any, out any) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errors.New("paypal_request_failed")
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *Adapter) accessToken(ctx context.Context) (string, error) {
	if a.clientID == "" || a.clientSecret == "" {
		return "", domain.ErrProviderNotConfigured
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token != "" && time.Now().Before(a.tokenExpiry) {
		return a.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/v1/oauth2/token", strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(a.clientID, a.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", errors.New("paypal_auth_failed")
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", errors.New("paypal_auth_failed")
	}

	a.token = token.AccessToken
	// renew a minute early
	a.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn-60) * time.Second)
	return a.token, nil
}

func minorUnits(value string) (int64, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	return parsed.Shift(2).IntPart(), nil
}

func payerName(p payer) string {
	name := strings.TrimSpace(p.Name.GivenName + " " + p.Name.Surname)
	return name
}

func metadataFromCustomID(customID string) map[string]string {
	customID = strings.TrimSpace(customID)
	if customID == "" {
		return nil
	}
	return map[string]string{"kind": customID}
}
