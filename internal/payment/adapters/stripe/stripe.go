package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Blits-planeet/driftv8.xyz/internal/payment/domain"
)

// Adapter talks to Stripe Checkout: webhook verification/parse plus the
// hosted session REST calls.
type Adapter struct {
	webhookSecret string
	client        *client
}

func New(secretKey string, webhookSecret string) *Adapter {
	return &Adapter{
		webhookSecret: strings.TrimSpace(webhookSecret),
		client:        newClient(secretKey),
	}
}

func (a *Adapter) Name() string { return "stripe" }

func (a *Adapter) VerifyAndParse(ctx context.Context, payload []byte, headers http.Header) (*domain.CheckoutEvent, error) {
	if err := a.verify(payload, headers); err != nil {
		return nil, err
	}
	return a.parse(payload)
}

func (a *Adapter) verify(payload []byte, headers http.Header) error {
	if a.webhookSecret == "" {
		return domain.ErrProviderNotConfigured
	}

	sigHeader := strings.TrimSpace(headers.Get("Stripe-Signature"))
	if sigHeader == "" {
		return domain.ErrInvalidSignature
	}

	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return domain.ErrInvalidSignature
	}

	signedPayload := fmt.Sprintf("%s.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(a.webhookSecret))
	_, _ = mac.Write([]byte(signedPayload))
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, signature := range signatures {
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return nil
		}
	}

	return domain.ErrInvalidSignature
}

func (a *Adapter) parse(payload []byte) (*domain.CheckoutEvent, error) {
	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(event.ID) == "" {
		return nil, domain.ErrInvalidEvent
	}

	switch strings.TrimSpace(event.Type) {
	case "checkout.session.completed":
	default:
		return nil, domain.ErrEventIgnored
	}

	var session stripeSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(session.ID) == "" {
		return nil, domain.ErrInvalidEvent
	}

	return &domain.CheckoutEvent{
		Provider:      "stripe",
		EventID:       event.ID,
		SessionID:     session.ID,
		CustomerName:  strings.TrimSpace(session.CustomerDetails.Name),
		CustomerEmail: strings.TrimSpace(session.CustomerDetails.Email),
		AmountTotal:   session.AmountTotal,
		Currency:      strings.ToLower(strings.TrimSpace(session.Currency)),
		Metadata:      session.Metadata,
	}, nil
}

func (a *Adapter) CreateCheckout(ctx context.Context, params domain.CheckoutParams) (domain.CheckoutSession, error) {
	return a.client.createSession(ctx, params)
}

func (a *Adapter) GetSession(ctx context.Context, sessionID string) (domain.CheckoutSession, error) {
	return a.client.retrieveSession(ctx, sessionID)
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type stripeSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	Metadata        map[string]string `json:"metadata"`
	CustomerDetails struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"customer_details"`
	PaymentIntent json.RawMessage `json:"payment_intent"`
}

// methodDetail digs the payment method out of an expanded payment_intent.
// The webhook payload carries only the intent id, so this yields data on
// retrieved sessions only.
func (s stripeSession) methodDetail() domain.MethodDetail {
	if len(s.PaymentIntent) == 0 || s.PaymentIntent[0] != '{' {
		return domain.MethodDetail{}
	}

	var intent struct {
		PaymentMethod struct {
			Type string `json:"type"`
			Card struct {
				Wallet struct {
					Type string `json:"type"`
				} `json:"wallet"`
			} `json:"card"`
		} `json:"payment_method"`
	}
	if err := json.Unmarshal(s.PaymentIntent, &intent); err != nil {
		return domain.MethodDetail{}
	}

	return domain.MethodDetail{
		Type:   intent.PaymentMethod.Type,
		Wallet: intent.PaymentMethod.Card.Wallet.Type,
	}
}

func parseSignatureHeader(header string) (string, []string, error) {
	parts := strings.Split(header, ",")
	var timestamp string
	signatures := []string{}
	for _, part := range parts {
		piece := strings.TrimSpace(part)
		if piece == "" {
			continue
		}
		keyValue := strings.SplitN(piece, "=", 2)
		if len(keyValue) != 2 {
			continue
		}
		key := strings.TrimSpace(keyValue[0])
		value := strings.TrimSpace(keyValue[1])
		if key == "t" {
			timestamp = value
		}
		if key == "v1" {
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return "", nil, errors.New("invalid_signature")
	}
	return timestamp, signatures, nil
}
