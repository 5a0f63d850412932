package domain

import (
	"context"
	"errors"
	"net/http"
)

const (
	KindOrder    = "order"
	KindDonation = "donation"
)

var (
	ErrInvalidProvider       = errors.New("invalid_provider")
	ErrProviderNotConfigured = errors.New("provider_not_configured")
	ErrInvalidSignature      = errors.New("invalid_signature")
	ErrInvalidPayload        = errors.New("invalid_payload")
	ErrInvalidEvent          = errors.New("invalid_event")
	ErrEventIgnored          = errors.New("event_ignored")
	ErrInvalidAmount         = errors.New("invalid_amount")
)

// MethodDetail is what a provider tells us about how a session was paid.
// Type is the provider's raw payment method code; Wallet is set when a card
// payment went through a wallet.
type MethodDetail struct {
	Type   string
	Wallet string
}

// CheckoutEvent is a verified, parsed webhook notification about a settled
// checkout session. AmountTotal is in minor units and is authoritative over
// anything the client claimed at checkout time.
type CheckoutEvent struct {
	Provider      string
	EventID       string
	SessionID     string
	CustomerName  string
	CustomerEmail string
	AmountTotal   int64
	Currency      string
	Description   string
	Metadata      map[string]string
	Method        MethodDetail
}

// CheckoutParams is what an adapter needs to open a hosted checkout session.
type CheckoutParams struct {
	AmountMinor int64
	Currency    string
	Description string
	Email       string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession mirrors the provider-side session state.
type CheckoutSession struct {
	ID            string
	URL           string
	Status        string
	PaymentStatus string
	CustomerName  string
	CustomerEmail string
	AmountTotal   int64
	Currency      string
	Metadata      map[string]string
	Method        MethodDetail
}

// Settled reports whether the session's payment has actually completed.
// Approval alone is not settlement; nothing has been captured yet.
func (s CheckoutSession) Settled() bool {
	switch s.PaymentStatus {
	case "paid", "no_payment_required", "COMPLETED":
		return true
	}
	return false
}

// Provider is a payment provider adapter. VerifyAndParse authenticates the
// raw webhook delivery and returns the typed event, or ErrEventIgnored for
// event kinds this service does not act on.
type Provider interface {
	Name() string
	VerifyAndParse(ctx context.Context, payload []byte, headers http.Header) (*CheckoutEvent, error)
	CreateCheckout(ctx context.Context, params CheckoutParams) (CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (CheckoutSession, error)
}

type CheckoutRequest struct {
	Amount        string `json:"amount" binding:"required"`
	Currency      string `json:"currency"`
	Description   string `json:"description"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
	Provider      string `json:"provider"`
	Kind          string `json:"kind"`
	Message       string `json:"message"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type SessionSummary struct {
	Status        string `json:"status"`
	CustomerEmail string `json:"customerEmail"`
	AmountTotal   string `json:"amountTotal"`
}

type Service interface {
	ProcessWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error
	CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutResponse, error)
	GetSession(ctx context.Context, provider string, sessionID string) (SessionSummary, error)
	// ConfirmDonation resolves a donation success callback to a frontend
	// redirect target. It never returns an error; failures map to the error
	// redirect.
	ConfirmDonation(ctx context.Context, sessionID string) string
}
