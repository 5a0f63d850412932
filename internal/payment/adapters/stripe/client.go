package stripe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/payment/domain"
)

type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type client struct {
	apiKey string
	http   *http.Client
}

func newClient(apiKey string) *client {
	return &client{
		apiKey: strings.TrimSpace(apiKey),
		http:   &http.Client{Timeout: 12 * time.Second},
	}
}

func (c *client) createSession(ctx context.Context, params domain.CheckoutParams) (domain.CheckoutSession, error) {
	values := url.Values{}
	values.Set("mode", "payment")
	values.Set("success_url", params.SuccessURL)
	values.Set("cancel_url", params.CancelURL)
	values.Set("line_items[0][quantity]", "1")
	values.Set("line_items[0][price_data][currency]", strings.ToLower(params.Currency))
	values.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountMinor, 10))
	values.Set("line_items[0][price_data][product_data][name]", productName(params.Description))
	if params.Email != "" {
		values.Set("customer_email", params.Email)
	}
	for key, value := range params.Metadata {
		values.Set("metadata["+key+"]", value)
	}

	return c.doRequest(ctx, http.MethodPost, "/v1/checkout/sessions", values, idempotencyKey(params))
}

// idempotencyKey is derived from the request content so a retried identical
// checkout resolves to the same Stripe session.
func idempotencyKey(params domain.CheckoutParams) string {
	h := sha256.New()
	io.WriteString(h, strconv.FormatInt(params.AmountMinor, 10))
	io.WriteString(h, "|"+strings.ToLower(params.Currency))
	io.WriteString(h, "|"+params.Email)
	io.WriteString(h, "|"+params.Description)

	keys := make([]string, 0, len(params.Metadata))
	for key := range params.Metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		io.WriteString(h, "|"+key+"="+params.Metadata[key])
	}

	return "checkout_" + hex.EncodeToString(h.Sum(nil))
}

func (c *client) retrieveSession(ctx context.Context, sessionID string) (domain.CheckoutSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.CheckoutSession{}, domain.ErrInvalidEvent
	}
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID) +
		"?expand[]=payment_intent.payment_method"
	return c.doRequest(ctx, http.MethodGet, path, nil, "")
}

func (c *client) doRequest(
	ctx context.Context,
	method string,
	path string,
	values url.Values,
	idempotencyKey string,
) (domain.CheckoutSession, error) {
	if c.apiKey == "" {
		return domain.CheckoutSession{}, domain.ErrProviderNotConfigured
	}

	var bodyReader *strings.Reader
	if values != nil {
		bodyReader = strings.NewReader(values.Encode())
	} else {
		bodyReader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, "https://api.stripe.com"+path, bodyReader)
	if err != nil {
		return domain.CheckoutSession{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.CheckoutSession{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var stripeErr stripeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&stripeErr); err != nil {
			return domain.CheckoutSession{}, errors.New("stripe_request_failed")
		}
		message := strings.TrimSpace(stripeErr.Error.Message)
		if message == "" {
			message = "stripe_request_failed"
		}
		return domain.CheckoutSession{}, errors.New(message)
	}

	var session stripeSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return domain.CheckoutSession{}, err
	}
	if session.ID == "" {
		return domain.CheckoutSession{}, errors.New("stripe_response_invalid")
	}

	return domain.CheckoutSession{
		ID:            session.ID,
		URL:           session.URL,
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
		CustomerName:  session.CustomerDetails.Name,
		CustomerEmail: session.CustomerDetails.Email,
		AmountTotal:   session.AmountTotal,
		Currency:      session.Currency,
		Metadata:      session.Metadata,
		Method:        session.methodDetail(),
	}, nil
}

func productName(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return "Order"
	}
	return description
}
