package stripe_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/payment/adapters/stripe"
	"github.com/Blits-planeet/driftv8.xyz/internal/payment/domain"
)

const webhookSecret = "whsec_test"

func signedHeader(secret string, payload []byte, ts int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts, payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func headersWith(signature string) http.Header {
	h := http.Header{}
	h.Set("Stripe-Signature", signature)
	return h
}

func TestVerifyAndParseCheckoutCompleted(t *testing.T) {
	adapter := stripe.New("sk_test", webhookSecret)

	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_1",
			"amount_total": 2550,
			"currency": "usd",
			"payment_status": "paid",
			"customer_details": {"name": "Dana", "email": "dana@example.com"},
			"metadata": {"kind": "order"}
		}}
	}`)
	header := signedHeader(webhookSecret, payload, time.Now().Unix())

	event, err := adapter.VerifyAndParse(context.Background(), payload, headersWith(header))
	if err != nil {
		t.Fatalf("verify and parse: %v", err)
	}

	if event.EventID != "evt_1" {
		t.Fatalf("want event id evt_1, got %q", event.EventID)
	}
	if event.SessionID != "cs_test_1" {
		t.Fatalf("want session id cs_test_1, got %q", event.SessionID)
	}
	if event.AmountTotal != 2550 {
		t.Fatalf("want amount 2550, got %d", event.AmountTotal)
	}
	if event.CustomerEmail != "dana@example.com" {
		t.Fatalf("want customer email, got %q", event.CustomerEmail)
	}
	if event.Metadata["kind"] != "order" {
		t.Fatalf("metadata lost: %v", event.Metadata)
	}
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	adapter := stripe.New("sk_test", webhookSecret)
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)

	cases := map[string]http.Header{
		"missing header":   {},
		"garbage header":   headersWith("not-a-signature"),
		"wrong secret":     headersWith(signedHeader("whsec_other", payload, time.Now().Unix())),
		"tampered payload": headersWith(signedHeader(webhookSecret, []byte(`{"id":"evt_x"}`), time.Now().Unix())),
	}

	for name, headers := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := adapter.VerifyAndParse(context.Background(), payload, headers)
			if !errors.Is(err, domain.ErrInvalidSignature) {
				t.Fatalf("want ErrInvalidSignature, got %v", err)
			}
		})
	}
}

func TestParseIgnoresOtherEventKinds(t *testing.T) {
	adapter := stripe.New("sk_test", webhookSecret)

	for _, kind := range []string{"payment_intent.succeeded", "invoice.paid", "charge.refunded"} {
		payload := []byte(fmt.Sprintf(`{"id":"evt_2","type":"%s","data":{"object":{"id":"obj_1"}}}`, kind))
		header := signedHeader(webhookSecret, payload, time.Now().Unix())

		_, err := adapter.VerifyAndParse(context.Background(), payload, headersWith(header))
		if !errors.Is(err, domain.ErrEventIgnored) {
			t.Fatalf("kind %s: want ErrEventIgnored, got %v", kind, err)
		}
	}
}

func TestParseRejectsMalformedPayload(t *testing.T) {
	adapter := stripe.New("sk_test", webhookSecret)

	payload := []byte(`{not json`)
	header := signedHeader(webhookSecret, payload, time.Now().Unix())

	_, err := adapter.VerifyAndParse(context.Background(), payload, headersWith(header))
	if !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("want ErrInvalidPayload, got %v", err)
	}
}
