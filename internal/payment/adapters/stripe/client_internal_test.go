package stripe

import (
	"testing"

	"github.com/Blits-planeet/driftv8.xyz/internal/payment/domain"
)

func TestIdempotencyKeyStable(t *testing.T) {
	params := domain.CheckoutParams{
		AmountMinor: 2550,
		Currency:    "usd",
		Email:       "dana@example.com",
		Description: "Sticker pack",
		Metadata:    map[string]string{"kind": "order", "customer_name": "Dana"},
	}

	first := idempotencyKey(params)
	second := idempotencyKey(params)
	if first != second {
		t.Fatalf("same request produced different keys: %q vs %q", first, second)
	}

	reordered := params
	reordered.Metadata = map[string]string{"customer_name": "Dana", "kind": "order"}
	if idempotencyKey(reordered) != first {
		t.Fatal("metadata iteration order changed the key")
	}
}

func TestIdempotencyKeyVariesWithContent(t *testing.T) {
	base := domain.CheckoutParams{AmountMinor: 2550, Currency: "usd"}

	other := base
	other.AmountMinor = 2551
	if idempotencyKey(other) == idempotencyKey(base) {
		t.Fatal("different amounts produced the same key")
	}

	other = base
	other.Metadata = map[string]string{"kind": "donation"}
	if idempotencyKey(other) == idempotencyKey(base) {
		t.Fatal("different metadata produced the same key")
	}
}
