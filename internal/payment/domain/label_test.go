package domain_test

import (
	"testing"

	"github.com/Blits-planeet/driftv8.xyz/internal/payment/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		name      string
		method    domain.MethodDetail
		overrides map[string]string
		want      string
	}{
		{
			name:   "card with apple pay wallet",
			method: domain.MethodDetail{Type: "card", Wallet: "apple_pay"},
			want:   "Apple Pay",
		},
		{
			name:   "card with google pay wallet",
			method: domain.MethodDetail{Type: "card", Wallet: "google_pay"},
			want:   "Google Pay",
		},
		{
			name:   "card with link wallet",
			method: domain.MethodDetail{Type: "card", Wallet: "link"},
			want:   "Link",
		},
		{
			name:   "plain card",
			method: domain.MethodDetail{Type: "card"},
			want:   "Credit/Debit Card",
		},
		{
			name:   "ach",
			method: domain.MethodDetail{Type: "us_bank_account"},
			want:   "Bank Transfer (ACH)",
		},
		{
			name:   "paypal",
			method: domain.MethodDetail{Type: "paypal"},
			want:   "PayPal",
		},
		{
			name:   "unrecognized type is capitalized",
			method: domain.MethodDetail{Type: "boleto_bancario"},
			want:   "Boleto Bancario",
		},
		{
			name:   "no detail at all",
			method: domain.MethodDetail{},
			want:   "Unknown",
		},
		{
			name:      "override beats builtin",
			method:    domain.MethodDetail{Type: "card"},
			overrides: map[string]string{"card": "Karte"},
			want:      "Karte",
		},
		{
			name:      "override applies to wallets",
			method:    domain.MethodDetail{Type: "card", Wallet: "apple_pay"},
			overrides: map[string]string{"apple_pay": "Apple Pay"},
			want:      "Apple Pay",
		},
		{
			name:   "unknown wallet is capitalized",
			method: domain.MethodDetail{Type: "card", Wallet: "samsung_pay"},
			want:   "Samsung Pay",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.NormalizeLabel(tc.method, tc.overrides))
		})
	}
}
