package domain

import "strings"

const LabelUnknown = "Unknown"

var walletLabels = map[string]string{
	"apple_pay":  "Apple Pay",
	"google_pay": "Google Pay",
	"link":       "Link",
}

var typeLabels = map[string]string{
	"card":            "Credit/Debit Card",
	"us_bank_account": "Bank Transfer (ACH)",
	"sepa_debit":      "SEPA Direct Debit",
	"ideal":           "iDEAL",
	"bancontact":      "Bancontact",
	"giropay":         "Giropay",
	"sofort":          "Sofort",
	"paypal":          "PayPal",
	"cashapp":         "Cash App Pay",
	"afterpay_clearpay": "Afterpay/Clearpay",
	"klarna":          "Klarna",
	"alipay":          "Alipay",
	"wechat_pay":      "WeChat Pay",
}

// NormalizeLabel maps a provider method detail to a human-facing payment
// label. Wallet beats card type; overrides (keyed by raw type or wallet
// code) beat everything.
func NormalizeLabel(method MethodDetail, overrides map[string]string) string {
	wallet := strings.ToLower(strings.TrimSpace(method.Wallet))
	methodType := strings.ToLower(strings.TrimSpace(method.Type))

	if wallet != "" {
		if label, ok := overrides[wallet]; ok && label != "" {
			return label
		}
		if label, ok := walletLabels[wallet]; ok {
			return label
		}
		return titleize(wallet)
	}

	if methodType == "" {
		return LabelUnknown
	}
	if label, ok := overrides[methodType]; ok && label != "" {
		return label
	}
	if label, ok := typeLabels[methodType]; ok {
		return label
	}
	return titleize(methodType)
}

func titleize(code string) string {
	parts := strings.FieldsFunc(code, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
