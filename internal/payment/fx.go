package payment

import (
	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	"github.com/Blits-planeet/driftv8.xyz/internal/payment/adapters"
	"github.com/Blits-planeet/driftv8.xyz/internal/payment/adapters/paypal"
	"github.com/Blits-planeet/driftv8.xyz/internal/payment/adapters/stripe"
	"github.com/Blits-planeet/driftv8.xyz/internal/payment/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/payment/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("payment.service",
	fx.Provide(provideRegistry),
	fx.Provide(service.New),
)

// provideRegistry registers only the providers whose credentials are set,
// so an unconfigured provider maps to a clean 503 instead of failing mid
// request.
func provideRegistry(cfg config.Config, log *zap.Logger) *adapters.Registry {
	var providers []domain.Provider

	if cfg.Stripe.SecretKey != "" && cfg.Stripe.WebhookSecret != "" {
		providers = append(providers, stripe.New(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret))
	} else {
		log.Named("payment").Info("stripe not configured")
	}

	if cfg.PayPal.ClientID != "" && cfg.PayPal.ClientSecret != "" && cfg.PayPal.WebhookID != "" {
		providers = append(providers, paypal.New(
			cfg.PayPal.ClientID,
			cfg.PayPal.ClientSecret,
			cfg.PayPal.WebhookID,
			cfg.PayPal.BaseURL,
		))
	} else {
		log.Named("payment").Info("paypal not configured")
	}

	return adapters.NewRegistry(providers...)
}
