package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	donationdomain "github.com/Blits-planeet/driftv8.xyz/internal/donation/domain"
	eventledgerdomain "github.com/Blits-planeet/driftv8.xyz/internal/eventledger/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/metrics"
	"github.com/Blits-planeet/driftv8.xyz/internal/notify"
	orderdomain "github.com/Blits-planeet/driftv8.xyz/internal/order/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/payment/adapters"
	"github.com/Blits-planeet/driftv8.xyz/internal/payment/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultProvider = "stripe"

type Params struct {
	fx.In

	Log        *zap.Logger
	Cfg        config.Config
	Holder     *config.StoreConfigHolder
	Adapters   *adapters.Registry
	Ledger     eventledgerdomain.Service
	Orders     orderdomain.Service
	Donations  donationdomain.Service
	Dispatcher *notify.Dispatcher
	Metrics    *metrics.Metrics
}

type Service struct {
	log        *zap.Logger
	cfg        config.Config
	holder     *config.StoreConfigHolder
	adapters   *adapters.Registry
	ledger     eventledgerdomain.Service
	orders     orderdomain.Service
	donations  donationdomain.Service
	dispatcher *notify.Dispatcher
	metrics    *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:        p.Log.Named("payment.service"),
		cfg:        p.Cfg,
		holder:     p.Holder,
		adapters:   p.Adapters,
		ledger:     p.Ledger,
		orders:     p.Orders,
		donations:  p.Donations,
		dispatcher: p.Dispatcher,
		metrics:    p.Metrics,
	}
}

// ProcessWebhook runs the full pipeline for one delivery: verify, claim the
// event id in the ledger, then finalize the order. The ledger is written
// before any side effect; a crash in between loses the event rather than
// duplicating the order on redelivery.
func (s *Service) ProcessWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return domain.ErrInvalidProvider
	}

	adapter, err := s.adapters.Get(provider)
	if err != nil {
		return err
	}

	event, err := adapter.VerifyAndParse(ctx, payload, headers)
	if err != nil {
		if errors.Is(err, domain.ErrEventIgnored) {
			s.metrics.ObservePaymentEvent(provider, "ignored")
			return nil
		}
		s.metrics.ObservePaymentEvent(provider, "rejected")
		return err
	}

	if s.ledger.IsProcessed(ctx, event.EventID) {
		s.metrics.ObservePaymentEvent(provider, "duplicate")
		s.log.Info("duplicate webhook event",
			zap.String("provider", provider),
			zap.String("event_id", event.EventID))
		return nil
	}

	if !s.ledger.Claim(ctx, event.EventID) {
		s.metrics.ObservePaymentEvent(provider, "duplicate")
		return nil
	}

	if event.Metadata["kind"] == domain.KindDonation {
		// donations finalize through the success redirect, keyed separately
		s.metrics.ObservePaymentEvent(provider, "ignored")
		return nil
	}

	if err := s.finalizeOrder(ctx, adapter, event); err != nil {
		s.metrics.ObservePaymentEvent(provider, "failed")
		s.log.Error("order finalization failed",
			zap.String("provider", provider),
			zap.String("event_id", event.EventID),
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		return err
	}

	s.metrics.ObservePaymentEvent(provider, "processed")
	return nil
}

func (s *Service) finalizeOrder(ctx context.Context, adapter domain.Provider, event *domain.CheckoutEvent) error {
	method := event.Method
	if method.Type == "" && event.SessionID != "" {
		// webhook payloads carry only the intent id; fetch the expanded
		// session for method details, best effort
		if session, err := adapter.GetSession(ctx, event.SessionID); err == nil {
			method = session.Method
			if event.CustomerEmail == "" {
				event.CustomerEmail = session.CustomerEmail
			}
			if event.CustomerName == "" {
				event.CustomerName = session.CustomerName
			}
		} else {
			s.log.Warn("session lookup failed",
				zap.String("session_id", event.SessionID),
				zap.Error(err))
		}
	}

	label := domain.NormalizeLabel(method, s.holder.Current().PaymentLabels)
	amount := decimal.NewFromInt(event.AmountTotal).Shift(-2).StringFixed(2)

	name := strings.TrimSpace(event.CustomerName)
	if name == "" {
		name = "Guest"
	}
	email := strings.TrimSpace(event.CustomerEmail)
	hasEmail := strings.Contains(email, "@")
	if !hasEmail {
		email = "unknown@customer.invalid"
	}

	description := strings.TrimSpace(event.Description)
	if description == "" {
		description = event.Metadata["description"]
	}

	order, err := s.orders.Create(ctx, orderdomain.CreateOrderRequest{
		CustomerName:  name,
		CustomerEmail: email,
		Amount:        amount,
		PaymentMethod: label,
		Description:   description,
	})
	if err != nil {
		return err
	}

	s.log.Info("order finalized",
		zap.Int64("order_number", order.OrderNumber),
		zap.String("event_id", event.EventID),
		zap.String("amount", order.Amount),
		zap.String("payment_method", label))

	if hasEmail {
		s.dispatcher.Notify(ctx, email,
			fmt.Sprintf("Order #%d confirmed", order.OrderNumber),
			fmt.Sprintf("Hi %s,\n\nThanks for your order!\n\nOrder number: %d\nAmount: $%s\nPayment method: %s\n\nWe'll be in touch when it ships.",
				name, order.OrderNumber, order.Amount, label))
	}
	s.dispatcher.NotifyBusiness(ctx,
		fmt.Sprintf("New order #%d", order.OrderNumber),
		fmt.Sprintf("Order #%d\nCustomer: %s <%s>\nAmount: $%s\nPayment method: %s\nDescription: %s",
			order.OrderNumber, name, email, order.Amount, label, description))

	return nil
}

// CreateCheckout validates the amount locally and opens a hosted session.
// Invalid amounts never reach the provider.
func (s *Service) CreateCheckout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResponse, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return domain.CheckoutResponse{}, domain.ErrInvalidAmount
	}

	providerName := strings.ToLower(strings.TrimSpace(req.Provider))
	if providerName == "" {
		providerName = defaultProvider
	}
	adapter, err := s.adapters.Get(providerName)
	if err != nil {
		return domain.CheckoutResponse{}, err
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "usd"
	}

	kind := strings.TrimSpace(req.Kind)
	if kind != domain.KindDonation {
		kind = domain.KindOrder
	}

	metadata := map[string]string{
		"kind": kind,
	}
	if name := strings.TrimSpace(req.CustomerName); name != "" {
		metadata["customer_name"] = name
	}
	if req.Description != "" {
		metadata["description"] = strings.TrimSpace(req.Description)
	}
	if kind == domain.KindDonation {
		metadata["donor_name"] = strings.TrimSpace(req.CustomerName)
		if msg := strings.TrimSpace(req.Message); msg != "" {
			metadata["donor_message"] = msg
		}
	}

	successURL := s.cfg.FrontendURL + "/checkout?status=success"
	cancelURL := s.cfg.FrontendURL + "/checkout?status=cancelled"
	if kind == domain.KindDonation {
		successURL = s.cfg.PublicURL + "/api/donations/success?session_id={CHECKOUT_SESSION_ID}"
		cancelURL = s.cfg.FrontendURL + "/donate?status=cancelled"
	}

	session, err := adapter.CreateCheckout(ctx, domain.CheckoutParams{
		AmountMinor: amount.Shift(2).IntPart(),
		Currency:    currency,
		Description: strings.TrimSpace(req.Description),
		Email:       strings.TrimSpace(req.CustomerEmail),
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
		Metadata:    metadata,
	})
	if err != nil {
		return domain.CheckoutResponse{}, err
	}

	return domain.CheckoutResponse{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

func (s *Service) GetSession(ctx context.Context, provider string, sessionID string) (domain.SessionSummary, error) {
	providerName := strings.ToLower(strings.TrimSpace(provider))
	if providerName == "" {
		providerName = defaultProvider
	}
	adapter, err := s.adapters.Get(providerName)
	if err != nil {
		return domain.SessionSummary{}, err
	}

	session, err := adapter.GetSession(ctx, sessionID)
	if err != nil {
		return domain.SessionSummary{}, err
	}

	return domain.SessionSummary{
		Status:        session.Status,
		CustomerEmail: session.CustomerEmail,
		AmountTotal:   decimal.NewFromInt(session.AmountTotal).Shift(-2).StringFixed(2),
	}, nil
}

// ConfirmDonation turns a provider success callback into a frontend
// redirect. Every failure path lands on the error redirect; a session that
// was already confirmed lands on success without a second record.
func (s *Service) ConfirmDonation(ctx context.Context, sessionID string) string {
	successURL := s.cfg.FrontendURL + "/donate?status=success"
	errorURL := s.cfg.FrontendURL + "/donate?status=error"

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return errorURL
	}

	ledgerKey := "donation_" + sessionID
	if s.ledger.IsProcessed(ctx, ledgerKey) {
		return successURL
	}

	adapter, err := s.adapters.Get(defaultProvider)
	if err != nil {
		s.log.Warn("donation confirm without configured provider", zap.String("session_id", sessionID))
		return errorURL
	}

	session, err := adapter.GetSession(ctx, sessionID)
	if err != nil {
		s.log.Error("donation session lookup failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return errorURL
	}
	if !session.Settled() {
		s.log.Warn("donation session not settled",
			zap.String("session_id", sessionID),
			zap.String("payment_status", session.PaymentStatus))
		return errorURL
	}

	donorName := strings.TrimSpace(session.Metadata["donor_name"])
	if donorName == "" {
		s.log.Warn("donation session missing donor metadata", zap.String("session_id", sessionID))
		return errorURL
	}

	if !s.ledger.Claim(ctx, ledgerKey) {
		return successURL
	}

	amount := decimal.NewFromInt(session.AmountTotal).Shift(-2).StringFixed(2)
	label := domain.NormalizeLabel(session.Method, s.holder.Current().PaymentLabels)

	donation, err := s.donations.Create(ctx, donationdomain.CreateDonationRequest{
		Name:          donorName,
		Email:         session.CustomerEmail,
		Amount:        amount,
		Message:       session.Metadata["donor_message"],
		PaymentMethod: label,
	})
	if err != nil {
		s.log.Error("donation create failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return errorURL
	}

	s.log.Info("donation confirmed",
		zap.String("session_id", sessionID),
		zap.String("amount", donation.Amount))

	s.dispatcher.NotifyBusiness(ctx,
		"New donation received",
		fmt.Sprintf("Donor: %s\nAmount: $%s\nMessage: %s", donorName, donation.Amount, donation.Message))

	return successURL
}
