package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cartrepo "github.com/Blits-planeet/driftv8.xyz/internal/cart/repository"
	cartservice "github.com/Blits-planeet/driftv8.xyz/internal/cart/service"
	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	contactrepo "github.com/Blits-planeet/driftv8.xyz/internal/contact/repository"
	contactservice "github.com/Blits-planeet/driftv8.xyz/internal/contact/service"
	customorderrepo "github.com/Blits-planeet/driftv8.xyz/internal/customorder/repository"
	customorderservice "github.com/Blits-planeet/driftv8.xyz/internal/customorder/service"
	donationrepo "github.com/Blits-planeet/driftv8.xyz/internal/donation/repository"
	donationservice "github.com/Blits-planeet/driftv8.xyz/internal/donation/service"
	"github.com/Blits-planeet/driftv8.xyz/internal/estimate"
	ledgerrepo "github.com/Blits-planeet/driftv8.xyz/internal/eventledger/repository"
	ledgerservice "github.com/Blits-planeet/driftv8.xyz/internal/eventledger/service"
	"github.com/Blits-planeet/driftv8.xyz/internal/metrics"
	"github.com/Blits-planeet/driftv8.xyz/internal/migration"
	"github.com/Blits-planeet/driftv8.xyz/internal/notify"
	orderrepo "github.com/Blits-planeet/driftv8.xyz/internal/order/repository"
	orderservice "github.com/Blits-planeet/driftv8.xyz/internal/order/service"
	"github.com/Blits-planeet/driftv8.xyz/internal/payment/adapters"
	paymentdomain "github.com/Blits-planeet/driftv8.xyz/internal/payment/domain"
	paymentservice "github.com/Blits-planeet/driftv8.xyz/internal/payment/service"
	"github.com/Blits-planeet/driftv8.xyz/internal/ratelimit"
	"github.com/Blits-planeet/driftv8.xyz/internal/server"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeProvider struct {
	event   *paymentdomain.CheckoutEvent
	session paymentdomain.CheckoutSession
	err     error
}

func (f *fakeProvider) Name() string { return "stripe" }

func (f *fakeProvider) VerifyAndParse(ctx context.Context, payload []byte, headers http.Header) (*paymentdomain.CheckoutEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	event := *f.event
	return &event, nil
}

func (f *fakeProvider) CreateCheckout(ctx context.Context, params paymentdomain.CheckoutParams) (paymentdomain.CheckoutSession, error) {
	return paymentdomain.CheckoutSession{ID: "cs_new", URL: "https://pay.example/cs_new"}, nil
}

func (f *fakeProvider) GetSession(ctx context.Context, sessionID string) (paymentdomain.CheckoutSession, error) {
	return f.session, nil
}

func newTestServer(t *testing.T, provider paymentdomain.Provider) (*gorm.DB, http.Handler) {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := migration.RunSQLiteSchema(db); err != nil {
		t.Fatalf("schema: %v", err)
	}

	node, err := snowflake.NewNode(9)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	log := zap.NewNop()
	m := metrics.New()
	holder := &config.StoreConfigHolder{}
	cfg := config.Config{
		FrontendURL: "http://front.example",
		PublicURL:   "http://api.example",
	}

	dispatcher := notify.NewDispatcher(notify.DispatcherParams{
		Log:      log,
		Provider: &notify.NoOpProvider{},
		Cfg:      cfg,
		Holder:   holder,
		Metrics:  m,
	})

	orders := orderservice.New(orderservice.Params{
		DB: db, Log: log, GenID: node, Repo: orderrepo.Provide(),
	})
	customOrders := customorderservice.New(customorderservice.Params{
		DB: db, Log: log, GenID: node, Repo: customorderrepo.Provide(),
		Estimator: estimate.New(log, holder), Dispatcher: dispatcher,
	})
	contacts := contactservice.New(contactservice.Params{
		DB: db, Log: log, GenID: node, Repo: contactrepo.Provide(), Dispatcher: dispatcher,
	})
	carts := cartservice.New(cartservice.Params{
		DB: db, Log: log, GenID: node, Repo: cartrepo.Provide(),
	})
	donations := donationservice.New(donationservice.Params{
		DB: db, Log: log, GenID: node, Repo: donationrepo.Provide(),
	})

	var providers []paymentdomain.Provider
	if provider != nil {
		providers = append(providers, provider)
	}
	payments := paymentservice.New(paymentservice.Params{
		Log:        log,
		Cfg:        cfg,
		Holder:     holder,
		Adapters:   adapters.NewRegistry(providers...),
		Ledger:     ledgerservice.New(ledgerservice.Params{Log: log, Store: ledgerrepo.Provide(db)}),
		Orders:     orders,
		Donations:  donations,
		Dispatcher: dispatcher,
		Metrics:    m,
	})

	srv := server.NewServer(server.Params{
		Gin:             server.NewEngine(cfg, log, m),
		Cfg:             cfg,
		OrderSvc:        orders,
		CustomOrderSvc:  customOrders,
		ContactSvc:      contacts,
		CartSvc:         carts,
		DonationSvc:     donations,
		PaymentSvc:      payments,
		CheckoutLimiter: ratelimit.NewLimiter(log, nil, 1, 5),
	})

	return db, srv.Engine()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}

func TestCartLifecycle(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/cart", map[string]any{
		"productId": "prod_tote",
		"name":      "Canvas Tote",
		"price":     "25.50",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: want 201, got %d body %s", rec.Code, rec.Body.String())
	}

	var item struct {
		ID       string `json:"id"`
		Quantity string `json:"quantity"`
	}
	decode(t, rec, &item)
	if item.Quantity != "1" {
		t.Fatalf("want default quantity 1, got %q", item.Quantity)
	}

	rec = do(t, h, http.MethodGet, "/api/cart", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: want 200, got %d", rec.Code)
	}
	var list struct {
		Items []json.RawMessage `json:"items"`
	}
	decode(t, rec, &list)
	if len(list.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(list.Items))
	}

	rec = do(t, h, http.MethodPatch, "/api/cart/"+item.ID, map[string]any{"quantity": "3"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: want 200, got %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodDelete, "/api/cart/"+item.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: want 200, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodDelete, "/api/cart/"+item.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("repeat remove: want 404, got %d", rec.Code)
	}
}

func TestCartMinimalBodyAndNumericQuantity(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/cart", map[string]any{"productId": "p1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: want 201, got %d body %s", rec.Code, rec.Body.String())
	}

	var item struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
	}
	decode(t, rec, &item)
	if item.Quantity != "1" {
		t.Fatalf("want default quantity 1, got %q", item.Quantity)
	}
	if item.Name != "p1" {
		t.Fatalf("want name defaulted to product id, got %q", item.Name)
	}

	// quantity as a bare JSON number
	rec = do(t, h, http.MethodPatch, "/api/cart/"+item.ID, map[string]any{"quantity": 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("numeric patch: want 200, got %d body %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		Quantity string `json:"quantity"`
	}
	decode(t, rec, &updated)
	if updated.Quantity != "3" {
		t.Fatalf("want quantity 3, got %q", updated.Quantity)
	}

	rec = do(t, h, http.MethodDelete, "/api/cart/"+item.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: want 200, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/cart", nil)
	var list struct {
		Items []json.RawMessage `json:"items"`
	}
	decode(t, rec, &list)
	if len(list.Items) != 0 {
		t.Fatalf("want empty cart, got %d items", len(list.Items))
	}
}

func TestCartRejectsMissingProduct(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/cart", map[string]any{
		"name":  "Canvas Tote",
		"price": "25.50",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestOrderRatingOverHTTP(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/orders", map[string]any{
		"customerName":  "Dana",
		"customerEmail": "dana@example.com",
		"amount":        "25.50",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: want 201, got %d body %s", rec.Code, rec.Body.String())
	}

	var order struct {
		ID string `json:"id"`
	}
	decode(t, rec, &order)

	rec = do(t, h, http.MethodPatch, "/api/orders/"+order.ID+"/rating", map[string]any{"rating": 7})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range rating: want 400, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPatch, "/api/orders/"+order.ID+"/rating", map[string]any{"rating": 4})
	if rec.Code != http.StatusOK {
		t.Fatalf("valid rating: want 200, got %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPatch, "/api/orders/987654321/rating", map[string]any{"rating": 4})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown order: want 404, got %d", rec.Code)
	}
}

func TestContactValidationOverHTTP(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Dana",
		"email":   "dana@example.com",
		"message": "  ",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestCheckoutErrors(t *testing.T) {
	t.Run("invalid amount", func(t *testing.T) {
		_, h := newTestServer(t, &fakeProvider{})
		rec := do(t, h, http.MethodPost, "/api/checkout", map[string]any{"amount": "-5"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("no provider configured", func(t *testing.T) {
		_, h := newTestServer(t, nil)
		rec := do(t, h, http.MethodPost, "/api/checkout", map[string]any{"amount": "10"})
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("want 503, got %d body %s", rec.Code, rec.Body.String())
		}
	})
}

func TestWebhookOverHTTP(t *testing.T) {
	event := &paymentdomain.CheckoutEvent{
		Provider:      "stripe",
		EventID:       "evt_http_1",
		SessionID:     "cs_http_1",
		CustomerName:  "Dana",
		CustomerEmail: "dana@example.com",
		AmountTotal:   2550,
		Currency:      "usd",
		Metadata:      map[string]string{"kind": "order"},
		Method:        paymentdomain.MethodDetail{Type: "card"},
	}

	db, h := newTestServer(t, &fakeProvider{event: event})

	for i := 0; i < 3; i++ {
		rec := do(t, h, http.MethodPost, "/api/payments/webhooks/stripe", map[string]any{})
		if rec.Code != http.StatusOK {
			t.Fatalf("delivery %d: want 200, got %d body %s", i, rec.Code, rec.Body.String())
		}
		var ack struct {
			Received bool `json:"received"`
		}
		decode(t, rec, &ack)
		if !ack.Received {
			t.Fatalf("delivery %d: missing ack", i)
		}
	}

	var count int64
	if err := db.Raw("SELECT COUNT(1) FROM orders").Scan(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 1 {
		t.Fatalf("want 1 order after retries, got %d", count)
	}
}

func TestWebhookBadSignatureOverHTTP(t *testing.T) {
	_, h := newTestServer(t, &fakeProvider{err: paymentdomain.ErrInvalidSignature})

	rec := do(t, h, http.MethodPost, "/api/payments/webhooks/stripe", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestDonationSuccessRedirect(t *testing.T) {
	session := paymentdomain.CheckoutSession{
		ID:            "cs_donation_http",
		Status:        "complete",
		PaymentStatus: "paid",
		AmountTotal:   5000,
		Currency:      "usd",
		Metadata:      map[string]string{"kind": "donation", "donor_name": "Sam"},
	}
	db, h := newTestServer(t, &fakeProvider{session: session})

	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodGet, "/api/donations/success?session_id=cs_donation_http", nil)
		if rec.Code != http.StatusFound {
			t.Fatalf("visit %d: want 302, got %d", i, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "http://front.example/donate?status=success" {
			t.Fatalf("visit %d: want success redirect, got %q", i, loc)
		}
	}

	var count int64
	if err := db.Raw("SELECT COUNT(1) FROM donations").Scan(&count).Error; err != nil {
		t.Fatalf("count donations: %v", err)
	}
	if count != 1 {
		t.Fatalf("want 1 donation after repeat visits, got %d", count)
	}
}
