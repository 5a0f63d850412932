package notify

import (
	"context"
	"html"
	"strings"

	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	"github.com/Blits-planeet/driftv8.xyz/internal/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Dispatcher sends transactional mail best-effort: failures are logged and
// swallowed so a broken mail relay never rolls back an order.
type Dispatcher struct {
	log      *zap.Logger
	provider Provider
	cfg      config.Config
	holder   *config.StoreConfigHolder
	metrics  *metrics.Metrics
}

type DispatcherParams struct {
	fx.In

	Log      *zap.Logger
	Provider Provider
	Cfg      config.Config
	Holder   *config.StoreConfigHolder
	Metrics  *metrics.Metrics
}

func NewDispatcher(p DispatcherParams) *Dispatcher {
	return &Dispatcher{
		log:      p.Log.Named("notify"),
		provider: p.Provider,
		cfg:      p.Cfg,
		holder:   p.Holder,
		metrics:  p.Metrics,
	}
}

// Notify sends a plain-text message to a single recipient, synthesizing the
// HTML part from the text.
func (d *Dispatcher) Notify(ctx context.Context, to string, subject string, text string) {
	to = strings.TrimSpace(to)
	if to == "" {
		return
	}
	d.send(ctx, Message{
		To:      []string{to},
		Subject: subject,
		Text:    text,
		HTML:    textToHTML(text),
	})
}

// NotifyBusiness fans out to every configured business recipient.
func (d *Dispatcher) NotifyBusiness(ctx context.Context, subject string, text string) {
	recipients := d.businessRecipients()
	if len(recipients) == 0 {
		d.log.Debug("no business recipients configured", zap.String("subject", subject))
		return
	}
	d.send(ctx, Message{
		To:      recipients,
		Subject: subject,
		Text:    text,
		HTML:    textToHTML(text),
	})
}

func (d *Dispatcher) send(ctx context.Context, msg Message) {
	if err := d.provider.Send(ctx, msg); err != nil {
		d.metrics.ObserveEmail("failed")
		d.log.Error("email send failed",
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return
	}
	d.metrics.ObserveEmail("sent")
}

func (d *Dispatcher) businessRecipients() []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(addr string) {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			return
		}
		key := strings.ToLower(addr)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, addr)
	}
	for _, addr := range d.cfg.BusinessEmails {
		add(addr)
	}
	for _, addr := range d.holder.Current().NotificationRecipients {
		add(addr)
	}
	return out
}

func textToHTML(text string) string {
	escaped := html.EscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}
