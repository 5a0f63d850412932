package estimate

import (
	"context"
	"strings"

	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Estimator produces a price estimate for a custom-order request. The
// default implementation is deterministic; a model-backed enrichment can be
// swapped in behind the same seam.
type Estimator interface {
	Estimate(ctx context.Context, category string, description string) string
}

type tableEstimator struct {
	log    *zap.Logger
	holder *config.StoreConfigHolder
}

func New(log *zap.Logger, holder *config.StoreConfigHolder) Estimator {
	return &tableEstimator{
		log:    log.Named("estimate"),
		holder: holder,
	}
}

// Estimate looks up the category base price and nudges it by description
// length, so longer briefs estimate higher. Always returns a usable value.
func (e *tableEstimator) Estimate(_ context.Context, category string, description string) string {
	cfg := e.holder.Current()

	base := cfg.DefaultBasePrice
	if v, ok := cfg.CategoryBasePrices[strings.ToLower(strings.TrimSpace(category))]; ok && v != "" {
		base = v
	}

	price, err := decimal.NewFromString(base)
	if err != nil {
		e.log.Warn("invalid base price in store config", zap.String("value", base))
		price = decimal.NewFromInt(50)
	}

	words := len(strings.Fields(description))
	if words > 50 {
		price = price.Mul(decimal.NewFromFloat(1.5))
	} else if words > 20 {
		price = price.Mul(decimal.NewFromFloat(1.2))
	}

	return price.StringFixed(2)
}
