package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/customorder/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/estimate"
	"github.com/Blits-planeet/driftv8.xyz/internal/notify"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	Estimator  estimate.Estimator
	Dispatcher *notify.Dispatcher
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	estimator  estimate.Estimator
	dispatcher *notify.Dispatcher
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("customorder.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		estimator:  p.Estimator,
		dispatcher: p.Dispatcher,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomOrderRequest) (domain.CustomOrder, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CustomOrder{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.CustomOrder{}, domain.ErrInvalidEmail
	}

	price := normalizePrice(req.EstimatedPrice)
	if price == "" {
		price = s.estimator.Estimate(ctx, req.Category, req.Description)
	}

	images, err := json.Marshal(cleanURLs(req.ImageURLs))
	if err != nil {
		images = []byte("[]")
	}

	item := domain.CustomOrder{
		ID:             s.genID.Generate(),
		Name:           name,
		Email:          email,
		Phone:          strings.TrimSpace(req.Phone),
		Category:       strings.TrimSpace(req.Category),
		Description:    strings.TrimSpace(req.Description),
		EstimatedPrice: price,
		PaymentMethod:  strings.TrimSpace(req.PaymentMethod),
		ImageURLs:      datatypes.JSON(images),
		Status:         domain.StatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.CustomOrder{}, err
	}

	s.dispatcher.Notify(ctx, item.Email,
		"We received your custom order request",
		fmt.Sprintf("Hi %s,\n\nThanks for your request! Estimated price: $%s.\nWe'll follow up shortly.",
			item.Name, item.EstimatedPrice))
	s.dispatcher.NotifyBusiness(ctx, "New custom order request",
		fmt.Sprintf("From: %s <%s>\nCategory: %s\nEstimated price: $%s\n\n%s",
			item.Name, item.Email, item.Category, item.EstimatedPrice, item.Description))

	return item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.CustomOrder, error) {
	return s.repo.List(ctx, s.db)
}

func normalizePrice(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return ""
	}
	return price.StringFixed(2)
}

func cleanURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		out = append(out, u)
	}
	return out
}
