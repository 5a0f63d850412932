package service

import (
	"context"
	"strings"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/donation/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("donation.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateDonationRequest) (domain.Donation, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Anonymous"
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return domain.Donation{}, domain.ErrInvalidAmount
	}

	item := domain.Donation{
		ID:            s.genID.Generate(),
		Name:          name,
		Email:         strings.TrimSpace(req.Email),
		Amount:        amount.StringFixed(2),
		Message:       strings.TrimSpace(req.Message),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.Donation{}, err
	}

	return item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Donation, error) {
	return s.repo.List(ctx, s.db)
}
