package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/order/domain"
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
		log:   p.Log.Named("order.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return domain.Order{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" || !strings.Contains(email, "@") {
		return domain.Order{}, domain.ErrInvalidEmail
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || amount.IsNegative() {
		return domain.Order{}, domain.ErrInvalidAmount
	}

	order := domain.Order{
		ID:            s.genID.Generate(),
		CustomerName:  name,
		CustomerEmail: email,
		Amount:        amount.StringFixed(2),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Description:   strings.TrimSpace(req.Description),
		Rating:        "",
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Order, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Order{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Order{}, err
	}
	if item == nil {
		return domain.Order{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) UpdateRating(ctx context.Context, id string, rating int) (domain.Order, error) {
	if rating < 1 || rating > 5 {
		return domain.Order{}, domain.ErrInvalidRating
	}

	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Order{}, err
	}

	affected, err := s.repo.UpdateRating(ctx, s.db, parsed, strconv.Itoa(rating))
	if err != nil {
		return domain.Order{}, err
	}
	if affected == 0 {
		return domain.Order{}, domain.ErrNotFound
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Order{}, err
	}
	if item == nil {
		return domain.Order{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
