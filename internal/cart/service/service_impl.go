package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/cart/domain"
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
		log:   p.Log.Named("cart.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Add(ctx context.Context, req domain.AddCartItemRequest) (domain.CartItem, error) {
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return domain.CartItem{}, domain.ErrInvalidProduct
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = productID
	}

	priceRaw := strings.TrimSpace(req.Price.String())
	if priceRaw == "" {
		priceRaw = "0"
	}
	price, err := decimal.NewFromString(priceRaw)
	if err != nil || price.IsNegative() {
		return domain.CartItem{}, domain.ErrInvalidPrice
	}

	quantity := strings.TrimSpace(req.Quantity.String())
	if quantity == "" {
		quantity = "1"
	}
	if _, err := parseQuantity(quantity); err != nil {
		return domain.CartItem{}, err
	}

	item := domain.CartItem{
		ID:        s.genID.Generate(),
		ProductID: productID,
		Name:      name,
		Price:     price.StringFixed(2),
		Quantity:  quantity,
		ImageURL:  strings.TrimSpace(req.ImageURL),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.CartItem{}, err
	}

	return item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.CartItem, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity string) (domain.CartItem, error) {
	itemID, err := parseID(id)
	if err != nil {
		return domain.CartItem{}, domain.ErrNotFound
	}

	quantity = strings.TrimSpace(quantity)
	if _, err := parseQuantity(quantity); err != nil {
		return domain.CartItem{}, err
	}

	affected, err := s.repo.UpdateQuantity(ctx, s.db, itemID, quantity)
	if err != nil {
		return domain.CartItem{}, err
	}
	if affected == 0 {
		return domain.CartItem{}, domain.ErrNotFound
	}

	return s.repo.FindByID(ctx, s.db, itemID)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	itemID, err := parseID(id)
	if err != nil {
		return domain.ErrNotFound
	}

	affected, err := s.repo.Delete(ctx, s.db, itemID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx, s.db)
}

func parseID(raw string) (snowflake.ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	return snowflake.ParseInt64(n), nil
}

func parseQuantity(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	return n, nil
}
