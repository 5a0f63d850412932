package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/contact/domain"
	"github.com/Blits-planeet/driftv8.xyz/internal/notify"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	Dispatcher *notify.Dispatcher
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	dispatcher *notify.Dispatcher
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("contact.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		dispatcher: p.Dispatcher,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateContactRequest) (domain.ContactSubmission, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ContactSubmission{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.ContactSubmission{}, domain.ErrInvalidEmail
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return domain.ContactSubmission{}, domain.ErrInvalidMessage
	}

	item := domain.ContactSubmission{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Subject:   strings.TrimSpace(req.Subject),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.ContactSubmission{}, err
	}

	subject := item.Subject
	if subject == "" {
		subject = "New contact submission"
	}
	s.dispatcher.NotifyBusiness(ctx, subject,
		fmt.Sprintf("From: %s <%s>\n\n%s", item.Name, item.Email, item.Message))

	return item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.ContactSubmission, error) {
	return s.repo.List(ctx, s.db)
}
