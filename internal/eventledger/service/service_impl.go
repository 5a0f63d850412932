package service

import (
	"context"
	"sync"

	"github.com/Blits-planeet/driftv8.xyz/internal/eventledger/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	Store domain.Store
}

type Service struct {
	log   *zap.Logger
	store domain.Store

	// shadow holds ids claimed while the backing store was unreachable, so
	// this process never reprocesses an event it already handled.
	mu     sync.Mutex
	shadow map[string]struct{}
}

func New(p Params) domain.Service {
	return &Service{
		log:    p.Log.Named("eventledger"),
		store:  p.Store,
		shadow: map[string]struct{}{},
	}
}

func (s *Service) IsProcessed(ctx context.Context, eventID string) bool {
	if s.shadowHas(eventID) {
		return true
	}
	has, err := s.store.Has(ctx, eventID)
	if err != nil {
		s.log.Warn("ledger lookup failed, trusting in-process record only",
			zap.String("event_id", eventID), zap.Error(err))
		return false
	}
	return has
}

func (s *Service) Claim(ctx context.Context, eventID string) bool {
	if s.shadowHas(eventID) {
		return false
	}
	inserted, err := s.store.Add(ctx, eventID)
	if err != nil {
		won := s.shadowAdd(eventID)
		s.log.Warn("ledger write failed, falling back to in-process record",
			zap.String("event_id", eventID), zap.Error(err))
		return won
	}
	return inserted
}

func (s *Service) MarkProcessed(ctx context.Context, eventID string) {
	s.Claim(ctx, eventID)
}

func (s *Service) shadowHas(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.shadow[eventID]
	return ok
}

func (s *Service) shadowAdd(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shadow[eventID]; ok {
		return false
	}
	s.shadow[eventID] = struct{}{}
	return true
}
