package domain

import (
	"context"
	"time"
)

// ProcessedEvent marks a provider event id that already produced its side
// effect. Existence of the row is the idempotency guarantee; it is written
// before any side-effecting work begins.
type ProcessedEvent struct {
	EventID   string    `json:"event_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

func (ProcessedEvent) TableName() string { return "processed_events" }

// Store is one backing implementation of the ledger (durable or in-process).
// Add must treat an already-present id as success with inserted=false.
type Store interface {
	Has(ctx context.Context, eventID string) (bool, error)
	Add(ctx context.Context, eventID string) (inserted bool, err error)
}

// Service is the ledger consulted by the payment pipeline.
//
// Claim atomically records the marker and reports whether this caller was
// the first. MarkProcessed is the fire-and-forget form; it never surfaces
// storage failures to the caller, because skipping idempotency protection is
// worse than degraded protection.
type Service interface {
	IsProcessed(ctx context.Context, eventID string) bool
	Claim(ctx context.Context, eventID string) bool
	MarkProcessed(ctx context.Context, eventID string)
}
