package repository

import (
	"context"
	"time"

	"github.com/Blits-planeet/driftv8.xyz/internal/eventledger/domain"
	"github.com/Blits-planeet/driftv8.xyz/pkg/db"
	"gorm.io/gorm"
)

type store struct {
	db *gorm.DB
}

// Provide returns the durable ledger store backed by the processed_events
// table. The primary key enforces idempotency at the storage layer as a
// second line of defense against concurrent deliveries.
func Provide(conn *gorm.DB) domain.Store {
	return &store{db: conn}
}

func (s *store) Has(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM processed_events WHERE event_id = ?`,
		eventID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *store) Add(ctx context.Context, eventID string) (bool, error) {
	res := s.db.WithContext(ctx).Exec(
		`INSERT INTO processed_events (event_id, created_at)
		 VALUES (?, ?)
		 ON CONFLICT (event_id) DO NOTHING`,
		eventID,
		time.Now().UTC(),
	)
	if res.Error != nil {
		// A uniqueness conflict means another caller already inserted the
		// same id; the ledger's job is done either way.
		if db.IsDuplicateKeyErr(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
