package repository

import (
	"context"

	"github.com/Blits-planeet/driftv8.xyz/internal/donation/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.Donation) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO donations (id, name, email, amount, message, payment_method, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		item.Email,
		item.Amount,
		item.Message,
		item.PaymentMethod,
		item.CreatedAt,
	).Error
}

// Amounts are stored as fixed two-decimal strings, so the numeric cast keeps
// ordering correct past string-compare pitfalls ("9.00" vs "10.00").
func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Donation, error) {
	var items []domain.Donation
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, amount, message, payment_method, created_at
		 FROM donations
		 ORDER BY CAST(amount AS DECIMAL) DESC, created_at DESC, id DESC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
