package repository

import (
	"context"

	"github.com/Blits-planeet/driftv8.xyz/internal/contact/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.ContactSubmission) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO contact_submissions (id, name, email, subject, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		item.Email,
		item.Subject,
		item.Message,
		item.CreatedAt,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.ContactSubmission, error) {
	var items []domain.ContactSubmission
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, subject, message, created_at
		 FROM contact_submissions
		 ORDER BY created_at DESC, id DESC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
