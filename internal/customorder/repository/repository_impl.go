package repository

import (
	"context"

	"github.com/Blits-planeet/driftv8.xyz/internal/customorder/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.CustomOrder) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO custom_orders (
			id, name, email, phone, category, description, estimated_price,
			payment_method, image_urls, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		item.Email,
		item.Phone,
		item.Category,
		item.Description,
		item.EstimatedPrice,
		item.PaymentMethod,
		item.ImageURLs,
		item.Status,
		item.CreatedAt,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.CustomOrder, error) {
	var items []domain.CustomOrder
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, phone, category, description, estimated_price,
			payment_method, image_urls, status, created_at
		 FROM custom_orders
		 ORDER BY created_at DESC, id DESC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
