package repository

import (
	"context"
	"errors"

	"github.com/Blits-planeet/driftv8.xyz/internal/order/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// Insert persists the order and assigns its display number inside one
// transaction. The row lock taken by the sequence update keeps numbers
// strictly increasing under concurrent creation.
func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`UPDATE order_sequences SET value = value + 1 WHERE name = 'orders'`,
		).Error; err != nil {
			return err
		}

		var number int64
		if err := tx.Raw(
			`SELECT value FROM order_sequences WHERE name = 'orders'`,
		).Scan(&number).Error; err != nil {
			return err
		}
		if number == 0 {
			return errors.New("order_sequence_missing")
		}
		order.OrderNumber = number

		return tx.Exec(
			`INSERT INTO orders (
				id, order_number, customer_name, customer_email, amount,
				payment_method, description, rating, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			order.ID,
			order.OrderNumber,
			order.CustomerName,
			order.CustomerEmail,
			order.Amount,
			order.PaymentMethod,
			order.Description,
			order.Rating,
			order.CreatedAt,
		).Error
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var item domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, order_number, customer_name, customer_email, amount,
			payment_method, description, rating, created_at
		 FROM orders WHERE id = ? LIMIT 1`,
		id,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Order, error) {
	var items []domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, order_number, customer_name, customer_email, amount,
			payment_method, description, rating, created_at
		 FROM orders
		 ORDER BY created_at DESC, id DESC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateRating(ctx context.Context, db *gorm.DB, id snowflake.ID, rating string) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE orders SET rating = ? WHERE id = ?`,
		rating,
		id,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
