package repository

import (
	"context"
	"errors"

	"github.com/Blits-planeet/driftv8.xyz/internal/cart/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.CartItem) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO cart_items (id, product_id, name, price, quantity, image_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.ProductID,
		item.Name,
		item.Price,
		item.Quantity,
		item.ImageURL,
		item.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (domain.CartItem, error) {
	var item domain.CartItem
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, name, price, quantity, image_url, created_at
		 FROM cart_items WHERE id = ?`, id,
	).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CartItem{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.CartItem{}, err
	}
	return item, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, name, price, quantity, image_url, created_at
		 FROM cart_items
		 ORDER BY created_at ASC, id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateQuantity(ctx context.Context, db *gorm.DB, id snowflake.ID, quantity string) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE cart_items SET quantity = ? WHERE id = ?`, quantity, id,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM cart_items WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *repo) DeleteAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Exec(`DELETE FROM cart_items`).Error
}
