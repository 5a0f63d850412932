package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// CartItem is a server-side cart line. Price and quantity stay strings end to
// end; quantity is validated as a positive integer on write.
type CartItem struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	ProductID string       `json:"product_id" gorm:"type:text;not null"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Price     string       `json:"price" gorm:"type:text;not null"`
	Quantity  string       `json:"quantity" gorm:"type:text;not null"`
	ImageURL  string       `json:"image_url" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
}

func (CartItem) TableName() string { return "cart_items" }

var (
	ErrNotFound        = errors.New("cart_item_not_found")
	ErrInvalidProduct  = errors.New("invalid_product")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidQuantity = errors.New("invalid_quantity")
)

// Price and quantity arrive as JSON numbers or strings depending on the
// client; json.Number accepts both and preserves the literal.
type AddCartItemRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Quantity  json.Number `json:"quantity"`
	ImageURL  string      `json:"imageUrl"`
}

type UpdateQuantityRequest struct {
	Quantity json.Number `json:"quantity" binding:"required"`
}

type Service interface {
	Add(ctx context.Context, req AddCartItemRequest) (CartItem, error)
	List(ctx context.Context) ([]CartItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity string) (CartItem, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *CartItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (CartItem, error)
	List(ctx context.Context, db *gorm.DB) ([]CartItem, error)
	UpdateQuantity(ctx context.Context, db *gorm.DB, id snowflake.ID, quantity string) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	DeleteAll(ctx context.Context, db *gorm.DB) error
}
