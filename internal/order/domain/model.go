package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Order is a settled purchase. OrderNumber is the human-facing display
// identifier, issued exactly once at creation from a monotonic sequence;
// callers never supply it. Amount is an exact decimal string.
type Order struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	OrderNumber   int64        `json:"order_number" gorm:"not null;uniqueIndex"`
	CustomerName  string       `json:"customer_name" gorm:"type:text;not null"`
	CustomerEmail string       `json:"customer_email" gorm:"type:text;not null"`
	Amount        string       `json:"amount" gorm:"type:text;not null"`
	PaymentMethod string       `json:"payment_method" gorm:"type:text;not null"`
	Description   string       `json:"description" gorm:"type:text;not null"`
	Rating        string       `json:"rating" gorm:"type:text;not null"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null"`
}

func (Order) TableName() string { return "orders" }

var (
	ErrNotFound      = errors.New("order_not_found")
	ErrInvalidName   = errors.New("invalid_customer_name")
	ErrInvalidEmail  = errors.New("invalid_customer_email")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidRating = errors.New("invalid_rating")
)

type CreateOrderRequest struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
	Description   string `json:"description"`
}

type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateRating(ctx context.Context, id string, rating int) (Order, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	List(ctx context.Context, db *gorm.DB) ([]Order, error)
	UpdateRating(ctx context.Context, db *gorm.DB, id snowflake.ID, rating string) (int64, error)
}
