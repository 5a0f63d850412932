package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const StatusPending = "pending"

// CustomOrder is a made-to-order request. Lifecycle beyond "pending" is
// handled outside this service.
type CustomOrder struct {
	ID             snowflake.ID   `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"type:text;not null"`
	Email          string         `json:"email" gorm:"type:text;not null"`
	Phone          string         `json:"phone" gorm:"type:text"`
	Category       string         `json:"category" gorm:"type:text"`
	Description    string         `json:"description" gorm:"type:text"`
	EstimatedPrice string         `json:"estimated_price" gorm:"type:text"`
	PaymentMethod  string         `json:"payment_method" gorm:"type:text"`
	ImageURLs      datatypes.JSON `json:"image_urls" gorm:"type:jsonb"`
	Status         string         `json:"status" gorm:"type:text;not null"`
	CreatedAt      time.Time      `json:"created_at" gorm:"not null"`
}

func (CustomOrder) TableName() string { return "custom_orders" }

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
)

type CreateCustomOrderRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required"`
	Phone          string   `json:"phone"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	EstimatedPrice string   `json:"estimatedPrice"`
	PaymentMethod  string   `json:"paymentMethod"`
	ImageURLs      []string `json:"imageUrls"`
}

type Service interface {
	Create(ctx context.Context, req CreateCustomOrderRequest) (CustomOrder, error)
	List(ctx context.Context) ([]CustomOrder, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *CustomOrder) error
	List(ctx context.Context, db *gorm.DB) ([]CustomOrder, error)
}
