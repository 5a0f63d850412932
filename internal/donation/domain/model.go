package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Donation struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"type:text;not null"`
	Email         string       `json:"email" gorm:"type:text"`
	Amount        string       `json:"amount" gorm:"type:text;not null"`
	Message       string       `json:"message" gorm:"type:text"`
	PaymentMethod string       `json:"payment_method" gorm:"type:text"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null"`
}

func (Donation) TableName() string { return "donations" }

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidAmount = errors.New("invalid_amount")
)

type CreateDonationRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email"`
	Amount        string `json:"amount" binding:"required"`
	Message       string `json:"message"`
	PaymentMethod string `json:"paymentMethod"`
}

type Service interface {
	Create(ctx context.Context, req CreateDonationRequest) (Donation, error)
	// List returns the donor wall, largest amounts first.
	List(ctx context.Context) ([]Donation, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *Donation) error
	List(ctx context.Context, db *gorm.DB) ([]Donation, error)
}
