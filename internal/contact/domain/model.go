package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ContactSubmission struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Email     string       `json:"email" gorm:"type:text;not null"`
	Subject   string       `json:"subject" gorm:"type:text"`
	Message   string       `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidMessage = errors.New("invalid_message")
)

type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type Service interface {
	Create(ctx context.Context, req CreateContactRequest) (ContactSubmission, error)
	List(ctx context.Context) ([]ContactSubmission, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *ContactSubmission) error
	List(ctx context.Context, db *gorm.DB) ([]ContactSubmission, error)
}
