package domain

import (
	"context"
	"time"
)

// DepositPath is the income-side counterpart of a payment method
type DepositPath struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DepositPathInput is the payload for creating or updating a deposit path
type DepositPathInput struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// DepositPathRepository defines the remote deposit path operations
type DepositPathRepository interface {
	List(ctx context.Context) ([]DepositPath, error)
	Create(ctx context.Context, input DepositPathInput) error
	Update(ctx context.Context, id int, input DepositPathInput) error
	Delete(ctx context.Context, id int) error
	ForceDelete(ctx context.Context, id int) error
}
