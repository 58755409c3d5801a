package domain

import (
	"context"
	"time"
)

// PaymentMethod is either a root group (ParentID nil) or a child instrument
type PaymentMethod struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	ParentID  *int            `json:"parent_id"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Children  []PaymentMethod `json:"children,omitempty"`
}

// PaymentMethodInput is the payload for creating or updating a payment method
type PaymentMethodInput struct {
	Name     string `json:"name"`
	ParentID *int   `json:"parent_id"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// Option is a selectable reference shown in entry forms
type Option struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	IsActive bool   `json:"isActive"`
}

// PaymentMethodRepository defines the remote payment method operations
type PaymentMethodRepository interface {
	List(ctx context.Context) ([]PaymentMethod, error)
	Create(ctx context.Context, input PaymentMethodInput) error
	Update(ctx context.Context, id int, input PaymentMethodInput) error
	Delete(ctx context.Context, id int) error
	ForceDelete(ctx context.Context, id int) error
}
