package domain

import (
	"context"
	"time"
)

// User is a household member entries and budgets are recorded for
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserInput is the payload for creating or updating a user
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// UserOption is a user entry for selectors
type UserOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	ID    int    `json:"id"`
}

// UserRepository defines the remote user operations
type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, input UserInput) error
	Update(ctx context.Context, id int, input UserInput) error
	Delete(ctx context.Context, id int) error
	ForceDelete(ctx context.Context, id int) error
	CheckUsage(ctx context.Context, id int) (bool, error)
}
