package domain

import (
	"context"
	"time"
)

// ExpenseKind classifies expense categories
type ExpenseKind string

const (
	ExpenseKindFixed    ExpenseKind = "fixed"
	ExpenseKindVariable ExpenseKind = "variable"
)

// Category is unique by (Name, Type)
type Category struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Type        EntryType   `json:"type"`
	ExpenseType ExpenseKind `json:"expense_type,omitempty"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CategoryInput is the payload for creating or updating a category
type CategoryInput struct {
	Name        string      `json:"name"`
	Type        EntryType   `json:"type"`
	ExpenseType ExpenseKind `json:"expense_type,omitempty"`
}

// CategoryRepository defines the remote category operations.
// An empty entryType lists every category.
type CategoryRepository interface {
	List(ctx context.Context, entryType EntryType) ([]Category, error)
	Create(ctx context.Context, input CategoryInput) error
	Update(ctx context.Context, id int, input CategoryInput) error
	Delete(ctx context.Context, id int) error
	ForceDelete(ctx context.Context, id int) error
}
