package domain

import (
	"context"
	"time"
)

// Keyword is a per-category label whose usage count is bumped on upsert
type Keyword struct {
	ID         int       `json:"id"`
	CategoryID int       `json:"category_id"`
	Name       string    `json:"name"`
	UsageCount int       `json:"usage_count"`
	LastUsed   time.Time `json:"last_used"`
	CreatedAt  time.Time `json:"created_at"`
}

// KeywordSuggestion is an autocomplete candidate
type KeywordSuggestion struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
}

// KeywordInput is the payload for upserting or updating a keyword
type KeywordInput struct {
	CategoryID int    `json:"category_id"`
	Name       string `json:"name"`
}

// DefaultSuggestionLimit is used when a caller passes a non-positive limit
const DefaultSuggestionLimit = 10

// KeywordRepository defines the remote keyword operations
type KeywordRepository interface {
	ListByCategory(ctx context.Context, categoryID int) ([]Keyword, error)
	Suggestions(ctx context.Context, categoryID int, query string, limit int) ([]KeywordSuggestion, error)
	Upsert(ctx context.Context, input KeywordInput) error
	Update(ctx context.Context, id int, input KeywordInput) error
	Delete(ctx context.Context, id int) error
	ForceDelete(ctx context.Context, id int) error
}
