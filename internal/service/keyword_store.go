package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peksoon/account/internal/domain"
)

// KeywordStore caches keywords per category. Fetches replace only the slice
// of the requested category.
type KeywordStore struct {
	repo   domain.KeywordRepository
	cache  cache[domain.Keyword]
	logger zerolog.Logger
}

// NewKeywordStore creates a new KeywordStore
func NewKeywordStore(repo domain.KeywordRepository, logger zerolog.Logger) *KeywordStore {
	return &KeywordStore{
		repo:   repo,
		logger: logger.With().Str("component", "keyword_store").Logger(),
	}
}

// FetchByCategory replaces the cached keywords of one category
func (s *KeywordStore) FetchByCategory(ctx context.Context, categoryID int) ([]domain.Keyword, error) {
	keywords, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error().Err(err).Int("category_id", categoryID).Msg("Failed to fetch keywords")
		return nil, fmt.Errorf("fetch keywords of category %d: %w", categoryID, err)
	}

	s.cache.modify(func(items []domain.Keyword) []domain.Keyword {
		kept := make([]domain.Keyword, 0, len(items)+len(keywords))
		for _, k := range items {
			if k.CategoryID != categoryID {
				kept = append(kept, k)
			}
		}
		return append(kept, keywords...)
	})
	return keywords, nil
}

// Create upserts a keyword and refreshes its category
func (s *KeywordStore) Create(ctx context.Context, input domain.KeywordInput) error {
	if err := s.repo.Upsert(ctx, input); err != nil {
		s.logger.Error().Err(err).Int("category_id", input.CategoryID).Str("name", input.Name).Msg("Failed to upsert keyword")
		return fmt.Errorf("upsert keyword: %w", err)
	}
	_, err := s.FetchByCategory(ctx, input.CategoryID)
	return err
}

// Update renames or moves a keyword and refreshes the category that held it
// as well as the target category
func (s *KeywordStore) Update(ctx context.Context, id int, input domain.KeywordInput) error {
	owner, owned := s.ByID(id)
	if err := s.repo.Update(ctx, id, input); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to update keyword")
		return fmt.Errorf("update keyword %d: %w", id, err)
	}

	var categories []int
	if owned {
		categories = append(categories, owner.CategoryID)
	}
	if input.CategoryID > 0 && (!owned || input.CategoryID != owner.CategoryID) {
		categories = append(categories, input.CategoryID)
	}
	for _, categoryID := range categories {
		if _, err := s.FetchByCategory(ctx, categoryID); err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a keyword and drops it from the cache
func (s *KeywordStore) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to delete keyword")
		return fmt.Errorf("delete keyword %d: %w", id, err)
	}
	return s.refetchOwner(ctx, id)
}

// ForceDelete deletes a keyword that is still referenced by entries
func (s *KeywordStore) ForceDelete(ctx context.Context, id int) error {
	if err := s.repo.ForceDelete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to force delete keyword")
		return fmt.Errorf("force delete keyword %d: %w", id, err)
	}
	return s.refetchOwner(ctx, id)
}

// refetchOwner refreshes the category that held keyword id, or just drops
// the keyword when it was never cached
func (s *KeywordStore) refetchOwner(ctx context.Context, id int) error {
	owner, ok := s.ByID(id)
	if !ok {
		return nil
	}
	_, err := s.FetchByCategory(ctx, owner.CategoryID)
	return err
}

// Suggestions returns autocomplete candidates. Failures yield an empty list.
func (s *KeywordStore) Suggestions(ctx context.Context, categoryID int, query string, limit int) []domain.KeywordSuggestion {
	suggestions, err := s.repo.Suggestions(ctx, categoryID, query, limit)
	if err != nil {
		s.logger.Warn().Err(err).Int("category_id", categoryID).Str("query", query).Msg("Keyword suggestions unavailable")
		return []domain.KeywordSuggestion{}
	}
	return suggestions
}

// Use records a keyword use by upserting it. Failures are logged and ignored.
func (s *KeywordStore) Use(ctx context.Context, categoryID int, name string) {
	if categoryID <= 0 || name == "" {
		return
	}
	if err := s.Create(ctx, domain.KeywordInput{CategoryID: categoryID, Name: name}); err != nil {
		s.logger.Warn().Err(err).Int("category_id", categoryID).Str("name", name).Msg("Failed to record keyword use")
	}
}

// All returns every cached keyword
func (s *KeywordStore) All() []domain.Keyword {
	return s.cache.snapshot()
}

// ByCategory returns the cached keywords of one category
func (s *KeywordStore) ByCategory(categoryID int) []domain.Keyword {
	return s.cache.filter(func(k domain.Keyword) bool { return k.CategoryID == categoryID })
}

// ByID looks up a cached keyword
func (s *KeywordStore) ByID(id int) (domain.Keyword, bool) {
	return s.cache.find(func(k domain.Keyword) bool { return k.ID == id })
}

// ByName looks up a cached keyword by exact name within a category
func (s *KeywordStore) ByName(categoryID int, name string) (domain.Keyword, bool) {
	return s.cache.find(func(k domain.Keyword) bool {
		return k.CategoryID == categoryID && k.Name == name
	})
}

// ClearCategory drops the cached keywords of one category
func (s *KeywordStore) ClearCategory(categoryID int) {
	s.cache.modify(func(items []domain.Keyword) []domain.Keyword {
		kept := items[:0:0]
		for _, k := range items {
			if k.CategoryID != categoryID {
				kept = append(kept, k)
			}
		}
		return kept
	})
}

// Clear empties the cache
func (s *KeywordStore) Clear() {
	s.cache.clear()
}
