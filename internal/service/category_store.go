package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peksoon/account/internal/domain"
)

// CategoryStore caches categories and resolves them by (name, type)
type CategoryStore struct {
	repo   domain.CategoryRepository
	cache  cache[domain.Category]
	logger zerolog.Logger
}

// NewCategoryStore creates a new CategoryStore
func NewCategoryStore(repo domain.CategoryRepository, logger zerolog.Logger) *CategoryStore {
	return &CategoryStore{
		repo:   repo,
		logger: logger.With().Str("component", "category_store").Logger(),
	}
}

// FetchAll replaces the cache with the server's categories.
// An empty entryType fetches both types.
func (s *CategoryStore) FetchAll(ctx context.Context, entryType domain.EntryType) ([]domain.Category, error) {
	categories, err := s.repo.List(ctx, entryType)
	if err != nil {
		s.logger.Error().Err(err).Str("type", string(entryType)).Msg("Failed to fetch categories")
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	s.cache.replace(categories)
	return s.cache.snapshot(), nil
}

// Create creates a category and refreshes the cache
func (s *CategoryStore) Create(ctx context.Context, input domain.CategoryInput) error {
	if err := s.repo.Create(ctx, input); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("Failed to create category")
		return fmt.Errorf("create category: %w", err)
	}
	return s.refresh(ctx)
}

// Update updates a category and refreshes the cache
func (s *CategoryStore) Update(ctx context.Context, id int, input domain.CategoryInput) error {
	if err := s.repo.Update(ctx, id, input); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to update category")
		return fmt.Errorf("update category %d: %w", id, err)
	}
	return s.refresh(ctx)
}

// Delete deletes a category and refreshes the cache. A domain.ErrConflict
// means entries still reference it; ForceDelete removes it anyway.
func (s *CategoryStore) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to delete category")
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return s.refresh(ctx)
}

// ForceDelete deletes a category with its references and refreshes the cache
func (s *CategoryStore) ForceDelete(ctx context.Context, id int) error {
	if err := s.repo.ForceDelete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to force delete category")
		return fmt.Errorf("force delete category %d: %w", id, err)
	}
	return s.refresh(ctx)
}

func (s *CategoryStore) refresh(ctx context.Context) error {
	_, err := s.FetchAll(ctx, "")
	return err
}

// All returns every cached category
func (s *CategoryStore) All() []domain.Category {
	return s.cache.snapshot()
}

// OutCategories returns the cached expense categories
func (s *CategoryStore) OutCategories() []domain.Category {
	return s.ofType(domain.EntryTypeExpense)
}

// InCategories returns the cached income categories
func (s *CategoryStore) InCategories() []domain.Category {
	return s.ofType(domain.EntryTypeIncome)
}

func (s *CategoryStore) ofType(t domain.EntryType) []domain.Category {
	return s.cache.filter(func(c domain.Category) bool { return c.Type == t })
}

// ByID looks up a cached category
func (s *CategoryStore) ByID(id int) (domain.Category, bool) {
	return s.cache.find(func(c domain.Category) bool { return c.ID == id })
}

// ByName looks up a cached category by exact name within a type
func (s *CategoryStore) ByName(name string, entryType domain.EntryType) (domain.Category, bool) {
	return s.cache.find(func(c domain.Category) bool {
		return c.Name == name && c.Type == entryType
	})
}

// Clear empties the cache
func (s *CategoryStore) Clear() {
	s.cache.clear()
}
