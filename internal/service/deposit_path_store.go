package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peksoon/account/internal/domain"
)

// DepositPathStore caches income deposit paths
type DepositPathStore struct {
	repo   domain.DepositPathRepository
	cache  cache[domain.DepositPath]
	logger zerolog.Logger
}

// NewDepositPathStore creates a new DepositPathStore
func NewDepositPathStore(repo domain.DepositPathRepository, logger zerolog.Logger) *DepositPathStore {
	return &DepositPathStore{
		repo:   repo,
		logger: logger.With().Str("component", "deposit_path_store").Logger(),
	}
}

// FetchAll replaces the cache with the server's deposit paths
func (s *DepositPathStore) FetchAll(ctx context.Context) ([]domain.DepositPath, error) {
	paths, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch deposit paths")
		return nil, fmt.Errorf("fetch deposit paths: %w", err)
	}
	s.cache.replace(paths)
	return s.cache.snapshot(), nil
}

// Create creates a deposit path and refreshes the cache
func (s *DepositPathStore) Create(ctx context.Context, input domain.DepositPathInput) error {
	if err := s.repo.Create(ctx, input); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("Failed to create deposit path")
		return fmt.Errorf("create deposit path: %w", err)
	}
	return s.refresh(ctx)
}

// Update updates a deposit path and refreshes the cache
func (s *DepositPathStore) Update(ctx context.Context, id int, input domain.DepositPathInput) error {
	if err := s.repo.Update(ctx, id, input); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to update deposit path")
		return fmt.Errorf("update deposit path %d: %w", id, err)
	}
	return s.refresh(ctx)
}

// Delete deletes a deposit path and refreshes the cache
func (s *DepositPathStore) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to delete deposit path")
		return fmt.Errorf("delete deposit path %d: %w", id, err)
	}
	return s.refresh(ctx)
}

// ForceDelete deletes a deposit path with its references and refreshes the cache
func (s *DepositPathStore) ForceDelete(ctx context.Context, id int) error {
	if err := s.repo.ForceDelete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to force delete deposit path")
		return fmt.Errorf("force delete deposit path %d: %w", id, err)
	}
	return s.refresh(ctx)
}

func (s *DepositPathStore) refresh(ctx context.Context) error {
	_, err := s.FetchAll(ctx)
	return err
}

// All returns every cached deposit path
func (s *DepositPathStore) All() []domain.DepositPath {
	return s.cache.snapshot()
}

// Active returns the active deposit paths
func (s *DepositPathStore) Active() []domain.DepositPath {
	return s.cache.filter(func(p domain.DepositPath) bool { return p.IsActive })
}

// ByID looks up a cached deposit path
func (s *DepositPathStore) ByID(id int) (domain.DepositPath, bool) {
	return s.cache.find(func(p domain.DepositPath) bool { return p.ID == id })
}

// ByName looks up a cached deposit path by exact name
func (s *DepositPathStore) ByName(name string) (domain.DepositPath, bool) {
	return s.cache.find(func(p domain.DepositPath) bool { return p.Name == name })
}

// Options returns the active deposit paths as selector options
func (s *DepositPathStore) Options() []domain.Option {
	active := s.Active()
	options := make([]domain.Option, 0, len(active))
	for _, p := range active {
		options = append(options, domain.Option{ID: p.ID, Name: p.Name, FullName: p.Name, IsActive: p.IsActive})
	}
	return options
}

// Clear empties the cache
func (s *DepositPathStore) Clear() {
	s.cache.clear()
}
