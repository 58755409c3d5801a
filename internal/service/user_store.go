package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peksoon/account/internal/domain"
)

// UserStore caches household users
type UserStore struct {
	repo   domain.UserRepository
	cache  cache[domain.User]
	logger zerolog.Logger
}

// NewUserStore creates a new UserStore
func NewUserStore(repo domain.UserRepository, logger zerolog.Logger) *UserStore {
	return &UserStore{
		repo:   repo,
		logger: logger.With().Str("component", "user_store").Logger(),
	}
}

// FetchAll replaces the cache with the server's users
func (s *UserStore) FetchAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch users")
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	s.cache.replace(users)
	return s.cache.snapshot(), nil
}

// Create creates a user and refreshes the cache
func (s *UserStore) Create(ctx context.Context, input domain.UserInput) error {
	if err := s.repo.Create(ctx, input); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("Failed to create user")
		return fmt.Errorf("create user: %w", err)
	}
	return s.refresh(ctx)
}

// Update updates a user and refreshes the cache
func (s *UserStore) Update(ctx context.Context, id int, input domain.UserInput) error {
	if err := s.repo.Update(ctx, id, input); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to update user")
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return s.refresh(ctx)
}

// Delete deletes a user and refreshes the cache
func (s *UserStore) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to delete user")
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return s.refresh(ctx)
}

// ForceDelete deletes a user with their entries and refreshes the cache
func (s *UserStore) ForceDelete(ctx context.Context, id int) error {
	if err := s.repo.ForceDelete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to force delete user")
		return fmt.Errorf("force delete user %d: %w", id, err)
	}
	return s.refresh(ctx)
}

// CheckUsage reports whether entries or budgets reference the user
func (s *UserStore) CheckUsage(ctx context.Context, id int) (bool, error) {
	inUse, err := s.repo.CheckUsage(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to check user usage")
		return false, fmt.Errorf("check user %d usage: %w", id, err)
	}
	return inUse, nil
}

func (s *UserStore) refresh(ctx context.Context) error {
	_, err := s.FetchAll(ctx)
	return err
}

// All returns every cached user
func (s *UserStore) All() []domain.User {
	return s.cache.snapshot()
}

// ByID looks up a cached user
func (s *UserStore) ByID(id int) (domain.User, bool) {
	return s.cache.find(func(u domain.User) bool { return u.ID == id })
}

// ByName looks up a cached user by exact name
func (s *UserStore) ByName(name string) (domain.User, bool) {
	return s.cache.find(func(u domain.User) bool { return u.Name == name })
}

// Options returns every cached user as a selector option
func (s *UserStore) Options() []domain.UserOption {
	users := s.cache.snapshot()
	options := make([]domain.UserOption, 0, len(users))
	for _, u := range users {
		options = append(options, domain.UserOption{Value: u.Name, Label: u.Name, ID: u.ID})
	}
	return options
}

// Clear empties the cache
func (s *UserStore) Clear() {
	s.cache.clear()
}
