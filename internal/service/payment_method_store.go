package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peksoon/account/internal/domain"
)

// PaymentMethodStore caches the two-level payment method hierarchy
type PaymentMethodStore struct {
	repo   domain.PaymentMethodRepository
	cache  cache[domain.PaymentMethod]
	logger zerolog.Logger
}

// NewPaymentMethodStore creates a new PaymentMethodStore
func NewPaymentMethodStore(repo domain.PaymentMethodRepository, logger zerolog.Logger) *PaymentMethodStore {
	return &PaymentMethodStore{
		repo:   repo,
		logger: logger.With().Str("component", "payment_method_store").Logger(),
	}
}

// FetchAll replaces the cache with the server's hierarchy
func (s *PaymentMethodStore) FetchAll(ctx context.Context) ([]domain.PaymentMethod, error) {
	methods, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch payment methods")
		return nil, fmt.Errorf("fetch payment methods: %w", err)
	}
	s.cache.replace(methods)
	return s.cache.snapshot(), nil
}

// Create creates a payment method and refreshes the cache
func (s *PaymentMethodStore) Create(ctx context.Context, input domain.PaymentMethodInput) error {
	if err := s.repo.Create(ctx, input); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("Failed to create payment method")
		return fmt.Errorf("create payment method: %w", err)
	}
	return s.refresh(ctx)
}

// Update updates a payment method and refreshes the cache
func (s *PaymentMethodStore) Update(ctx context.Context, id int, input domain.PaymentMethodInput) error {
	if err := s.repo.Update(ctx, id, input); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to update payment method")
		return fmt.Errorf("update payment method %d: %w", id, err)
	}
	return s.refresh(ctx)
}

// Delete deletes a payment method and refreshes the cache
func (s *PaymentMethodStore) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to delete payment method")
		return fmt.Errorf("delete payment method %d: %w", id, err)
	}
	return s.refresh(ctx)
}

// ForceDelete deletes a payment method with its references and refreshes the cache
func (s *PaymentMethodStore) ForceDelete(ctx context.Context, id int) error {
	if err := s.repo.ForceDelete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("Failed to force delete payment method")
		return fmt.Errorf("force delete payment method %d: %w", id, err)
	}
	return s.refresh(ctx)
}

func (s *PaymentMethodStore) refresh(ctx context.Context) error {
	_, err := s.FetchAll(ctx)
	return err
}

// All returns the cached hierarchy
func (s *PaymentMethodStore) All() []domain.PaymentMethod {
	return s.cache.snapshot()
}

// Active returns the active top-level entries
func (s *PaymentMethodStore) Active() []domain.PaymentMethod {
	return s.cache.filter(func(m domain.PaymentMethod) bool { return m.IsActive })
}

// Parents returns the active roots
func (s *PaymentMethodStore) Parents() []domain.PaymentMethod {
	return s.cache.filter(func(m domain.PaymentMethod) bool { return m.IsActive && m.ParentID == nil })
}

// ByID finds a method among the roots first, then among their children
func (s *PaymentMethodStore) ByID(id int) (domain.PaymentMethod, bool) {
	methods := s.cache.snapshot()
	for _, m := range methods {
		if m.ID == id {
			return m, true
		}
	}
	for _, m := range methods {
		for _, child := range m.Children {
			if child.ID == id {
				return child, true
			}
		}
	}
	return domain.PaymentMethod{}, false
}

// FlattenPaymentMethods lists each root followed by its children, in order,
// keeping only active methods
func (s *PaymentMethodStore) FlattenPaymentMethods() []domain.PaymentMethod {
	return FlattenPaymentMethods(s.cache.snapshot())
}

// FlattenPaymentMethods walks a hierarchy root-then-children and keeps the
// active entries. Children of an inactive root are still considered.
func FlattenPaymentMethods(roots []domain.PaymentMethod) []domain.PaymentMethod {
	flat := make([]domain.PaymentMethod, 0, len(roots))
	for _, root := range roots {
		if root.IsActive {
			flat = append(flat, root)
		}
		for _, child := range root.Children {
			if child.IsActive {
				flat = append(flat, child)
			}
		}
	}
	return flat
}

// ByName finds an active method by exact name in flattened order
func (s *PaymentMethodStore) ByName(name string) (domain.PaymentMethod, bool) {
	for _, m := range s.FlattenPaymentMethods() {
		if m.Name == name {
			return m, true
		}
	}
	return domain.PaymentMethod{}, false
}

// Options returns the active top-level methods as selector options
func (s *PaymentMethodStore) Options() []domain.Option {
	active := s.Active()
	options := make([]domain.Option, 0, len(active))
	for _, m := range active {
		options = append(options, domain.Option{ID: m.ID, Name: m.Name, FullName: m.Name, IsActive: m.IsActive})
	}
	return options
}

// Clear empties the cache
func (s *PaymentMethodStore) Clear() {
	s.cache.clear()
}
