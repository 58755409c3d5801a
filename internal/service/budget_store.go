package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/peksoon/account/internal/domain"
)

// Budget store fallback messages, used when the server sends none
const (
	MessageBudgetFetchFailed   = "An error occurred while loading budgets."
	MessageBudgetCreateFailed  = "An error occurred while creating the budget."
	MessageBudgetUpdateFailed  = "An error occurred while updating the budget."
	MessageBudgetDeleteFailed  = "An error occurred while deleting the budget."
	MessageBudgetUsageFailed   = "An error occurred while loading budget usage."
	MessageMonthlyUpdateFailed = "An error occurred while updating the monthly budget."
	MessageYearlyUpdateFailed  = "An error occurred while updating the yearly budget."
	MessageExpenseAddFailed    = "An error occurred while adding the expense."
)

// BudgetStore caches a user's budgets and their usage and derives
// compliance totals from them
type BudgetStore struct {
	budgetRepo domain.BudgetRepository
	entryRepo  domain.EntryRepository
	logger     zerolog.Logger

	budgets cache[domain.Budget]
	usages  cache[domain.BudgetUsage]

	mu       sync.RWMutex
	err      error
	errorMsg string
}

// NewBudgetStore creates a new BudgetStore
func NewBudgetStore(budgetRepo domain.BudgetRepository, entryRepo domain.EntryRepository, logger zerolog.Logger) *BudgetStore {
	return &BudgetStore{
		budgetRepo: budgetRepo,
		entryRepo:  entryRepo,
		logger:     logger.With().Str("component", "budget_store").Logger(),
	}
}

// FetchBudgets replaces the cached budgets for a user. Failures clear the
// list and are reported through ErrorMessage.
func (s *BudgetStore) FetchBudgets(ctx context.Context, userName string, categoryID int) []domain.Budget {
	s.ClearError()

	budgets, err := s.budgetRepo.List(ctx, userName, categoryID)
	if err != nil {
		s.fail(err, MessageBudgetFetchFailed, "Failed to fetch budgets")
		s.budgets.clear()
		return []domain.Budget{}
	}
	s.budgets.replace(budgets)
	return s.budgets.snapshot()
}

// Create creates a budget and refetches the user's budgets.
// A duplicate (category, user) pair fails with domain.ErrConflict.
func (s *BudgetStore) Create(ctx context.Context, input domain.BudgetInput) error {
	s.ClearError()

	if err := s.budgetRepo.Create(ctx, input); err != nil {
		fallback := MessageBudgetCreateFailed
		if errors.Is(err, domain.ErrConflict) {
			fallback = domain.MessageBudgetConflict
		}
		s.fail(err, fallback, "Failed to create budget")
		return fmt.Errorf("create budget: %w", err)
	}

	s.FetchBudgets(ctx, input.UserName, 0)
	return nil
}

// Update replaces a budget's thresholds and refetches userName's budgets
func (s *BudgetStore) Update(ctx context.Context, id int, input domain.BudgetInput, userName string) error {
	s.ClearError()

	if err := s.budgetRepo.Update(ctx, id, input); err != nil {
		s.fail(err, MessageBudgetUpdateFailed, "Failed to update budget")
		return fmt.Errorf("update budget %d: %w", id, err)
	}

	s.FetchBudgets(ctx, userName, 0)
	return nil
}

// Delete deletes a budget and refetches userName's budgets
func (s *BudgetStore) Delete(ctx context.Context, id int, userName string) error {
	s.ClearError()

	if err := s.budgetRepo.Delete(ctx, id); err != nil {
		s.fail(err, MessageBudgetDeleteFailed, "Failed to delete budget")
		return fmt.Errorf("delete budget %d: %w", id, err)
	}

	s.FetchBudgets(ctx, userName, 0)
	return nil
}

// UpdateMonthly sets only the monthly threshold of a (category, user) pair
func (s *BudgetStore) UpdateMonthly(ctx context.Context, categoryID int, userName string, amount decimal.Decimal) error {
	return s.updatePeriod(ctx, domain.BudgetPeriodMonthly, categoryID, userName, amount, MessageMonthlyUpdateFailed)
}

// UpdateYearly sets only the yearly threshold of a (category, user) pair
func (s *BudgetStore) UpdateYearly(ctx context.Context, categoryID int, userName string, amount decimal.Decimal) error {
	return s.updatePeriod(ctx, domain.BudgetPeriodYearly, categoryID, userName, amount, MessageYearlyUpdateFailed)
}

func (s *BudgetStore) updatePeriod(ctx context.Context, period domain.BudgetPeriod, categoryID int, userName string, amount decimal.Decimal, fallback string) error {
	s.ClearError()

	if err := s.budgetRepo.UpdatePeriod(ctx, period, categoryID, userName, amount); err != nil {
		s.fail(err, fallback, "Failed to update "+string(period)+" budget")
		return fmt.Errorf("update %s budget of category %d: %w", period, categoryID, err)
	}

	s.FetchBudgets(ctx, userName, 0)
	return nil
}

// FetchUsage replaces the cached usage list for a user. Failures clear the
// list and are reported through ErrorMessage.
func (s *BudgetStore) FetchUsage(ctx context.Context, userName string) []domain.BudgetUsage {
	s.ClearError()

	usages, err := s.budgetRepo.Usage(ctx, userName)
	if err != nil {
		s.fail(err, MessageBudgetUsageFailed, "Failed to fetch budget usage")
		s.usages.clear()
		return []domain.BudgetUsage{}
	}
	s.usages.replace(usages)
	return s.usages.snapshot()
}

// FetchCategoryUsage reads the usage of a single category without touching
// the cache. Returns nil on failure.
func (s *BudgetStore) FetchCategoryUsage(ctx context.Context, userName string, categoryID int) *domain.BudgetUsage {
	s.ClearError()

	usage, err := s.budgetRepo.UsageForCategory(ctx, userName, categoryID)
	if err != nil {
		s.fail(err, MessageBudgetUsageFailed, "Failed to fetch category budget usage")
		return nil
	}
	return usage
}

// CreateExpenseWithBudget inserts an expense and returns the category's
// budget usage after the insert, then refetches the entry user's usage list
func (s *BudgetStore) CreateExpenseWithBudget(ctx context.Context, entry domain.Entry) (*domain.BudgetUsage, error) {
	s.ClearError()

	usage, err := s.entryRepo.InsertWithBudget(ctx, entry)
	if err != nil {
		s.fail(err, MessageExpenseAddFailed, "Failed to add expense with budget")
		return nil, fmt.Errorf("insert expense with budget: %w", err)
	}

	if entry.User != "" {
		s.FetchUsage(ctx, entry.User)
	}
	return usage, nil
}

func (s *BudgetStore) fail(err error, fallback, msg string) {
	message := domain.UserMessage(err, fallback)
	s.logger.Error().Err(err).Str("message", message).Msg(msg)

	s.mu.Lock()
	s.err = err
	s.errorMsg = message
	s.mu.Unlock()
}

// Budgets returns the cached budgets
func (s *BudgetStore) Budgets() []domain.Budget {
	return s.budgets.snapshot()
}

// Usages returns the cached usage list
func (s *BudgetStore) Usages() []domain.BudgetUsage {
	return s.usages.snapshot()
}

// BudgetByCategory finds the cached budget of a category
func (s *BudgetStore) BudgetByCategory(categoryID int) (domain.Budget, bool) {
	return s.budgets.find(func(b domain.Budget) bool { return b.CategoryID == categoryID })
}

// UsageByCategory finds the cached usage of a category
func (s *BudgetStore) UsageByCategory(categoryID int) (domain.BudgetUsage, bool) {
	return s.usages.find(func(u domain.BudgetUsage) bool { return u.CategoryID == categoryID })
}

// OverBudgetCategories returns the usages exceeding either threshold
func (s *BudgetStore) OverBudgetCategories() []domain.BudgetUsage {
	return s.usages.filter(func(u domain.BudgetUsage) bool { return u.IsOver() })
}

// OverBudgetCount returns the number of categories over budget
func (s *BudgetStore) OverBudgetCount() int {
	return len(s.OverBudgetCategories())
}

// BudgetCategoriesCount returns the number of cached budgets
func (s *BudgetStore) BudgetCategoriesCount() int {
	return s.budgets.len()
}

// TotalMonthlyBudget sums the monthly thresholds
func (s *BudgetStore) TotalMonthlyBudget() decimal.Decimal {
	total := decimal.Zero
	for _, b := range s.budgets.snapshot() {
		total = total.Add(b.MonthlyBudget)
	}
	return total
}

// TotalYearlyBudget sums the yearly thresholds
func (s *BudgetStore) TotalYearlyBudget() decimal.Decimal {
	total := decimal.Zero
	for _, b := range s.budgets.snapshot() {
		total = total.Add(b.YearlyBudget)
	}
	return total
}

// TotalMonthlyUsed sums the monthly usage
func (s *BudgetStore) TotalMonthlyUsed() decimal.Decimal {
	total := decimal.Zero
	for _, u := range s.usages.snapshot() {
		total = total.Add(u.MonthlyUsed)
	}
	return total
}

// TotalYearlyUsed sums the yearly usage
func (s *BudgetStore) TotalYearlyUsed() decimal.Decimal {
	total := decimal.Zero
	for _, u := range s.usages.snapshot() {
		total = total.Add(u.YearlyUsed)
	}
	return total
}

// ErrorMessage returns the user-facing message of the last failure
func (s *BudgetStore) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errorMsg
}

// Err returns the last failure
func (s *BudgetStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// ClearError forgets the last failure
func (s *BudgetStore) ClearError() {
	s.mu.Lock()
	s.err = nil
	s.errorMsg = ""
	s.mu.Unlock()
}

// Reset empties both caches and the error
func (s *BudgetStore) Reset() {
	s.budgets.clear()
	s.usages.clear()
	s.ClearError()
}
