package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/peksoon/account/internal/domain"
	"github.com/peksoon/account/internal/util"
)

// CategoryResolver finds a category by (name, type)
type CategoryResolver interface {
	ByName(name string, entryType domain.EntryType) (domain.Category, bool)
}

// PaymentMethodResolver exposes the active payment methods in flattened order
type PaymentMethodResolver interface {
	FlattenPaymentMethods() []domain.PaymentMethod
}

// LedgerDefaults holds the fallbacks used when a reference cannot be resolved
type LedgerDefaults struct {
	PaymentMethodID int
	DepositPath     string
}

// LedgerStore caches the entries of one calendar month window and resolves
// references before writes
type LedgerStore struct {
	repo           domain.EntryRepository
	categories     CategoryResolver
	paymentMethods PaymentMethodResolver
	defaults       LedgerDefaults
	logger         zerolog.Logger

	entries cache[domain.Entry]

	mu    sync.RWMutex
	state domain.LoadState
	err   error
	year  int
	month int
}

// NewLedgerStore creates a new LedgerStore
func NewLedgerStore(
	repo domain.EntryRepository,
	categories CategoryResolver,
	paymentMethods PaymentMethodResolver,
	defaults LedgerDefaults,
	logger zerolog.Logger,
) *LedgerStore {
	return &LedgerStore{
		repo:           repo,
		categories:     categories,
		paymentMethods: paymentMethods,
		defaults:       defaults,
		logger:         logger.With().Str("component", "ledger_store").Logger(),
		state:          domain.LoadStateIdle,
	}
}

// FetchWindow loads the expense and income entries of a month concurrently and
// replaces the cache with their concatenation. On failure the previous cache
// is kept and the store moves to the errored state.
func (s *LedgerStore) FetchWindow(ctx context.Context, year, month int) error {
	s.setState(domain.LoadStateLoading, nil)

	var expenses, incomes []domain.Entry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.repo.ListMonth(gctx, domain.EntryTypeExpense, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		incomes, err = s.repo.ListMonth(gctx, domain.EntryTypeIncome, year, month)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to load month entries")
		s.setState(domain.LoadStateErrored, err)
		return fmt.Errorf("fetch entries %d-%s: %w", year, util.PadMonth(month), err)
	}

	s.entries.replace(concatEntries(expenses, incomes))

	s.mu.Lock()
	s.year, s.month = year, month
	s.state = domain.LoadStateLoaded
	s.err = nil
	s.mu.Unlock()
	return nil
}

// Save creates an entry and reloads the month of its date
func (s *LedgerStore) Save(ctx context.Context, entry domain.Entry) error {
	if !entry.Type().Valid() {
		return domain.ErrInvalidEntryType
	}
	entry.Date = entry.Date.Truncate(time.Second)

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error().
			Err(err).
			Str("type", string(entry.Type())).
			Str("message", domain.UserMessage(err, "")).
			Msg("Failed to save entry")
		return fmt.Errorf("save entry: %w", err)
	}

	s.reloadFor(ctx, entry.Date)
	return nil
}

// Update resolves the entry's references, sends it, and reloads its month.
// Resolution never blocks the request: unresolved names fall back to the
// existing id or the configured defaults.
func (s *LedgerStore) Update(ctx context.Context, entry domain.Entry) error {
	if !entry.Type().Valid() {
		return domain.ErrInvalidEntryType
	}
	resolved := s.resolve(entry)
	if resolved.UUID == "" {
		return domain.ErrInvalidID
	}

	if err := s.repo.Update(ctx, resolved); err != nil {
		s.logger.Error().
			Err(err).
			Str("uuid", resolved.UUID).
			Str("message", domain.UserMessage(err, "")).
			Msg("Failed to update entry")
		return fmt.Errorf("update entry %s: %w", resolved.UUID, err)
	}

	s.reloadFor(ctx, resolved.Date)
	return nil
}

// resolve applies the pre-update reference resolution to a copy of entry
func (s *LedgerStore) resolve(entry domain.Entry) domain.Entry {
	entryType := entry.Type()

	if entry.CategoryName != "" {
		if c, ok := s.categories.ByName(entry.CategoryName, entryType); ok {
			entry.CategoryID = c.ID
		} else {
			s.logger.Warn().
				Err(domain.ErrReferenceUnresolved).
				Str("category_name", entry.CategoryName).
				Str("type", string(entryType)).
				Int("category_id", entry.CategoryID).
				Msg("Category name not found, keeping existing id")
		}
	}

	if entry.UUID == "" && entry.ID != "" {
		entry.UUID = entry.ID
	}

	if entry.KeywordName == "" && entry.Keyword != "" {
		entry.KeywordName = entry.Keyword
	}

	if d, ok := entry.Expense(); ok {
		d.PaymentMethodID = s.resolvePaymentMethod(d)
		entry.Detail = d
	}

	if d, ok := entry.Income(); ok {
		if d.DepositPath == "" {
			d.DepositPath = s.defaults.DepositPath
		}
		entry.Detail = d
	}

	entry.Date = entry.Date.Truncate(time.Second)
	return entry
}

func (s *LedgerStore) resolvePaymentMethod(d domain.ExpenseDetail) int {
	flat := s.paymentMethods.FlattenPaymentMethods()

	if d.PaymentMethodName != "" {
		for _, m := range flat {
			if m.Name == d.PaymentMethodName {
				return m.ID
			}
		}
		s.logger.Warn().
			Err(domain.ErrReferenceUnresolved).
			Str("payment_method_name", d.PaymentMethodName).
			Msg("Payment method name not found, using default")
	} else if d.PaymentMethodID > 0 {
		return d.PaymentMethodID
	}

	if len(flat) > 0 {
		return flat[0].ID
	}
	return s.defaults.PaymentMethodID
}

// Delete removes an entry and reloads its month. Failures are logged only.
func (s *LedgerStore) Delete(ctx context.Context, entry domain.Entry) {
	uuid := entry.UUID
	if uuid == "" {
		uuid = entry.ID
	}

	if err := s.repo.Delete(ctx, entry.Type(), uuid); err != nil {
		s.logger.Error().
			Err(err).
			Str("uuid", uuid).
			Str("message", domain.UserMessage(err, "")).
			Msg("Failed to delete entry")
		return
	}

	s.reloadFor(ctx, entry.Date)
}

// reloadFor refreshes the month containing date. A failed reload leaves the
// store errored but does not undo the preceding write.
func (s *LedgerStore) reloadFor(ctx context.Context, date time.Time) {
	local := date.In(time.Local)
	if err := s.FetchWindow(ctx, local.Year(), int(local.Month())); err != nil {
		s.logger.Warn().Err(err).Msg("Reload after write failed")
	}
}

// SearchByKeyword searches both entry types on the server. When either call
// fails, the cached window is searched instead and the result is marked
// degraded.
func (s *LedgerStore) SearchByKeyword(ctx context.Context, keyword, startDate, endDate string) domain.SearchResult {
	entries, err := s.fetchBoth(ctx, func(ctx context.Context, t domain.EntryType) ([]domain.Entry, error) {
		return s.repo.SearchKeyword(ctx, t, keyword, startDate, endDate)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("keyword", keyword).Msg("Keyword search failed, searching cached entries")
		return domain.SearchResult{Entries: s.SearchByKeywordLocal(keyword, startDate, endDate), Degraded: true}
	}
	return domain.SearchResult{Entries: entries}
}

// FetchRange reads both entry types between two dates on the server, falling
// back to the cached window like SearchByKeyword
func (s *LedgerStore) FetchRange(ctx context.Context, startDate, endDate string) domain.SearchResult {
	entries, err := s.fetchBoth(ctx, func(ctx context.Context, t domain.EntryType) ([]domain.Entry, error) {
		return s.repo.ListRange(ctx, t, startDate, endDate)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("start_date", startDate).Str("end_date", endDate).Msg("Range fetch failed, filtering cached entries")
		return domain.SearchResult{Entries: s.FetchRangeLocal(startDate, endDate), Degraded: true}
	}
	return domain.SearchResult{Entries: entries}
}

func (s *LedgerStore) fetchBoth(ctx context.Context, fetch func(context.Context, domain.EntryType) ([]domain.Entry, error)) ([]domain.Entry, error) {
	var expenses, incomes []domain.Entry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = fetch(gctx, domain.EntryTypeExpense)
		return err
	})
	g.Go(func() error {
		var err error
		incomes, err = fetch(gctx, domain.EntryTypeIncome)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return concatEntries(expenses, incomes), nil
}

// SearchByKeywordLocal matches the keyword case-insensitively against the
// keyword name and memo of cached entries within the optional date bounds
func (s *LedgerStore) SearchByKeywordLocal(keyword, startDate, endDate string) []domain.Entry {
	needle := strings.ToLower(keyword)
	return s.entries.filter(func(e domain.Entry) bool {
		if !inRange(e.DateKey(), startDate, endDate) {
			return false
		}
		return strings.Contains(strings.ToLower(e.KeywordName), needle) ||
			strings.Contains(strings.ToLower(e.Memo), needle)
	})
}

// FetchRangeLocal returns cached entries whose date falls in [startDate, endDate].
// An empty bound is open.
func (s *LedgerStore) FetchRangeLocal(startDate, endDate string) []domain.Entry {
	return s.entries.filter(func(e domain.Entry) bool {
		return inRange(e.DateKey(), startDate, endDate)
	})
}

// FetchForDate returns cached entries on the given day (YYYY-MM-DD or a
// longer wire date)
func (s *LedgerStore) FetchForDate(date string) []domain.Entry {
	day := util.DatePrefix(date)
	return s.entries.filter(func(e domain.Entry) bool { return e.DateKey() == day })
}

// Entries returns the cached window
func (s *LedgerStore) Entries() []domain.Entry {
	return s.entries.snapshot()
}

// State returns the fetch state
func (s *LedgerStore) State() domain.LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the last fetch error, nil unless errored
func (s *LedgerStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Window returns the year and month of the last successful fetch
func (s *LedgerStore) Window() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.year, s.month
}

// Clear empties the cache and resets the state
func (s *LedgerStore) Clear() {
	s.entries.clear()
	s.mu.Lock()
	s.state = domain.LoadStateIdle
	s.err = nil
	s.year, s.month = 0, 0
	s.mu.Unlock()
}

func (s *LedgerStore) setState(state domain.LoadState, err error) {
	s.mu.Lock()
	s.state = state
	s.err = err
	s.mu.Unlock()
}

func concatEntries(expenses, incomes []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, 0, len(expenses)+len(incomes))
	for _, e := range expenses {
		if e.Detail == nil {
			e.Detail = domain.ExpenseDetail{}
		}
		out = append(out, e)
	}
	for _, e := range incomes {
		if e.Detail == nil {
			e.Detail = domain.IncomeDetail{}
		}
		out = append(out, e)
	}
	return out
}

func inRange(day, startDate, endDate string) bool {
	if startDate != "" && day < util.DatePrefix(startDate) {
		return false
	}
	if endDate != "" && day > util.DatePrefix(endDate) {
		return false
	}
	return true
}
