package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/peksoon/account/internal/domain"
)

// DefaultTopCategories is the TopCategories limit used for non-positive limits
const DefaultTopCategories = 5

var hundred = decimal.NewFromInt(100)

// StatisticsStore holds the most recent statistics snapshot and the most
// recent keyword breakdown
type StatisticsStore struct {
	repo   domain.StatisticsRepository
	logger zerolog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	current  *domain.Statistics
	keywords *domain.CategoryKeywordStatistics
}

// NewStatisticsStore creates a new StatisticsStore
func NewStatisticsStore(repo domain.StatisticsRepository, logger zerolog.Logger) *StatisticsStore {
	return &StatisticsStore{
		repo:   repo,
		logger: logger.With().Str("component", "statistics_store").Logger(),
		now:    time.Now,
	}
}

// Fetch retrieves a snapshot and makes it the current one
func (s *StatisticsStore) Fetch(ctx context.Context, params domain.StatisticsParams) (*domain.Statistics, error) {
	stats, err := s.get(ctx, params)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = stats
	s.mu.Unlock()
	return stats, nil
}

func (s *StatisticsStore) get(ctx context.Context, params domain.StatisticsParams) (*domain.Statistics, error) {
	params = withStatisticsDefaults(params)
	stats, err := s.repo.Get(ctx, params)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("type", string(params.Type)).
			Str("category", string(params.Category)).
			Msg("Failed to fetch statistics")
		return nil, fmt.Errorf("fetch %s statistics: %w", params.Type, err)
	}
	return stats, nil
}

// FetchPeriod fetches a period for one direction; the range is sent only
// when both dates are given
func (s *StatisticsStore) FetchPeriod(ctx context.Context, periodType domain.PeriodType, direction domain.EntryType, startDate, endDate string) (*domain.Statistics, error) {
	params := domain.StatisticsParams{Type: periodType, Category: direction}
	if startDate != "" && endDate != "" {
		params.StartDate = startDate
		params.EndDate = endDate
	}
	return s.Fetch(ctx, params)
}

// FetchMonthly fetches the current month
func (s *StatisticsStore) FetchMonthly(ctx context.Context, direction domain.EntryType) (*domain.Statistics, error) {
	return s.FetchPeriod(ctx, domain.PeriodMonth, direction, "", "")
}

// FetchWeekly fetches the current week
func (s *StatisticsStore) FetchWeekly(ctx context.Context, direction domain.EntryType) (*domain.Statistics, error) {
	return s.FetchPeriod(ctx, domain.PeriodWeek, direction, "", "")
}

// FetchYearly fetches the current year
func (s *StatisticsStore) FetchYearly(ctx context.Context, direction domain.EntryType) (*domain.Statistics, error) {
	return s.FetchPeriod(ctx, domain.PeriodYear, direction, "", "")
}

// FetchAll fetches all time
func (s *StatisticsStore) FetchAll(ctx context.Context, direction domain.EntryType) (*domain.Statistics, error) {
	return s.FetchPeriod(ctx, domain.PeriodAll, direction, "", "")
}

// FetchKeywordStatistics retrieves the keyword breakdown of a category.
// Fails with domain.ErrCategoryIDRequired before any request when
// params.CategoryID is unset.
func (s *StatisticsStore) FetchKeywordStatistics(ctx context.Context, params domain.StatisticsParams) (*domain.CategoryKeywordStatistics, error) {
	if params.CategoryID <= 0 {
		return nil, domain.ErrCategoryIDRequired
	}
	params = withStatisticsDefaults(params)

	stats, err := s.repo.GetCategoryKeywords(ctx, params)
	if err != nil {
		s.logger.Error().Err(err).Int("category_id", params.CategoryID).Msg("Failed to fetch keyword statistics")
		return nil, fmt.Errorf("fetch keyword statistics of category %d: %w", params.CategoryID, err)
	}

	s.mu.Lock()
	s.keywords = stats
	s.mu.Unlock()
	return stats, nil
}

// FetchComparison fetches two periods concurrently and computes their deltas.
// The current period becomes the cached snapshot.
func (s *StatisticsStore) FetchComparison(ctx context.Context, current, previous domain.StatisticsParams) (*domain.StatisticsComparison, error) {
	var cur, prev *domain.Statistics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = s.get(gctx, current)
		return err
	})
	g.Go(func() error {
		var err error
		prev, err = s.get(gctx, previous)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch comparison: %w", err)
	}

	s.mu.Lock()
	s.current = cur
	s.mu.Unlock()

	return &domain.StatisticsComparison{
		Current:  cur,
		Previous: prev,
		Changes:  CompareStatistics(cur, prev),
	}, nil
}

// CompareStatistics computes the deltas from prev to cur. Percentages are
// zero when the previous value is not positive.
func CompareStatistics(cur, prev *domain.Statistics) domain.StatisticsChanges {
	changes := domain.StatisticsChanges{
		AmountChange:        cur.TotalAmount.Sub(prev.TotalAmount),
		AmountChangePercent: decimal.Zero,
		CountChange:         cur.TotalCount - prev.TotalCount,
		CountChangePercent:  decimal.Zero,
	}
	if prev.TotalAmount.IsPositive() {
		changes.AmountChangePercent = changes.AmountChange.Div(prev.TotalAmount).Mul(hundred)
	}
	if prev.TotalCount > 0 {
		changes.CountChangePercent = decimal.NewFromInt(int64(changes.CountChange)).
			Div(decimal.NewFromInt(int64(prev.TotalCount))).
			Mul(hundred)
	}
	return changes
}

// Current returns the cached snapshot, or nil
func (s *StatisticsStore) Current() *domain.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// KeywordStatistics returns the cached keyword breakdown, or nil
func (s *StatisticsStore) KeywordStatistics() *domain.CategoryKeywordStatistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keywords
}

// CategoryTotals maps category id to total amount for the cached snapshot
func (s *StatisticsStore) CategoryTotals() map[int]decimal.Decimal {
	totals := make(map[int]decimal.Decimal)
	stats := s.Current()
	if stats == nil {
		return totals
	}
	for _, c := range stats.Categories {
		totals[c.CategoryID] = c.TotalAmount
	}
	return totals
}

// TopCategories returns the first limit categories of the cached snapshot in
// server order, with percentages rounded to one decimal
func (s *StatisticsStore) TopCategories(limit int) []domain.CategoryStatistics {
	stats := s.Current()
	if stats == nil {
		return []domain.CategoryStatistics{}
	}
	if limit <= 0 {
		limit = DefaultTopCategories
	}
	if limit > len(stats.Categories) {
		limit = len(stats.Categories)
	}

	top := make([]domain.CategoryStatistics, limit)
	copy(top, stats.Categories[:limit])
	for i := range top {
		top[i].Percentage = math.Round(top[i].Percentage*10) / 10
	}
	return top
}

// SummaryInfo returns the headline numbers of the cached snapshot, or nil.
// The average is rounded to a whole amount and zero when there are no entries.
func (s *StatisticsStore) SummaryInfo() *domain.StatisticsSummary {
	stats := s.Current()
	if stats == nil {
		return nil
	}
	return &domain.StatisticsSummary{
		TotalAmount:   stats.TotalAmount,
		TotalCount:    stats.TotalCount,
		AverageAmount: averageAmount(stats),
		Period:        stats.Period,
		TopCategory:   stats.TopCategory,
	}
}

func averageAmount(stats *domain.Statistics) decimal.Decimal {
	if stats.TotalCount <= 0 {
		return decimal.Zero
	}
	return stats.TotalAmount.Div(decimal.NewFromInt(int64(stats.TotalCount))).Round(0)
}

// Export flattens the cached snapshot for export, or returns nil
func (s *StatisticsStore) Export() *domain.StatisticsExport {
	stats := s.Current()
	if stats == nil {
		return nil
	}

	rows := make([]domain.StatisticsExportRow, 0, len(stats.Categories))
	for _, c := range stats.Categories {
		rows = append(rows, domain.StatisticsExportRow{
			Name:       c.CategoryName,
			Amount:     c.TotalAmount,
			Count:      c.Count,
			Percentage: c.Percentage,
		})
	}

	return &domain.StatisticsExport{
		Period: stats.Period,
		Summary: domain.StatisticsExportSummary{
			TotalAmount:   stats.TotalAmount,
			TotalCount:    stats.TotalCount,
			AverageAmount: averageAmount(stats),
		},
		Categories: rows,
		ExportedAt: s.now().UTC(),
	}
}

// Clear drops both cached snapshots
func (s *StatisticsStore) Clear() {
	s.mu.Lock()
	s.current = nil
	s.keywords = nil
	s.mu.Unlock()
}

// ClearKeywordStatistics drops the cached keyword breakdown
func (s *StatisticsStore) ClearKeywordStatistics() {
	s.mu.Lock()
	s.keywords = nil
	s.mu.Unlock()
}

// withStatisticsDefaults fills month/out and drops a half-specified range
func withStatisticsDefaults(params domain.StatisticsParams) domain.StatisticsParams {
	if params.Type == "" {
		params.Type = domain.PeriodMonth
	}
	if params.Category == "" {
		params.Category = domain.EntryTypeExpense
	}
	if params.StartDate == "" || params.EndDate == "" {
		params.StartDate = ""
		params.EndDate = ""
	}
	return params
}
