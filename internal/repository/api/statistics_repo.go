package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/peksoon/account/internal/domain"
	"github.com/peksoon/account/internal/transport"
)

// StatisticsRepository implements domain.StatisticsRepository over /statistics
type StatisticsRepository struct {
	client *transport.Client
}

// NewStatisticsRepository creates a new StatisticsRepository
func NewStatisticsRepository(client *transport.Client) *StatisticsRepository {
	return &StatisticsRepository{client: client}
}

// Get retrieves a statistics snapshot
func (r *StatisticsRepository) Get(ctx context.Context, params domain.StatisticsParams) (*domain.Statistics, error) {
	var out domain.Statistics
	if err := r.client.Get(ctx, "/statistics", statisticsQuery(params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCategoryKeywords retrieves the keyword breakdown of one category
func (r *StatisticsRepository) GetCategoryKeywords(ctx context.Context, params domain.StatisticsParams) (*domain.CategoryKeywordStatistics, error) {
	if params.CategoryID <= 0 {
		return nil, domain.ErrCategoryIDRequired
	}
	query := statisticsQuery(params)
	query.Set("category_id", strconv.Itoa(params.CategoryID))

	var out domain.CategoryKeywordStatistics
	if err := r.client.Get(ctx, "/statistics/category-keywords", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// statisticsQuery applies the month/out defaults and sends the date range
// only when both ends are present
func statisticsQuery(params domain.StatisticsParams) url.Values {
	periodType := params.Type
	if periodType == "" {
		periodType = domain.PeriodMonth
	}
	category := params.Category
	if category == "" {
		category = domain.EntryTypeExpense
	}

	query := url.Values{
		"type":     {string(periodType)},
		"category": {string(category)},
	}
	if params.User != "" {
		query.Set("user", params.User)
	}
	if params.StartDate != "" && params.EndDate != "" {
		query.Set("start_date", params.StartDate)
		query.Set("end_date", params.EndDate)
	}
	return query
}
