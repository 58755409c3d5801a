package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType selects the aggregation window of a statistics request
type PeriodType string

const (
	PeriodMonth  PeriodType = "month"
	PeriodWeek   PeriodType = "week"
	PeriodYear   PeriodType = "year"
	PeriodAll    PeriodType = "all"
	PeriodCustom PeriodType = "custom"
)

// StatisticsParams describes a statistics request. Empty Type and Category
// default to month and out. StartDate/EndDate are sent only as a pair.
type StatisticsParams struct {
	Type       PeriodType
	Category   EntryType
	User       string
	StartDate  string
	EndDate    string
	CategoryID int
}

// CategoryStatistics is one category row of a statistics snapshot
type CategoryStatistics struct {
	CategoryID   int                 `json:"category_id"`
	CategoryName string              `json:"category_name"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Percentage   float64             `json:"percentage"`
	Count        int                 `json:"count"`
	Keywords     []KeywordStatistics `json:"keywords,omitempty"`
}

// KeywordStatistics is one keyword row inside a category
type KeywordStatistics struct {
	KeywordID   int             `json:"keyword_id"`
	KeywordName string          `json:"keyword_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Percentage  float64         `json:"percentage"`
	Count       int             `json:"count"`
}

// PaymentMethodStatistics is one payment method row of a snapshot
type PaymentMethodStatistics struct {
	PaymentMethodID   int             `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method_name"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Percentage        float64         `json:"percentage"`
	Count             int             `json:"count"`
}

// ChartData is a pre-computed chart slice
type ChartData struct {
	Label      string          `json:"label"`
	Value      decimal.Decimal `json:"value"`
	Percentage float64         `json:"percentage"`
	Color      string          `json:"color"`
}

// Statistics is a read-only server snapshot for one period and direction.
// Categories arrive already ordered by the server.
type Statistics struct {
	Period         string                    `json:"period"`
	TotalAmount    decimal.Decimal           `json:"total_amount"`
	TotalCount     int                       `json:"total_count"`
	Categories     []CategoryStatistics      `json:"categories"`
	TopCategory    *CategoryStatistics       `json:"top_category,omitempty"`
	ChartData      []ChartData               `json:"chart_data,omitempty"`
	BudgetUsages   []BudgetUsage             `json:"budget_usages,omitempty"`
	PaymentMethods []PaymentMethodStatistics `json:"payment_methods,omitempty"`
}

// CategoryKeywordStatistics breaks one category down by keyword
type CategoryKeywordStatistics struct {
	Period        string              `json:"period"`
	CategoryID    int                 `json:"category_id"`
	CategoryTotal decimal.Decimal     `json:"category_total"`
	Keywords      []KeywordStatistics `json:"keywords"`
	ChartData     []ChartData         `json:"chart_data,omitempty"`
}

// StatisticsChanges are the deltas between two periods. Percentages are
// zero when the previous value is zero.
type StatisticsChanges struct {
	AmountChange        decimal.Decimal `json:"amount_change"`
	AmountChangePercent decimal.Decimal `json:"amount_change_percent"`
	CountChange         int             `json:"count_change"`
	CountChangePercent  decimal.Decimal `json:"count_change_percent"`
}

// StatisticsComparison pairs two snapshots with their deltas
type StatisticsComparison struct {
	Current  *Statistics       `json:"current"`
	Previous *Statistics       `json:"previous"`
	Changes  StatisticsChanges `json:"changes"`
}

// StatisticsSummary is the headline view of a snapshot
type StatisticsSummary struct {
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	TotalCount    int                 `json:"total_count"`
	AverageAmount decimal.Decimal     `json:"average_amount"`
	Period        string              `json:"period"`
	TopCategory   *CategoryStatistics `json:"top_category,omitempty"`
}

// StatisticsRepository defines the remote statistics reads
type StatisticsRepository interface {
	Get(ctx context.Context, params StatisticsParams) (*Statistics, error)
	GetCategoryKeywords(ctx context.Context, params StatisticsParams) (*CategoryKeywordStatistics, error)
}

// StatisticsExport is a flattened snapshot for export
type StatisticsExport struct {
	Period     string                  `json:"period"`
	Summary    StatisticsExportSummary `json:"summary"`
	Categories []StatisticsExportRow   `json:"categories"`
	ExportedAt time.Time               `json:"exported_at"`
}

// StatisticsExportSummary holds the export totals
type StatisticsExportSummary struct {
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalCount    int             `json:"total_count"`
	AverageAmount decimal.Decimal `json:"average_amount"`
}

// StatisticsExportRow is one category line of an export
type StatisticsExportRow struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}
