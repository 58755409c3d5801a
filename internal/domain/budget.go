package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-category spending threshold for one user.
// The server keeps at most one budget per (CategoryID, UserName).
type Budget struct {
	ID            int             `json:"id"`
	CategoryID    int             `json:"category_id"`
	CategoryName  string          `json:"category_name,omitempty"`
	UserName      string          `json:"user_name"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	YearlyBudget  decimal.Decimal `json:"yearly_budget"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BudgetInput is the payload for creating or updating a budget
type BudgetInput struct {
	CategoryID    int             `json:"category_id"`
	UserName      string          `json:"user_name"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	YearlyBudget  decimal.Decimal `json:"yearly_budget"`
}

// BudgetUsage is the server-derived spend against a budget. Read-only.
type BudgetUsage struct {
	CategoryID       int             `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	MonthlyBudget    decimal.Decimal `json:"monthly_budget"`
	YearlyBudget     decimal.Decimal `json:"yearly_budget"`
	MonthlyUsed      decimal.Decimal `json:"monthly_used"`
	YearlyUsed       decimal.Decimal `json:"yearly_used"`
	MonthlyRemaining decimal.Decimal `json:"monthly_remaining"`
	YearlyRemaining  decimal.Decimal `json:"yearly_remaining"`
	MonthlyPercent   float64         `json:"monthly_percent"`
	YearlyPercent    float64         `json:"yearly_percent"`
	IsMonthlyOver    bool            `json:"is_monthly_over"`
	IsYearlyOver     bool            `json:"is_yearly_over"`
}

// IsOver reports whether either threshold is exceeded
func (u BudgetUsage) IsOver() bool {
	return u.IsMonthlyOver || u.IsYearlyOver
}

// BudgetPeriod selects which threshold a single-field update targets
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// BudgetRepository defines the remote budget operations.
// A zero categoryID means "all categories".
type BudgetRepository interface {
	List(ctx context.Context, userName string, categoryID int) ([]Budget, error)
	Create(ctx context.Context, input BudgetInput) error
	Update(ctx context.Context, id int, input BudgetInput) error
	UpdatePeriod(ctx context.Context, period BudgetPeriod, categoryID int, userName string, amount decimal.Decimal) error
	Delete(ctx context.Context, id int) error
	Usage(ctx context.Context, userName string) ([]BudgetUsage, error)
	UsageForCategory(ctx context.Context, userName string, categoryID int) (*BudgetUsage, error)
}
