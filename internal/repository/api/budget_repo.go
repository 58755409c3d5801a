package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/peksoon/account/internal/domain"
	"github.com/peksoon/account/internal/transport"
)

// BudgetRepository implements domain.BudgetRepository over /category-budgets
type BudgetRepository struct {
	res resource
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(client *transport.Client) *BudgetRepository {
	return &BudgetRepository{res: resource{client: client, path: "/category-budgets"}}
}

type budgetPayload struct {
	CategoryID    int         `json:"category_id"`
	UserName      string      `json:"user_name"`
	MonthlyBudget json.Number `json:"monthly_budget"`
	YearlyBudget  json.Number `json:"yearly_budget"`
}

type budgetAmountPayload struct {
	CategoryID int         `json:"category_id"`
	UserName   string      `json:"user_name"`
	Amount     json.Number `json:"amount"`
}

func toBudgetPayload(input domain.BudgetInput) budgetPayload {
	return budgetPayload{
		CategoryID:    input.CategoryID,
		UserName:      input.UserName,
		MonthlyBudget: wireAmount(input.MonthlyBudget),
		YearlyBudget:  wireAmount(input.YearlyBudget),
	}
}

func userQuery(userName string, categoryID int) url.Values {
	query := url.Values{"user": {userName}}
	if categoryID > 0 {
		query.Set("category_id", strconv.Itoa(categoryID))
	}
	return query
}

// List retrieves a user's budgets, optionally for one category
func (r *BudgetRepository) List(ctx context.Context, userName string, categoryID int) ([]domain.Budget, error) {
	var out []domain.Budget
	if err := r.res.list(ctx, userQuery(userName, categoryID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates a budget; the server answers 409 for a duplicate
// (category, user) pair
func (r *BudgetRepository) Create(ctx context.Context, input domain.BudgetInput) error {
	return r.res.create(ctx, toBudgetPayload(input))
}

// Update replaces both thresholds of a budget
func (r *BudgetRepository) Update(ctx context.Context, id int, input domain.BudgetInput) error {
	return r.res.update(ctx, id, toBudgetPayload(input))
}

// UpdatePeriod sets a single threshold for a (category, user) pair
func (r *BudgetRepository) UpdatePeriod(ctx context.Context, period domain.BudgetPeriod, categoryID int, userName string, amount decimal.Decimal) error {
	if categoryID <= 0 {
		return domain.ErrCategoryIDRequired
	}
	var path string
	switch period {
	case domain.BudgetPeriodMonthly:
		path = r.res.path + "/update-monthly"
	case domain.BudgetPeriodYearly:
		path = r.res.path + "/update-yearly"
	default:
		return domain.ErrValidation
	}
	body := budgetAmountPayload{CategoryID: categoryID, UserName: userName, Amount: wireAmount(amount)}
	return r.res.client.Put(ctx, path, nil, body, nil)
}

// Delete deletes a budget
func (r *BudgetRepository) Delete(ctx context.Context, id int) error {
	return r.res.delete(ctx, id)
}

// Usage retrieves the budget usage of every category for a user
func (r *BudgetRepository) Usage(ctx context.Context, userName string) ([]domain.BudgetUsage, error) {
	var out []domain.BudgetUsage
	if err := r.res.client.Get(ctx, r.res.path+"/usage", userQuery(userName, 0), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UsageForCategory retrieves the budget usage of one category
func (r *BudgetRepository) UsageForCategory(ctx context.Context, userName string, categoryID int) (*domain.BudgetUsage, error) {
	if categoryID <= 0 {
		return nil, domain.ErrCategoryIDRequired
	}
	var out domain.BudgetUsage
	if err := r.res.client.Get(ctx, r.res.path+"/usage", userQuery(userName, categoryID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
