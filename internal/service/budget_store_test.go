package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peksoon/account/internal/domain"
	"github.com/peksoon/account/internal/testutil"
	"github.com/peksoon/account/internal/transport"
)

func won(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newBudgetFixture() (*testutil.MockBudgetRepository, *testutil.MockEntryRepository, *BudgetStore) {
	budgets := testutil.NewMockBudgetRepository()
	budgets.AddBudget(domain.Budget{ID: 1, CategoryID: 10, UserName: "민수", MonthlyBudget: won(300000), YearlyBudget: won(3600000)})
	budgets.AddBudget(domain.Budget{ID: 2, CategoryID: 20, UserName: "민수", MonthlyBudget: won(100000), YearlyBudget: won(1200000)})
	budgets.AddBudget(domain.Budget{ID: 3, CategoryID: 10, UserName: "지영", MonthlyBudget: won(50000), YearlyBudget: won(600000)})
	budgets.AddUsage(domain.BudgetUsage{CategoryID: 10, MonthlyUsed: won(320000), YearlyUsed: won(900000), IsMonthlyOver: true})
	budgets.AddUsage(domain.BudgetUsage{CategoryID: 20, MonthlyUsed: won(40000), YearlyUsed: won(1300000), IsYearlyOver: true})
	budgets.AddUsage(domain.BudgetUsage{CategoryID: 30, MonthlyUsed: won(1000), YearlyUsed: won(2000)})

	entries := testutil.NewMockEntryRepository()
	return budgets, entries, NewBudgetStore(budgets, entries, zerolog.Nop())
}

func TestBudgetStore_FetchBudgets_ByUser(t *testing.T) {
	_, _, store := newBudgetFixture()

	got := store.FetchBudgets(context.Background(), "민수", 0)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, store.BudgetCategoriesCount())
	assert.True(t, store.TotalMonthlyBudget().Equal(won(400000)))
	assert.True(t, store.TotalYearlyBudget().Equal(won(4800000)))

	b, ok := store.BudgetByCategory(20)
	require.True(t, ok)
	assert.Equal(t, 2, b.ID)
}

func TestBudgetStore_FetchBudgets_ErrorClearsList(t *testing.T) {
	repo, _, store := newBudgetFixture()
	ctx := context.Background()
	store.FetchBudgets(ctx, "민수", 0)

	repo.ListFn = func(string, int) ([]domain.Budget, error) { return nil, domain.ErrNetwork }
	got := store.FetchBudgets(ctx, "민수", 0)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, store.Budgets())
	assert.ErrorIs(t, store.Err(), domain.ErrNetwork)
	assert.Equal(t, domain.MessageNetwork, store.ErrorMessage())
}

func TestBudgetStore_Create_Conflict(t *testing.T) {
	repo, _, store := newBudgetFixture()

	err := store.Create(context.Background(), domain.BudgetInput{CategoryID: 10, UserName: "민수", MonthlyBudget: won(1)})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, domain.MessageBudgetConflict, store.ErrorMessage())
	assert.Equal(t, 0, repo.ListCalls)
}

func TestBudgetStore_Create_ServerMessageWins(t *testing.T) {
	repo, _, store := newBudgetFixture()
	repo.CreateFn = func(domain.BudgetInput) error {
		return &transport.Error{Kind: transport.HTTPError, Status: 409, Message: "이미 예산이 있습니다"}
	}

	err := store.Create(context.Background(), domain.BudgetInput{CategoryID: 10, UserName: "민수"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "이미 예산이 있습니다", store.ErrorMessage())
}

func TestBudgetStore_Create_RefetchesUser(t *testing.T) {
	repo, _, store := newBudgetFixture()

	err := store.Create(context.Background(), domain.BudgetInput{CategoryID: 30, UserName: "지영", MonthlyBudget: won(10000)})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.ListCalls)
	assert.Len(t, store.Budgets(), 2)
	assert.Empty(t, store.ErrorMessage())
}

func TestBudgetStore_Update_FallbackMessage(t *testing.T) {
	repo, _, store := newBudgetFixture()
	repo.UpdateFn = func(int, domain.BudgetInput) error { return domain.ErrValidation }

	err := store.Update(context.Background(), 1, domain.BudgetInput{}, "민수")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, MessageBudgetUpdateFailed, store.ErrorMessage())
}

func TestBudgetStore_Delete_Refetches(t *testing.T) {
	_, _, store := newBudgetFixture()
	ctx := context.Background()
	store.FetchBudgets(ctx, "민수", 0)

	require.NoError(t, store.Delete(ctx, 2, "민수"))
	assert.Len(t, store.Budgets(), 1)
	_, ok := store.BudgetByCategory(20)
	assert.False(t, ok)
}

func TestBudgetStore_UpdateMonthlyAndYearly(t *testing.T) {
	repo, _, store := newBudgetFixture()
	ctx := context.Background()

	require.NoError(t, store.UpdateMonthly(ctx, 10, "민수", won(350000)))
	require.NoError(t, store.UpdateYearly(ctx, 10, "민수", won(4000000)))

	b, ok := store.BudgetByCategory(10)
	require.True(t, ok)
	assert.True(t, b.MonthlyBudget.Equal(won(350000)))
	assert.True(t, b.YearlyBudget.Equal(won(4000000)))
	assert.Equal(t, 2, repo.ListCalls)
}

func TestBudgetStore_UpdateYearly_Error(t *testing.T) {
	repo, _, store := newBudgetFixture()
	repo.UpdatePeriodFn = func(domain.BudgetPeriod, int, string, decimal.Decimal) error {
		return domain.ErrNotFound
	}

	err := store.UpdateYearly(context.Background(), 99, "민수", won(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, MessageYearlyUpdateFailed, store.ErrorMessage())
}

func TestBudgetStore_FetchUsage_Totals(t *testing.T) {
	_, _, store := newBudgetFixture()

	usages := store.FetchUsage(context.Background(), "민수")
	assert.Len(t, usages, 3)
	assert.Equal(t, 2, store.OverBudgetCount())
	assert.True(t, store.TotalMonthlyUsed().Equal(won(361000)))
	assert.True(t, store.TotalYearlyUsed().Equal(won(2202000)))

	over := store.OverBudgetCategories()
	assert.Equal(t, 10, over[0].CategoryID)
	assert.Equal(t, 20, over[1].CategoryID)
}

func TestBudgetStore_FetchUsage_ErrorClearsList(t *testing.T) {
	repo, _, store := newBudgetFixture()
	ctx := context.Background()
	store.FetchUsage(ctx, "민수")

	repo.UsageFn = func(string) ([]domain.BudgetUsage, error) { return nil, domain.ErrValidation }
	got := store.FetchUsage(ctx, "민수")

	assert.Empty(t, got)
	assert.Empty(t, store.Usages())
	assert.Equal(t, MessageBudgetUsageFailed, store.ErrorMessage())
}

func TestBudgetStore_FetchCategoryUsage(t *testing.T) {
	_, _, store := newBudgetFixture()
	ctx := context.Background()

	u := store.FetchCategoryUsage(ctx, "민수", 20)
	require.NotNil(t, u)
	assert.True(t, u.IsYearlyOver)
	assert.Empty(t, store.Usages())

	assert.Nil(t, store.FetchCategoryUsage(ctx, "민수", 99))
	assert.ErrorIs(t, store.Err(), domain.ErrNotFound)
}

func TestBudgetStore_CreateExpenseWithBudget(t *testing.T) {
	_, entries, store := newBudgetFixture()
	entries.InsertWithBudgetFn = func(e domain.Entry) (*domain.BudgetUsage, error) {
		return &domain.BudgetUsage{CategoryID: e.CategoryID, MonthlyUsed: e.Money}, nil
	}

	usage, err := store.CreateExpenseWithBudget(context.Background(), domain.Entry{
		User:       "민수",
		Money:      won(15000),
		CategoryID: 10,
		Detail:     domain.ExpenseDetail{PaymentMethodID: 1},
	})
	require.NoError(t, err)
	require.NotNil(t, usage)
	assert.Equal(t, 10, usage.CategoryID)
	assert.Len(t, store.Usages(), 3)
}

func TestBudgetStore_CreateExpenseWithBudget_Error(t *testing.T) {
	_, entries, store := newBudgetFixture()
	entries.InsertWithBudgetFn = func(domain.Entry) (*domain.BudgetUsage, error) {
		return nil, domain.ErrNetwork
	}

	_, err := store.CreateExpenseWithBudget(context.Background(), domain.Entry{Detail: domain.ExpenseDetail{}})
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, domain.MessageNetwork, store.ErrorMessage())
	assert.Empty(t, store.Usages())
}

func TestBudgetStore_Reset(t *testing.T) {
	repo, _, store := newBudgetFixture()
	ctx := context.Background()
	store.FetchBudgets(ctx, "민수", 0)
	store.FetchUsage(ctx, "민수")
	repo.UsageFn = func(string) ([]domain.BudgetUsage, error) { return nil, domain.ErrNetwork }
	store.FetchUsage(ctx, "민수")

	store.Reset()
	assert.Empty(t, store.Budgets())
	assert.Empty(t, store.Usages())
	assert.NoError(t, store.Err())
	assert.Empty(t, store.ErrorMessage())
	assert.True(t, store.TotalMonthlyBudget().IsZero())
}
