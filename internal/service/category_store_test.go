package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peksoon/account/internal/domain"
	"github.com/peksoon/account/internal/testutil"
)

func newCategoryFixture() (*testutil.MockCategoryRepository, *CategoryStore) {
	repo := testutil.NewMockCategoryRepository()
	repo.AddCategory(domain.Category{ID: 1, Name: "식비", Type: domain.EntryTypeExpense, IsActive: true})
	repo.AddCategory(domain.Category{ID: 2, Name: "교통", Type: domain.EntryTypeExpense, IsActive: true})
	repo.AddCategory(domain.Category{ID: 3, Name: "급여", Type: domain.EntryTypeIncome, IsActive: true})
	repo.AddCategory(domain.Category{ID: 4, Name: "식비", Type: domain.EntryTypeIncome, IsActive: true})
	return repo, NewCategoryStore(repo, zerolog.Nop())
}

func TestCategoryStore_FetchAll_SplitsByType(t *testing.T) {
	_, store := newCategoryFixture()

	all, err := store.FetchAll(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Len(t, store.OutCategories(), 2)
	assert.Len(t, store.InCategories(), 2)
}

func TestCategoryStore_FetchAll_FilteredReplacesCache(t *testing.T) {
	_, store := newCategoryFixture()
	ctx := context.Background()

	_, err := store.FetchAll(ctx, "")
	require.NoError(t, err)

	got, err := store.FetchAll(ctx, domain.EntryTypeIncome)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Empty(t, store.OutCategories())
}

func TestCategoryStore_FetchAll_ErrorKeepsCache(t *testing.T) {
	repo, store := newCategoryFixture()
	ctx := context.Background()

	_, err := store.FetchAll(ctx, "")
	require.NoError(t, err)

	repo.ListFn = func(domain.EntryType) ([]domain.Category, error) {
		return nil, domain.ErrNetwork
	}
	_, err = store.FetchAll(ctx, "")
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("Expected ErrNetwork, got %v", err)
	}
	assert.Len(t, store.All(), 4)
}

func TestCategoryStore_ByName_DisambiguatesType(t *testing.T) {
	_, store := newCategoryFixture()
	_, err := store.FetchAll(context.Background(), "")
	require.NoError(t, err)

	out, ok := store.ByName("식비", domain.EntryTypeExpense)
	require.True(t, ok)
	assert.Equal(t, 1, out.ID)

	in, ok := store.ByName("식비", domain.EntryTypeIncome)
	require.True(t, ok)
	assert.Equal(t, 4, in.ID)

	_, ok = store.ByName("없음", domain.EntryTypeExpense)
	assert.False(t, ok)
}

func TestCategoryStore_Create_RefreshesAllTypes(t *testing.T) {
	repo, store := newCategoryFixture()
	ctx := context.Background()

	err := store.Create(ctx, domain.CategoryInput{Name: "주거", Type: domain.EntryTypeExpense, ExpenseType: domain.ExpenseKindFixed})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.ListCalls)
	assert.Len(t, store.All(), 5)
	c, ok := store.ByName("주거", domain.EntryTypeExpense)
	require.True(t, ok)
	assert.Equal(t, domain.ExpenseKindFixed, c.ExpenseType)
}

func TestCategoryStore_Create_Duplicate(t *testing.T) {
	repo, store := newCategoryFixture()

	err := store.Create(context.Background(), domain.CategoryInput{Name: "교통", Type: domain.EntryTypeExpense})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}
	if repo.ListCalls != 0 {
		t.Errorf("Expected no refresh after a failed create, got %d", repo.ListCalls)
	}
}

func TestCategoryStore_Delete_InUseThenForce(t *testing.T) {
	repo, store := newCategoryFixture()
	ctx := context.Background()
	repo.DeleteFn = func(int) error { return domain.ErrConflict }

	err := store.Delete(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, store.ForceDelete(ctx, 2))
	_, ok := store.ByID(2)
	assert.False(t, ok)
	assert.Len(t, store.All(), 3)
}

func TestCategoryStore_Update_Renames(t *testing.T) {
	_, store := newCategoryFixture()

	err := store.Update(context.Background(), 2, domain.CategoryInput{Name: "대중교통", Type: domain.EntryTypeExpense})
	require.NoError(t, err)

	c, ok := store.ByID(2)
	require.True(t, ok)
	assert.Equal(t, "대중교통", c.Name)
}

func TestCategoryStore_Clear(t *testing.T) {
	_, store := newCategoryFixture()
	_, err := store.FetchAll(context.Background(), "")
	require.NoError(t, err)

	store.Clear()
	assert.Empty(t, store.All())
}
