package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peksoon/account/internal/domain"
	"github.com/peksoon/account/internal/testutil"
)

func TestDepositPathStore_ActiveAndOptions(t *testing.T) {
	repo := testutil.NewMockDepositPathRepository()
	repo.AddDepositPath(domain.DepositPath{ID: 1, Name: "현금", IsActive: true})
	repo.AddDepositPath(domain.DepositPath{ID: 2, Name: "급여통장", IsActive: true})
	repo.AddDepositPath(domain.DepositPath{ID: 3, Name: "해지계좌", IsActive: false})
	store := NewDepositPathStore(repo, zerolog.Nop())

	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, store.All(), 3)
	assert.Len(t, store.Active(), 2)

	options := store.Options()
	require.Len(t, options, 2)
	assert.Equal(t, domain.Option{ID: 2, Name: "급여통장", FullName: "급여통장", IsActive: true}, options[1])

	p, ok := store.ByName("해지계좌")
	require.True(t, ok)
	assert.Equal(t, 3, p.ID)
}

func TestDepositPathStore_CreateDelete(t *testing.T) {
	repo := testutil.NewMockDepositPathRepository()
	store := NewDepositPathStore(repo, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, domain.DepositPathInput{Name: "비상금"}))
	p, ok := store.ByName("비상금")
	require.True(t, ok)

	require.NoError(t, store.Delete(ctx, p.ID))
	_, ok = store.ByID(p.ID)
	assert.False(t, ok)
}

func TestDepositPathStore_Delete_NotFound(t *testing.T) {
	store := NewDepositPathStore(testutil.NewMockDepositPathRepository(), zerolog.Nop())

	err := store.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
