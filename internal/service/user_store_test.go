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

func TestUserStore_Options(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	repo.AddUser(domain.User{ID: 1, Name: "민수", IsActive: true})
	repo.AddUser(domain.User{ID: 2, Name: "지영", IsActive: true})
	store := NewUserStore(repo, zerolog.Nop())

	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.UserOption{
		{Value: "민수", Label: "민수", ID: 1},
		{Value: "지영", Label: "지영", ID: 2},
	}, store.Options())
}

func TestUserStore_Delete_InUse(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	repo.AddUser(domain.User{ID: 1, Name: "민수", IsActive: true})
	repo.InUse[1] = true
	store := NewUserStore(repo, zerolog.Nop())
	ctx := context.Background()

	inUse, err := store.CheckUsage(ctx, 1)
	require.NoError(t, err)
	assert.True(t, inUse)

	err = store.Delete(ctx, 1)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}

	require.NoError(t, store.ForceDelete(ctx, 1))
	assert.Empty(t, store.All())
}

func TestUserStore_CheckUsage_Error(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	repo.CheckUsageFn = func(int) (bool, error) { return false, domain.ErrNetwork }
	store := NewUserStore(repo, zerolog.Nop())

	_, err := store.CheckUsage(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestUserStore_Update(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	repo.AddUser(domain.User{ID: 1, Name: "민수", IsActive: true})
	store := NewUserStore(repo, zerolog.Nop())

	err := store.Update(context.Background(), 1, domain.UserInput{Name: "민수", Email: "minsu@example.com"})
	require.NoError(t, err)

	u, ok := store.ByName("민수")
	require.True(t, ok)
	assert.Equal(t, "minsu@example.com", u.Email)
}
