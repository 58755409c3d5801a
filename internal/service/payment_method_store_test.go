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

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

// cardHierarchy is 현금, 카드{신한, 국민(inactive)}, 계좌(inactive){토스}
func cardHierarchy() []domain.PaymentMethod {
	return []domain.PaymentMethod{
		{ID: 1, Name: "현금", IsActive: true},
		{ID: 2, Name: "카드", IsActive: true, Children: []domain.PaymentMethod{
			{ID: 21, Name: "신한", ParentID: intPtr(2), IsActive: true},
			{ID: 22, Name: "국민", ParentID: intPtr(2), IsActive: false},
		}},
		{ID: 3, Name: "계좌", IsActive: false, Children: []domain.PaymentMethod{
			{ID: 31, Name: "토스", ParentID: intPtr(3), IsActive: true},
		}},
	}
}

func newPaymentMethodFixture(t *testing.T) (*testutil.MockPaymentMethodRepository, *PaymentMethodStore) {
	t.Helper()
	repo := testutil.NewMockPaymentMethodRepository()
	for _, pm := range cardHierarchy() {
		repo.AddPaymentMethod(pm)
	}
	store := NewPaymentMethodStore(repo, zerolog.Nop())
	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)
	return repo, store
}

func TestFlattenPaymentMethods_RootThenChildren(t *testing.T) {
	flat := FlattenPaymentMethods(cardHierarchy())

	var ids []int
	for _, m := range flat {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{1, 2, 21, 31}, ids)
}

func TestFlattenPaymentMethods_Empty(t *testing.T) {
	assert.Empty(t, FlattenPaymentMethods(nil))
}

func TestPaymentMethodStore_Parents(t *testing.T) {
	_, store := newPaymentMethodFixture(t)

	parents := store.Parents()
	require.Len(t, parents, 2)
	assert.Equal(t, "현금", parents[0].Name)
	assert.Equal(t, "카드", parents[1].Name)
}

func TestPaymentMethodStore_ByID_FindsChildren(t *testing.T) {
	_, store := newPaymentMethodFixture(t)

	child, ok := store.ByID(22)
	require.True(t, ok)
	assert.Equal(t, "국민", child.Name)

	_, ok = store.ByID(99)
	assert.False(t, ok)
}

func TestPaymentMethodStore_ByName_SkipsInactive(t *testing.T) {
	_, store := newPaymentMethodFixture(t)

	m, ok := store.ByName("신한")
	require.True(t, ok)
	assert.Equal(t, 21, m.ID)

	_, ok = store.ByName("국민")
	assert.False(t, ok)
}

func TestPaymentMethodStore_Create_ChildRefreshes(t *testing.T) {
	repo, store := newPaymentMethodFixture(t)

	err := store.Create(context.Background(), domain.PaymentMethodInput{Name: "현대", ParentID: intPtr(2)})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.ListCalls)
	m, ok := store.ByName("현대")
	require.True(t, ok)
	require.NotNil(t, m.ParentID)
	assert.Equal(t, 2, *m.ParentID)
}

func TestPaymentMethodStore_Update_Deactivates(t *testing.T) {
	_, store := newPaymentMethodFixture(t)

	err := store.Update(context.Background(), 1, domain.PaymentMethodInput{Name: "현금", IsActive: boolPtr(false)})
	require.NoError(t, err)

	assert.Len(t, store.Parents(), 1)
	assert.Len(t, store.Options(), 1)
}

func TestPaymentMethodStore_FetchAll_Error(t *testing.T) {
	repo, store := newPaymentMethodFixture(t)
	repo.ListFn = func() ([]domain.PaymentMethod, error) { return nil, domain.ErrNetwork }

	_, err := store.FetchAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Len(t, store.All(), 3)
}
