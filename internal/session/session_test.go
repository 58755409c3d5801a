package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peksoon/account/internal/config"
	"github.com/peksoon/account/internal/domain"
	"github.com/peksoon/account/internal/testutil"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		API:      config.APIConfig{BaseURL: baseURL, RateBurst: 10},
		LogLevel: "info",
		Env:      "test",
		Defaults: config.DefaultsConfig{PaymentMethodID: 1, DepositPath: "현금"},
	}
}

func serveReferences(backend *testutil.Backend) {
	backend.JSON(http.MethodGet, "/categories", http.StatusOK, []map[string]any{
		{"id": 1, "name": "식비", "type": "out", "is_active": true},
		{"id": 2, "name": "교통", "type": "out", "is_active": true},
		{"id": 3, "name": "급여", "type": "in", "is_active": true},
	})
	backend.JSON(http.MethodGet, "/payment-methods", http.StatusOK, []map[string]any{
		{"id": 1, "name": "현금", "is_active": true},
		{"id": 2, "name": "카드", "is_active": true, "children": []map[string]any{
			{"id": 21, "name": "신한", "parent_id": 2, "is_active": true},
		}},
	})
}

func TestSession_Prime(t *testing.T) {
	backend := testutil.NewBackend(t)
	serveReferences(backend)
	s := New(testConfig(backend.URL()), zerolog.Nop())
	defer s.Close()

	require.NoError(t, s.Prime(context.Background()))

	assert.Len(t, s.Categories.All(), 3)
	_, ok := s.PaymentMethods.ByName("신한")
	assert.True(t, ok)
	assert.False(t, backend.Last(t).Query.Has("type"))
}

func TestSession_Prime_Error(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.JSON(http.MethodGet, "/categories", http.StatusOK, []any{})
	backend.Message(http.MethodGet, "/payment-methods", http.StatusInternalServerError, "boom")
	s := New(testConfig(backend.URL()), zerolog.Nop())

	err := s.Prime(context.Background())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSession_LedgerRoundTrip(t *testing.T) {
	backend := testutil.NewBackend(t)
	serveReferences(backend)
	rows := backend.ServeLedger()
	s := New(testConfig(backend.URL()), zerolog.Nop())
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.Prime(ctx))

	err := s.Ledger.Save(ctx, domain.Entry{
		Date:        time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local),
		User:        "민수",
		Money:       decimal.NewFromInt(12000),
		CategoryID:  1,
		KeywordName: "점심",
		Detail:      domain.ExpenseDetail{PaymentMethodID: 1},
	})
	require.NoError(t, err)

	entries := s.Ledger.Entries()
	require.Len(t, entries, 1)
	saved := entries[0]
	assert.NotEmpty(t, saved.UUID)
	assert.Equal(t, domain.LoadStateLoaded, s.Ledger.State())

	saved.CategoryName = "교통"
	saved.Detail = domain.ExpenseDetail{PaymentMethodName: "신한"}
	require.NoError(t, s.Ledger.Update(ctx, saved))

	stored := rows.Rows("out")
	require.Len(t, stored, 1)
	assert.Equal(t, float64(2), stored[0]["category_id"])
	assert.Equal(t, float64(21), stored[0]["payment_method_id"])

	updated := s.Ledger.Entries()[0]
	assert.Equal(t, 2, updated.CategoryID)

	s.Ledger.Delete(ctx, updated)
	assert.Empty(t, rows.Rows("out"))
	assert.Empty(t, s.Ledger.Entries())
}

func TestSession_Close_ClearsCaches(t *testing.T) {
	backend := testutil.NewBackend(t)
	serveReferences(backend)
	s := New(testConfig(backend.URL()), zerolog.Nop())
	require.NoError(t, s.Prime(context.Background()))

	s.Close()
	assert.Empty(t, s.Categories.All())
	assert.Empty(t, s.PaymentMethods.All())
	assert.Equal(t, domain.LoadStateIdle, s.Ledger.State())
}
