package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peksoon/account/internal/domain"
)

func newTestServer(t *testing.T, register func(e *echo.Echo)) *Client {
	t.Helper()
	e := echo.New()
	register(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zerolog.Nop(), Options{})
}

func TestClient_Get_DecodesResponse(t *testing.T) {
	var gotQuery url.Values
	var gotRequestID string
	client := newTestServer(t, func(e *echo.Echo) {
		e.GET("/categories", func(c echo.Context) error {
			gotQuery = c.QueryParams()
			gotRequestID = c.Request().Header.Get(RequestIDHeader)
			return c.JSON(http.StatusOK, []map[string]any{{"id": 1, "name": "Food", "type": "out"}})
		})
	})

	var out []domain.Category
	err := client.Get(context.Background(), "/categories", url.Values{"type": {"out"}}, &out)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "Food", out[0].Name)
	assert.Equal(t, domain.EntryTypeExpense, out[0].Type)
	assert.Equal(t, "out", gotQuery.Get("type"))
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_Post_SendsJSONBody(t *testing.T) {
	var got map[string]any
	client := newTestServer(t, func(e *echo.Echo) {
		e.POST("/keywords/upsert", func(c echo.Context) error {
			if err := c.Bind(&got); err != nil {
				return err
			}
			return c.NoContent(http.StatusCreated)
		})
	})

	err := client.Post(context.Background(), "/keywords/upsert", domain.KeywordInput{CategoryID: 3, Name: "lunch"}, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(3), got["category_id"])
	assert.Equal(t, "lunch", got["name"])
}

func TestClient_HTTPError_CarriesServerBody(t *testing.T) {
	client := newTestServer(t, func(e *echo.Echo) {
		e.POST("/category-budgets/create", func(c echo.Context) error {
			return c.JSON(http.StatusConflict, map[string]string{"code": "DUPLICATE_ENTRY", "message": "budget exists"})
		})
	})

	err := client.Post(context.Background(), "/category-budgets/create", map[string]int{"category_id": 1}, nil)
	require.Error(t, err)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, HTTPError, terr.Kind)
	assert.Equal(t, http.StatusConflict, terr.Status)
	assert.Equal(t, "DUPLICATE_ENTRY", terr.Code)
	assert.Equal(t, "budget exists", terr.Message)

	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.False(t, errors.Is(err, domain.ErrValidation))
	assert.False(t, errors.Is(err, domain.ErrNetwork))
	assert.Equal(t, "budget exists", domain.UserMessage(err, domain.MessageBudgetConflict))
}

func TestClient_HTTPError_Taxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{"bad request is validation", http.StatusBadRequest, domain.ErrValidation},
		{"server error is validation", http.StatusInternalServerError, domain.ErrValidation},
		{"not found", http.StatusNotFound, domain.ErrNotFound},
		{"conflict", http.StatusConflict, domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(e *echo.Echo) {
				e.DELETE("/users/delete", func(c echo.Context) error {
					return c.NoContent(tt.status)
				})
			})

			err := client.Delete(context.Background(), "/users/delete", url.Values{"id": {"1"}})
			assert.True(t, errors.Is(err, tt.target), "expected %v, got %v", tt.target, err)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := NewClient(baseURL, zerolog.Nop(), Options{Timeout: time.Second})
	err := client.Get(context.Background(), "/users", nil, nil)
	require.Error(t, err)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, NetworkError, terr.Kind)
	assert.True(t, errors.Is(err, domain.ErrNetwork))
	assert.Equal(t, domain.MessageNetwork, domain.UserMessage(err, "ignored"))
}

func TestClient_ContextCanceled(t *testing.T) {
	client := newTestServer(t, func(e *echo.Echo) {
		e.GET("/users", func(c echo.Context) error {
			return c.JSON(http.StatusOK, []any{})
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Get(ctx, "/users", nil, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNetwork))
}

func TestClient_NoRetries(t *testing.T) {
	calls := 0
	client := newTestServer(t, func(e *echo.Echo) {
		e.GET("/statistics", func(c echo.Context) error {
			calls++
			return c.NoContent(http.StatusServiceUnavailable)
		})
	})

	err := client.Get(context.Background(), "/statistics", nil, nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_Do_WaitsOnLimiter(t *testing.T) {
	var hits atomic.Int32
	e := echo.New()
	e.GET("/users", func(c echo.Context) error {
		hits.Add(1)
		return c.JSON(http.StatusOK, []any{})
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, zerolog.Nop(), Options{RateLimit: 1, RateBurst: 1})
	require.NoError(t, client.Get(context.Background(), "/users", nil, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := client.Get(ctx, "/users", nil, nil)

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNetwork))
	assert.Equal(t, int32(1), hits.Load(), "Second request should not reach the server")
}
