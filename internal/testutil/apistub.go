package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

// RecordedRequest is one request received by a Backend
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Decode unmarshals the recorded body into v (helper for tests)
func (r RecordedRequest) Decode(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode recorded %s %s body: %v", r.Method, r.Path, err)
	}
}

// Backend is an in-process account book server for transport and
// repository tests. Routes are registered per test; every request is
// recorded before it reaches its handler.
type Backend struct {
	Echo   *echo.Echo
	Server *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewBackend starts a Backend that is closed when the test ends
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{Echo: echo.New()}
	b.Echo.HideBanner = true
	b.Echo.HidePort = true
	b.Echo.Use(b.record)

	b.Server = httptest.NewServer(b.Echo)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the base URL of the server
func (b *Backend) URL() string {
	return b.Server.URL
}

func (b *Backend) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}

		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method: req.Method,
			Path:   req.URL.Path,
			Query:  req.URL.Query(),
			Header: req.Header.Clone(),
			Body:   body,
		})
		b.mu.Unlock()

		return next(c)
	}
}

// Handle registers a handler for method and path
func (b *Backend) Handle(method, path string, h echo.HandlerFunc) {
	b.Echo.Add(method, path, h)
}

// JSON registers a route that always answers status with body
func (b *Backend) JSON(method, path string, status int, body any) {
	b.Handle(method, path, func(c echo.Context) error {
		return c.JSON(status, body)
	})
}

// Message registers a route that answers status with {"message": msg}
func (b *Backend) Message(method, path string, status int, msg string) {
	b.JSON(method, path, status, map[string]string{"message": msg})
}

// Requests returns every recorded request in arrival order
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// Last returns the most recent request, failing the test when there is none
func (b *Backend) Last(t *testing.T) RecordedRequest {
	t.Helper()
	reqs := b.Requests()
	if len(reqs) == 0 {
		t.Fatal("expected at least one request, got none")
	}
	return reqs[len(reqs)-1]
}

// Count returns how many requests hit method and path
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

