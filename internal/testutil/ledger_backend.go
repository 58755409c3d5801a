package testutil

import (
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// LedgerRows is the in-memory entry table behind ServeLedger, keyed by
// entry type ("out" or "in")
type LedgerRows struct {
	mu   sync.Mutex
	rows map[string][]map[string]any
}

// Rows returns a copy of the stored rows of one type
func (l *LedgerRows) Rows(entryType string) []map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]map[string]any, len(l.rows[entryType]))
	copy(out, l.rows[entryType])
	return out
}

// Seed stores a row and returns its generated uuid
func (l *LedgerRows) Seed(entryType string, row map[string]any) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := uuid.NewString()
	row["uuid"] = id
	l.rows[entryType] = append(l.rows[entryType], row)
	return id
}

// ServeLedger registers stateful month/insert/update/delete routes for both
// entry types. Inserted rows get a fresh uuid; month reads match the
// "YYYY-MM" prefix of each row's date.
func (b *Backend) ServeLedger() *LedgerRows {
	l := &LedgerRows{rows: make(map[string][]map[string]any)}

	for _, entryType := range []string{"out", "in"} {
		entryType := entryType

		b.Handle(http.MethodGet, "/v2/month-"+entryType+"-account", func(c echo.Context) error {
			prefix := c.QueryParam("year") + "-" + c.QueryParam("month")
			matched := []map[string]any{}
			for _, row := range l.Rows(entryType) {
				if date, _ := row["date"].(string); strings.HasPrefix(date, prefix) {
					matched = append(matched, row)
				}
			}
			return c.JSON(http.StatusOK, matched)
		})

		b.Handle(http.MethodPost, "/v2/"+entryType+"-account/insert", func(c echo.Context) error {
			var row map[string]any
			if err := c.Bind(&row); err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
			}
			l.Seed(entryType, row)
			return c.JSON(http.StatusCreated, map[string]string{"message": "created"})
		})

		b.Handle(http.MethodPut, "/v2/"+entryType+"-account/update", func(c echo.Context) error {
			var row map[string]any
			if err := c.Bind(&row); err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
			}
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, existing := range l.rows[entryType] {
				if existing["uuid"] == row["uuid"] {
					l.rows[entryType][i] = row
					return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
				}
			}
			return c.JSON(http.StatusNotFound, map[string]string{"message": "entry not found"})
		})

		b.Handle(http.MethodDelete, "/v2/"+entryType+"-account/delete", func(c echo.Context) error {
			id := c.QueryParam("uuid")
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, existing := range l.rows[entryType] {
				if existing["uuid"] == id {
					l.rows[entryType] = append(l.rows[entryType][:i], l.rows[entryType][i+1:]...)
					return c.NoContent(http.StatusOK)
				}
			}
			return c.JSON(http.StatusNotFound, map[string]string{"message": "entry not found"})
		})
	}
	return l
}
