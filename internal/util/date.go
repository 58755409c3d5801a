package util

import (
	"fmt"
	"strings"
	"time"
)

const (
	wireDateTimeLayout = "2006-01-02 15:04:05"
	wireDateLayout     = "2006-01-02"
)

// layouts accepted from the backend, most specific first
var wireLayouts = []string{
	wireDateTimeLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	wireDateLayout,
}

// FormatWireDate renders t as local "YYYY-MM-DD HH:mm:ss"
func FormatWireDate(t time.Time) string {
	return t.In(time.Local).Format(wireDateTimeLayout)
}

// ParseWireDate parses a backend date string into local time.
// Values without a zone are interpreted as local.
func ParseWireDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range wireLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.In(time.Local).Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// DatePrefix returns the YYYY-MM-DD part of a wire date string
func DatePrefix(s string) string {
	if len(s) >= len(wireDateLayout) {
		return s[:len(wireDateLayout)]
	}
	return s
}
