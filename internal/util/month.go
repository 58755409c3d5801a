package util

import (
	"fmt"
	"time"
)

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// NextMonth returns the year and month for the next month
func NextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// PadMonth formats a month number as two digits ("03")
func PadMonth(month int) string {
	return fmt.Sprintf("%02d", month)
}

// MonthBounds returns the first and last day of a month as YYYY-MM-DD
func MonthBounds(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	// Last day of month is day 0 of next month
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// ValidMonth reports whether month is in 1..12
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}
