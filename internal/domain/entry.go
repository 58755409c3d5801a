package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType discriminates expense ("out") from income ("in") entries
type EntryType string

const (
	EntryTypeExpense EntryType = "out"
	EntryTypeIncome  EntryType = "in"
)

// Valid reports whether t is one of the two known entry types
func (t EntryType) Valid() bool {
	return t == EntryTypeExpense || t == EntryTypeIncome
}

// EntryDetail carries the fields that only exist for one entry type.
// Implemented by ExpenseDetail and IncomeDetail.
type EntryDetail interface {
	EntryType() EntryType
}

// ExpenseDetail holds the expense-only payment method reference
type ExpenseDetail struct {
	PaymentMethodID   int    `json:"payment_method_id"`
	PaymentMethodName string `json:"payment_method_name,omitempty"`
}

// EntryType implements EntryDetail
func (ExpenseDetail) EntryType() EntryType { return EntryTypeExpense }

// IncomeDetail holds the income-only deposit path reference
type IncomeDetail struct {
	DepositPathID int    `json:"deposit_path_id,omitempty"`
	DepositPath   string `json:"deposit_path"`
}

// EntryType implements EntryDetail
func (IncomeDetail) EntryType() EntryType { return EntryTypeIncome }

// Entry is one ledger transaction. Detail decides whether it is an expense
// or an income and therefore which reference fields are authoritative.
type Entry struct {
	UUID string `json:"uuid"`
	// ID is the generic identifier some callers fill instead of UUID.
	ID           string          `json:"id,omitempty"`
	Date         time.Time       `json:"date"`
	User         string          `json:"user"`
	Money        decimal.Decimal `json:"money"`
	CategoryID   int             `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	// Keyword is the free-text keyword typed in a form.
	Keyword     string      `json:"keyword,omitempty"`
	KeywordName string      `json:"keyword_name,omitempty"`
	Memo        string      `json:"memo"`
	Detail      EntryDetail `json:"-"`
}

// Type returns the entry type derived from Detail
func (e Entry) Type() EntryType {
	if e.Detail == nil {
		return ""
	}
	return e.Detail.EntryType()
}

// Expense returns the expense detail and whether the entry is an expense
func (e Entry) Expense() (ExpenseDetail, bool) {
	switch d := e.Detail.(type) {
	case ExpenseDetail:
		return d, true
	case *ExpenseDetail:
		if d != nil {
			return *d, true
		}
	}
	return ExpenseDetail{}, false
}

// Income returns the income detail and whether the entry is an income
func (e Entry) Income() (IncomeDetail, bool) {
	switch d := e.Detail.(type) {
	case IncomeDetail:
		return d, true
	case *IncomeDetail:
		if d != nil {
			return *d, true
		}
	}
	return IncomeDetail{}, false
}

// DateKey returns the YYYY-MM-DD prefix of the entry date in local time
func (e Entry) DateKey() string {
	return e.Date.In(time.Local).Format(DateLayout)
}

// Wire date layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// LoadState tracks the lifecycle of a store fetch
type LoadState string

const (
	LoadStateIdle    LoadState = "idle"
	LoadStateLoading LoadState = "loading"
	LoadStateLoaded  LoadState = "loaded"
	LoadStateErrored LoadState = "errored"
)

// SearchResult wraps entries returned by a search or range read.
// Degraded is set when the result was computed from the local cache after
// the server call failed; such results may be incomplete.
type SearchResult struct {
	Entries  []Entry `json:"entries"`
	Degraded bool    `json:"degraded"`
}

// EntryRepository defines the remote operations on ledger entries.
// Implementations tag every returned entry with its type.
type EntryRepository interface {
	ListMonth(ctx context.Context, entryType EntryType, year, month int) ([]Entry, error)
	ListRange(ctx context.Context, entryType EntryType, startDate, endDate string) ([]Entry, error)
	SearchKeyword(ctx context.Context, entryType EntryType, keyword, startDate, endDate string) ([]Entry, error)
	Insert(ctx context.Context, entry Entry) error
	InsertWithBudget(ctx context.Context, entry Entry) (*BudgetUsage, error)
	Update(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, entryType EntryType, uuid string) error
}
