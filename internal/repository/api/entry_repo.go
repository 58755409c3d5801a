package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/peksoon/account/internal/domain"
	"github.com/peksoon/account/internal/transport"
	"github.com/peksoon/account/internal/util"
)

// EntryRepository implements domain.EntryRepository over the /v2 ledger routes
type EntryRepository struct {
	client *transport.Client
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(client *transport.Client) *EntryRepository {
	return &EntryRepository{client: client}
}

// expenseRecord is an out-account row as returned by the backend
type expenseRecord struct {
	UUID              string          `json:"uuid"`
	Date              string          `json:"date"`
	User              string          `json:"user"`
	Money             decimal.Decimal `json:"money"`
	CategoryID        int             `json:"category_id"`
	CategoryName      string          `json:"category_name"`
	KeywordName       string          `json:"keyword_name"`
	PaymentMethodID   int             `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method_name"`
	Memo              string          `json:"memo"`
}

// incomeRecord is an in-account row as returned by the backend
type incomeRecord struct {
	UUID            string          `json:"uuid"`
	Date            string          `json:"date"`
	User            string          `json:"user"`
	Money           decimal.Decimal `json:"money"`
	CategoryID      int             `json:"category_id"`
	CategoryName    string          `json:"category_name"`
	KeywordName     string          `json:"keyword_name"`
	DepositPathID   int             `json:"deposit_path_id"`
	DepositPathName string          `json:"deposit_path_name"`
	DepositPath     string          `json:"deposit_path"`
	Memo            string          `json:"memo"`
}

type expensePayload struct {
	UUID            string      `json:"uuid,omitempty"`
	Date            string      `json:"date"`
	User            string      `json:"user"`
	Money           json.Number `json:"money"`
	CategoryID      int         `json:"category_id"`
	KeywordName     string      `json:"keyword_name,omitempty"`
	PaymentMethodID int         `json:"payment_method_id"`
	Memo            string      `json:"memo"`
}

type incomePayload struct {
	UUID        string      `json:"uuid,omitempty"`
	Date        string      `json:"date"`
	User        string      `json:"user"`
	Money       json.Number `json:"money"`
	CategoryID  int         `json:"category_id"`
	KeywordName string      `json:"keyword_name,omitempty"`
	DepositPath string      `json:"deposit_path"`
	Memo        string      `json:"memo"`
}

type insertWithBudgetResponse struct {
	Message     string              `json:"message"`
	BudgetUsage *domain.BudgetUsage `json:"budget_usage"`
}

// ListMonth retrieves one type's entries for a calendar month
func (r *EntryRepository) ListMonth(ctx context.Context, entryType domain.EntryType, year, month int) ([]domain.Entry, error) {
	if !util.ValidMonth(month) {
		return nil, fmt.Errorf("month %d out of range", month)
	}
	query := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {util.PadMonth(month)},
	}
	return r.list(ctx, entryType, "/v2/month-"+string(entryType)+"-account", query)
}

// ListRange retrieves one type's entries between two YYYY-MM-DD dates.
// An empty bound is omitted.
func (r *EntryRepository) ListRange(ctx context.Context, entryType domain.EntryType, startDate, endDate string) ([]domain.Entry, error) {
	return r.list(ctx, entryType, "/v2/"+string(entryType)+"-accounts", rangeQuery(startDate, endDate))
}

// SearchKeyword retrieves one type's entries matching a keyword
func (r *EntryRepository) SearchKeyword(ctx context.Context, entryType domain.EntryType, keyword, startDate, endDate string) ([]domain.Entry, error) {
	path := "/v2/search-keyword-accounts"
	if entryType == domain.EntryTypeIncome {
		path = "/v2/in-search-keyword-accounts"
	}
	query := rangeQuery(startDate, endDate)
	query.Set("keyword", keyword)
	return r.list(ctx, entryType, path, query)
}

// Insert creates an entry on the endpoint matching its type
func (r *EntryRepository) Insert(ctx context.Context, entry domain.Entry) error {
	payload, err := toPayload(entry)
	if err != nil {
		return err
	}
	return r.client.Post(ctx, entryPath(entry.Type(), "/insert"), payload, nil)
}

// InsertWithBudget creates an expense and returns the category's budget usage
// after the insert, or nil when the category has no budget
func (r *EntryRepository) InsertWithBudget(ctx context.Context, entry domain.Entry) (*domain.BudgetUsage, error) {
	if entry.Type() != domain.EntryTypeExpense {
		return nil, domain.ErrInvalidEntryType
	}
	payload, err := toPayload(entry)
	if err != nil {
		return nil, err
	}
	var out insertWithBudgetResponse
	if err := r.client.Post(ctx, entryPath(domain.EntryTypeExpense, "/insert-with-budget"), payload, &out); err != nil {
		return nil, err
	}
	return out.BudgetUsage, nil
}

// Update replaces an entry identified by its uuid
func (r *EntryRepository) Update(ctx context.Context, entry domain.Entry) error {
	if entry.UUID == "" {
		return domain.ErrInvalidID
	}
	payload, err := toPayload(entry)
	if err != nil {
		return err
	}
	return r.client.Put(ctx, entryPath(entry.Type(), "/update"), nil, payload, nil)
}

// Delete removes an entry by uuid
func (r *EntryRepository) Delete(ctx context.Context, entryType domain.EntryType, uuid string) error {
	if !entryType.Valid() {
		return domain.ErrInvalidEntryType
	}
	if uuid == "" {
		return domain.ErrInvalidID
	}
	return r.client.Delete(ctx, entryPath(entryType, "/delete"), url.Values{"uuid": {uuid}})
}

func (r *EntryRepository) list(ctx context.Context, entryType domain.EntryType, path string, query url.Values) ([]domain.Entry, error) {
	switch entryType {
	case domain.EntryTypeExpense:
		var records []expenseRecord
		if err := r.client.Get(ctx, path, query, &records); err != nil {
			return nil, err
		}
		entries := make([]domain.Entry, 0, len(records))
		for _, rec := range records {
			e, err := fromExpenseRecord(rec)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		return entries, nil
	case domain.EntryTypeIncome:
		var records []incomeRecord
		if err := r.client.Get(ctx, path, query, &records); err != nil {
			return nil, err
		}
		entries := make([]domain.Entry, 0, len(records))
		for _, rec := range records {
			e, err := fromIncomeRecord(rec)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		return entries, nil
	}
	return nil, domain.ErrInvalidEntryType
}

func entryPath(entryType domain.EntryType, action string) string {
	return "/v2/" + string(entryType) + "-account" + action
}

func rangeQuery(startDate, endDate string) url.Values {
	query := url.Values{}
	if startDate != "" {
		query.Set("start_date", startDate)
	}
	if endDate != "" {
		query.Set("end_date", endDate)
	}
	return query
}

func toPayload(e domain.Entry) (any, error) {
	keyword := e.KeywordName
	if keyword == "" {
		keyword = e.Keyword
	}
	date := util.FormatWireDate(e.Date)

	if d, ok := e.Expense(); ok {
		return expensePayload{
			UUID:            e.UUID,
			Date:            date,
			User:            e.User,
			Money:           wireAmount(e.Money),
			CategoryID:      e.CategoryID,
			KeywordName:     keyword,
			PaymentMethodID: d.PaymentMethodID,
			Memo:            e.Memo,
		}, nil
	}
	if d, ok := e.Income(); ok {
		return incomePayload{
			UUID:        e.UUID,
			Date:        date,
			User:        e.User,
			Money:       wireAmount(e.Money),
			CategoryID:  e.CategoryID,
			KeywordName: keyword,
			DepositPath: d.DepositPath,
			Memo:        e.Memo,
		}, nil
	}
	return nil, domain.ErrInvalidEntryType
}

func fromExpenseRecord(rec expenseRecord) (domain.Entry, error) {
	date, err := util.ParseWireDate(rec.Date)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("entry %s: %w", rec.UUID, err)
	}
	return domain.Entry{
		UUID:         rec.UUID,
		Date:         date,
		User:         rec.User,
		Money:        rec.Money,
		CategoryID:   rec.CategoryID,
		CategoryName: rec.CategoryName,
		KeywordName:  rec.KeywordName,
		Memo:         rec.Memo,
		Detail: domain.ExpenseDetail{
			PaymentMethodID:   rec.PaymentMethodID,
			PaymentMethodName: rec.PaymentMethodName,
		},
	}, nil
}

func fromIncomeRecord(rec incomeRecord) (domain.Entry, error) {
	date, err := util.ParseWireDate(rec.Date)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("entry %s: %w", rec.UUID, err)
	}
	depositPath := rec.DepositPathName
	if depositPath == "" {
		depositPath = rec.DepositPath
	}
	return domain.Entry{
		UUID:         rec.UUID,
		Date:         date,
		User:         rec.User,
		Money:        rec.Money,
		CategoryID:   rec.CategoryID,
		CategoryName: rec.CategoryName,
		KeywordName:  rec.KeywordName,
		Memo:         rec.Memo,
		Detail: domain.IncomeDetail{
			DepositPathID: rec.DepositPathID,
			DepositPath:   depositPath,
		},
	}, nil
}
