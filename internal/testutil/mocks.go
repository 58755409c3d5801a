package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peksoon/account/internal/domain"
)

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	mu            sync.Mutex
	Categories    []domain.Category
	NextID        int
	ListCalls     int
	ListFn        func(entryType domain.EntryType) ([]domain.Category, error)
	CreateFn      func(input domain.CategoryInput) error
	DeleteFn      func(id int) error
	ForceDeleteFn func(id int) error
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{NextID: 1}
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(c domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Categories = append(m.Categories, c)
	if c.ID >= m.NextID {
		m.NextID = c.ID + 1
	}
}

// List lists categories, filtered by type when given
func (m *MockCategoryRepository) List(ctx context.Context, entryType domain.EntryType) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListFn != nil {
		return m.ListFn(entryType)
	}
	var out []domain.Category
	for _, c := range m.Categories {
		if entryType == "" || c.Type == entryType {
			out = append(out, c)
		}
	}
	return out, nil
}

// Create creates a category
func (m *MockCategoryRepository) Create(ctx context.Context, input domain.CategoryInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(input)
	}
	for _, c := range m.Categories {
		if c.Name == input.Name && c.Type == input.Type {
			return domain.ErrConflict
		}
	}
	m.Categories = append(m.Categories, domain.Category{
		ID:          m.NextID,
		Name:        input.Name,
		Type:        input.Type,
		ExpenseType: input.ExpenseType,
		IsActive:    true,
	})
	m.NextID++
	return nil
}

// Update updates a category
func (m *MockCategoryRepository) Update(ctx context.Context, id int, input domain.CategoryInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Categories {
		if m.Categories[i].ID == id {
			m.Categories[i].Name = input.Name
			m.Categories[i].Type = input.Type
			m.Categories[i].ExpenseType = input.ExpenseType
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete deletes a category
func (m *MockCategoryRepository) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	return m.remove(id)
}

// ForceDelete deletes a category regardless of references
func (m *MockCategoryRepository) ForceDelete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForceDeleteFn != nil {
		return m.ForceDeleteFn(id)
	}
	return m.remove(id)
}

func (m *MockCategoryRepository) remove(id int) error {
	for i, c := range m.Categories {
		if c.ID == id {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockPaymentMethodRepository is a mock implementation of domain.PaymentMethodRepository
type MockPaymentMethodRepository struct {
	mu        sync.Mutex
	Methods   []domain.PaymentMethod
	NextID    int
	ListCalls int
	ListFn    func() ([]domain.PaymentMethod, error)
	DeleteFn  func(id int) error
}

// NewMockPaymentMethodRepository creates a new MockPaymentMethodRepository
func NewMockPaymentMethodRepository() *MockPaymentMethodRepository {
	return &MockPaymentMethodRepository{NextID: 100}
}

// AddPaymentMethod adds a root method (with its children) to the mock repository
func (m *MockPaymentMethodRepository) AddPaymentMethod(pm domain.PaymentMethod) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Methods = append(m.Methods, pm)
}

// List returns the hierarchy
func (m *MockPaymentMethodRepository) List(ctx context.Context) ([]domain.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListFn != nil {
		return m.ListFn()
	}
	out := make([]domain.PaymentMethod, len(m.Methods))
	copy(out, m.Methods)
	return out, nil
}

// Create adds a root or attaches a child to its parent
func (m *MockPaymentMethodRepository) Create(ctx context.Context, input domain.PaymentMethodInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pm := domain.PaymentMethod{ID: m.NextID, Name: input.Name, ParentID: input.ParentID, IsActive: true}
	m.NextID++
	if input.ParentID == nil {
		m.Methods = append(m.Methods, pm)
		return nil
	}
	for i := range m.Methods {
		if m.Methods[i].ID == *input.ParentID {
			m.Methods[i].Children = append(m.Methods[i].Children, pm)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Update renames a method and optionally toggles it
func (m *MockPaymentMethodRepository) Update(ctx context.Context, id int, input domain.PaymentMethodInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	apply := func(pm *domain.PaymentMethod) {
		pm.Name = input.Name
		if input.IsActive != nil {
			pm.IsActive = *input.IsActive
		}
	}
	for i := range m.Methods {
		if m.Methods[i].ID == id {
			apply(&m.Methods[i])
			return nil
		}
		for j := range m.Methods[i].Children {
			if m.Methods[i].Children[j].ID == id {
				apply(&m.Methods[i].Children[j])
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

// Delete removes a method
func (m *MockPaymentMethodRepository) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	return m.remove(id)
}

// ForceDelete removes a method regardless of references
func (m *MockPaymentMethodRepository) ForceDelete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(id)
}

func (m *MockPaymentMethodRepository) remove(id int) error {
	for i := range m.Methods {
		if m.Methods[i].ID == id {
			m.Methods = append(m.Methods[:i], m.Methods[i+1:]...)
			return nil
		}
		children := m.Methods[i].Children
		for j := range children {
			if children[j].ID == id {
				m.Methods[i].Children = append(children[:j], children[j+1:]...)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

// MockDepositPathRepository is a mock implementation of domain.DepositPathRepository
type MockDepositPathRepository struct {
	mu     sync.Mutex
	Paths  []domain.DepositPath
	NextID int
	ListFn func() ([]domain.DepositPath, error)
}

// NewMockDepositPathRepository creates a new MockDepositPathRepository
func NewMockDepositPathRepository() *MockDepositPathRepository {
	return &MockDepositPathRepository{NextID: 1}
}

// AddDepositPath adds a deposit path to the mock repository
func (m *MockDepositPathRepository) AddDepositPath(p domain.DepositPath) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Paths = append(m.Paths, p)
	if p.ID >= m.NextID {
		m.NextID = p.ID + 1
	}
}

// List returns every deposit path
func (m *MockDepositPathRepository) List(ctx context.Context) ([]domain.DepositPath, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListFn != nil {
		return m.ListFn()
	}
	out := make([]domain.DepositPath, len(m.Paths))
	copy(out, m.Paths)
	return out, nil
}

// Create creates a deposit path
func (m *MockDepositPathRepository) Create(ctx context.Context, input domain.DepositPathInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Paths = append(m.Paths, domain.DepositPath{ID: m.NextID, Name: input.Name, IsActive: true})
	m.NextID++
	return nil
}

// Update updates a deposit path
func (m *MockDepositPathRepository) Update(ctx context.Context, id int, input domain.DepositPathInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Paths {
		if m.Paths[i].ID == id {
			m.Paths[i].Name = input.Name
			if input.IsActive != nil {
				m.Paths[i].IsActive = *input.IsActive
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete deletes a deposit path
func (m *MockDepositPathRepository) Delete(ctx context.Context, id int) error {
	return m.ForceDelete(ctx, id)
}

// ForceDelete deletes a deposit path
func (m *MockDepositPathRepository) ForceDelete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.Paths {
		if p.ID == id {
			m.Paths = append(m.Paths[:i], m.Paths[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	mu           sync.Mutex
	Users        []domain.User
	InUse        map[int]bool
	NextID       int
	CheckUsageFn func(id int) (bool, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{InUse: make(map[int]bool), NextID: 1}
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(u domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users = append(m.Users, u)
	if u.ID >= m.NextID {
		m.NextID = u.ID + 1
	}
}

// List returns every user
func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, len(m.Users))
	copy(out, m.Users)
	return out, nil
}

// Create creates a user
func (m *MockUserRepository) Create(ctx context.Context, input domain.UserInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users = append(m.Users, domain.User{ID: m.NextID, Name: input.Name, Email: input.Email, IsActive: true})
	m.NextID++
	return nil
}

// Update updates a user
func (m *MockUserRepository) Update(ctx context.Context, id int, input domain.UserInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Users {
		if m.Users[i].ID == id {
			m.Users[i].Name = input.Name
			m.Users[i].Email = input.Email
			if input.IsActive != nil {
				m.Users[i].IsActive = *input.IsActive
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete deletes a user unless entries reference them
func (m *MockUserRepository) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	inUse := m.InUse[id]
	m.mu.Unlock()
	if inUse {
		return domain.ErrConflict
	}
	return m.ForceDelete(ctx, id)
}

// ForceDelete deletes a user
func (m *MockUserRepository) ForceDelete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.Users {
		if u.ID == id {
			m.Users = append(m.Users[:i], m.Users[i+1:]...)
			delete(m.InUse, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

// CheckUsage reports the InUse flag of a user
func (m *MockUserRepository) CheckUsage(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CheckUsageFn != nil {
		return m.CheckUsageFn(id)
	}
	return m.InUse[id], nil
}

// MockKeywordRepository is a mock implementation of domain.KeywordRepository
type MockKeywordRepository struct {
	mu            sync.Mutex
	Keywords      []domain.Keyword
	NextID        int
	UpsertCalls   int
	ListFn        func(categoryID int) ([]domain.Keyword, error)
	SuggestionsFn func(categoryID int, query string, limit int) ([]domain.KeywordSuggestion, error)
	UpsertFn      func(input domain.KeywordInput) error
}

// NewMockKeywordRepository creates a new MockKeywordRepository
func NewMockKeywordRepository() *MockKeywordRepository {
	return &MockKeywordRepository{NextID: 1}
}

// AddKeyword adds a keyword to the mock repository (helper for tests)
func (m *MockKeywordRepository) AddKeyword(k domain.Keyword) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Keywords = append(m.Keywords, k)
	if k.ID >= m.NextID {
		m.NextID = k.ID + 1
	}
}

// ListByCategory returns the keywords of a category
func (m *MockKeywordRepository) ListByCategory(ctx context.Context, categoryID int) ([]domain.Keyword, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListFn != nil {
		return m.ListFn(categoryID)
	}
	if categoryID <= 0 {
		return nil, domain.ErrCategoryIDRequired
	}
	var out []domain.Keyword
	for _, k := range m.Keywords {
		if k.CategoryID == categoryID {
			out = append(out, k)
		}
	}
	return out, nil
}

// Suggestions returns matching keywords of a category by descending usage
func (m *MockKeywordRepository) Suggestions(ctx context.Context, categoryID int, query string, limit int) ([]domain.KeywordSuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SuggestionsFn != nil {
		return m.SuggestionsFn(categoryID, query, limit)
	}
	var out []domain.KeywordSuggestion
	for _, k := range m.Keywords {
		if k.CategoryID == categoryID && strings.Contains(k.Name, query) {
			out = append(out, domain.KeywordSuggestion{ID: k.ID, Name: k.Name, UsageCount: k.UsageCount})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UsageCount > out[j].UsageCount })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Upsert creates a keyword or bumps its usage count
func (m *MockKeywordRepository) Upsert(ctx context.Context, input domain.KeywordInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls++
	if m.UpsertFn != nil {
		return m.UpsertFn(input)
	}
	for i := range m.Keywords {
		if m.Keywords[i].CategoryID == input.CategoryID && m.Keywords[i].Name == input.Name {
			m.Keywords[i].UsageCount++
			return nil
		}
	}
	m.Keywords = append(m.Keywords, domain.Keyword{ID: m.NextID, CategoryID: input.CategoryID, Name: input.Name, UsageCount: 1})
	m.NextID++
	return nil
}

// Update renames a keyword and moves it when a category is given
func (m *MockKeywordRepository) Update(ctx context.Context, id int, input domain.KeywordInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Keywords {
		if m.Keywords[i].ID == id {
			m.Keywords[i].Name = input.Name
			if input.CategoryID > 0 {
				m.Keywords[i].CategoryID = input.CategoryID
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete deletes a keyword
func (m *MockKeywordRepository) Delete(ctx context.Context, id int) error {
	return m.ForceDelete(ctx, id)
}

// ForceDelete deletes a keyword
func (m *MockKeywordRepository) ForceDelete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, k := range m.Keywords {
		if k.ID == id {
			m.Keywords = append(m.Keywords[:i], m.Keywords[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockEntryRepository is a mock implementation of domain.EntryRepository.
// Safe for the concurrent expense/income fetches of the ledger store.
type MockEntryRepository struct {
	mu                 sync.Mutex
	Entries            []domain.Entry
	Inserted           []domain.Entry
	Updated            []domain.Entry
	Deleted            []string
	ListMonthCalls     int
	ListMonthFn        func(entryType domain.EntryType, year, month int) ([]domain.Entry, error)
	ListRangeFn        func(entryType domain.EntryType, startDate, endDate string) ([]domain.Entry, error)
	SearchKeywordFn    func(entryType domain.EntryType, keyword, startDate, endDate string) ([]domain.Entry, error)
	InsertFn           func(entry domain.Entry) error
	InsertWithBudgetFn func(entry domain.Entry) (*domain.BudgetUsage, error)
	UpdateFn           func(entry domain.Entry) error
	DeleteFn           func(entryType domain.EntryType, uuid string) error
}

// NewMockEntryRepository creates a new MockEntryRepository
func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

// AddEntry adds an entry to the mock repository (helper for tests)
func (m *MockEntryRepository) AddEntry(e domain.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.UUID == "" {
		e.UUID = uuid.NewString()
	}
	m.Entries = append(m.Entries, e)
}

// ListMonth returns entries of a type within a month
func (m *MockEntryRepository) ListMonth(ctx context.Context, entryType domain.EntryType, year, month int) ([]domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListMonthCalls++
	if m.ListMonthFn != nil {
		return m.ListMonthFn(entryType, year, month)
	}
	return m.match(func(e domain.Entry) bool {
		return e.Type() == entryType && e.Date.Year() == year && int(e.Date.Month()) == month
	}), nil
}

// ListRange returns entries of a type within inclusive day bounds
func (m *MockEntryRepository) ListRange(ctx context.Context, entryType domain.EntryType, startDate, endDate string) ([]domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListRangeFn != nil {
		return m.ListRangeFn(entryType, startDate, endDate)
	}
	return m.match(func(e domain.Entry) bool {
		return e.Type() == entryType && dayInRange(e.DateKey(), startDate, endDate)
	}), nil
}

// SearchKeyword returns entries of a type whose keyword or memo contains keyword
func (m *MockEntryRepository) SearchKeyword(ctx context.Context, entryType domain.EntryType, keyword, startDate, endDate string) ([]domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SearchKeywordFn != nil {
		return m.SearchKeywordFn(entryType, keyword, startDate, endDate)
	}
	return m.match(func(e domain.Entry) bool {
		return e.Type() == entryType &&
			dayInRange(e.DateKey(), startDate, endDate) &&
			(strings.Contains(e.KeywordName, keyword) || strings.Contains(e.Memo, keyword))
	}), nil
}

// Insert stores an entry under a fresh uuid
func (m *MockEntryRepository) Insert(ctx context.Context, entry domain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Inserted = append(m.Inserted, entry)
	if m.InsertFn != nil {
		return m.InsertFn(entry)
	}
	entry.UUID = uuid.NewString()
	m.Entries = append(m.Entries, entry)
	return nil
}

// InsertWithBudget stores an expense and returns InsertWithBudgetFn's usage
func (m *MockEntryRepository) InsertWithBudget(ctx context.Context, entry domain.Entry) (*domain.BudgetUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Inserted = append(m.Inserted, entry)
	if m.InsertWithBudgetFn != nil {
		return m.InsertWithBudgetFn(entry)
	}
	entry.UUID = uuid.NewString()
	m.Entries = append(m.Entries, entry)
	return nil, nil
}

// Update replaces the entry with the same uuid
func (m *MockEntryRepository) Update(ctx context.Context, entry domain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updated = append(m.Updated, entry)
	if m.UpdateFn != nil {
		return m.UpdateFn(entry)
	}
	for i := range m.Entries {
		if m.Entries[i].UUID == entry.UUID {
			m.Entries[i] = entry
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete removes the entry with the given uuid
func (m *MockEntryRepository) Delete(ctx context.Context, entryType domain.EntryType, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, id)
	if m.DeleteFn != nil {
		return m.DeleteFn(entryType, id)
	}
	for i, e := range m.Entries {
		if e.UUID == id && e.Type() == entryType {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// LastUpdated returns the most recent Update argument (helper for tests)
func (m *MockEntryRepository) LastUpdated() (domain.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Updated) == 0 {
		return domain.Entry{}, false
	}
	return m.Updated[len(m.Updated)-1], true
}

func (m *MockEntryRepository) match(keep func(domain.Entry) bool) []domain.Entry {
	var out []domain.Entry
	for _, e := range m.Entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func dayInRange(day, startDate, endDate string) bool {
	return (startDate == "" || day >= startDate) && (endDate == "" || day <= endDate)
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	mu             sync.Mutex
	Budgets        []domain.Budget
	Usages         []domain.BudgetUsage
	NextID         int
	ListCalls      int
	ListFn         func(userName string, categoryID int) ([]domain.Budget, error)
	CreateFn       func(input domain.BudgetInput) error
	UpdateFn       func(id int, input domain.BudgetInput) error
	DeleteFn       func(id int) error
	UsageFn        func(userName string) ([]domain.BudgetUsage, error)
	UsageForCatFn  func(userName string, categoryID int) (*domain.BudgetUsage, error)
	UpdatePeriodFn func(period domain.BudgetPeriod, categoryID int, userName string, amount decimal.Decimal) error
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{NextID: 1}
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(b domain.Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Budgets = append(m.Budgets, b)
	if b.ID >= m.NextID {
		m.NextID = b.ID + 1
	}
}

// AddUsage adds a usage record to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddUsage(u domain.BudgetUsage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Usages = append(m.Usages, u)
}

// List returns a user's budgets
func (m *MockBudgetRepository) List(ctx context.Context, userName string, categoryID int) ([]domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListFn != nil {
		return m.ListFn(userName, categoryID)
	}
	var out []domain.Budget
	for _, b := range m.Budgets {
		if b.UserName == userName && (categoryID == 0 || b.CategoryID == categoryID) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Create creates a budget; duplicates fail with domain.ErrConflict
func (m *MockBudgetRepository) Create(ctx context.Context, input domain.BudgetInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(input)
	}
	for _, b := range m.Budgets {
		if b.CategoryID == input.CategoryID && b.UserName == input.UserName {
			return domain.ErrConflict
		}
	}
	m.Budgets = append(m.Budgets, domain.Budget{
		ID:            m.NextID,
		CategoryID:    input.CategoryID,
		UserName:      input.UserName,
		MonthlyBudget: input.MonthlyBudget,
		YearlyBudget:  input.YearlyBudget,
	})
	m.NextID++
	return nil
}

// Update replaces a budget's thresholds
func (m *MockBudgetRepository) Update(ctx context.Context, id int, input domain.BudgetInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(id, input)
	}
	for i := range m.Budgets {
		if m.Budgets[i].ID == id {
			m.Budgets[i].MonthlyBudget = input.MonthlyBudget
			m.Budgets[i].YearlyBudget = input.YearlyBudget
			return nil
		}
	}
	return domain.ErrNotFound
}

// UpdatePeriod sets one threshold of a (category, user) budget
func (m *MockBudgetRepository) UpdatePeriod(ctx context.Context, period domain.BudgetPeriod, categoryID int, userName string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdatePeriodFn != nil {
		return m.UpdatePeriodFn(period, categoryID, userName, amount)
	}
	for i := range m.Budgets {
		if m.Budgets[i].CategoryID == categoryID && m.Budgets[i].UserName == userName {
			if period == domain.BudgetPeriodMonthly {
				m.Budgets[i].MonthlyBudget = amount
			} else {
				m.Budgets[i].YearlyBudget = amount
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete deletes a budget
func (m *MockBudgetRepository) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	for i, b := range m.Budgets {
		if b.ID == id {
			m.Budgets = append(m.Budgets[:i], m.Budgets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Usage returns every usage record
func (m *MockBudgetRepository) Usage(ctx context.Context, userName string) ([]domain.BudgetUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UsageFn != nil {
		return m.UsageFn(userName)
	}
	out := make([]domain.BudgetUsage, len(m.Usages))
	copy(out, m.Usages)
	return out, nil
}

// UsageForCategory returns the usage record of one category
func (m *MockBudgetRepository) UsageForCategory(ctx context.Context, userName string, categoryID int) (*domain.BudgetUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UsageForCatFn != nil {
		return m.UsageForCatFn(userName, categoryID)
	}
	for _, u := range m.Usages {
		if u.CategoryID == categoryID {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockStatisticsRepository is a mock implementation of domain.StatisticsRepository
type MockStatisticsRepository struct {
	mu            sync.Mutex
	Snapshots     map[domain.PeriodType]*domain.Statistics
	Keywords      *domain.CategoryKeywordStatistics
	Params        []domain.StatisticsParams
	GetFn         func(params domain.StatisticsParams) (*domain.Statistics, error)
	GetKeywordsFn func(params domain.StatisticsParams) (*domain.CategoryKeywordStatistics, error)
}

// NewMockStatisticsRepository creates a new MockStatisticsRepository
func NewMockStatisticsRepository() *MockStatisticsRepository {
	return &MockStatisticsRepository{Snapshots: make(map[domain.PeriodType]*domain.Statistics)}
}

// Get returns the snapshot registered for params.Type
func (m *MockStatisticsRepository) Get(ctx context.Context, params domain.StatisticsParams) (*domain.Statistics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Params = append(m.Params, params)
	if m.GetFn != nil {
		return m.GetFn(params)
	}
	if s, ok := m.Snapshots[params.Type]; ok {
		return s, nil
	}
	return &domain.Statistics{Period: string(params.Type), Categories: []domain.CategoryStatistics{}}, nil
}

// GetCategoryKeywords returns Keywords
func (m *MockStatisticsRepository) GetCategoryKeywords(ctx context.Context, params domain.StatisticsParams) (*domain.CategoryKeywordStatistics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Params = append(m.Params, params)
	if m.GetKeywordsFn != nil {
		return m.GetKeywordsFn(params)
	}
	if m.Keywords == nil {
		return nil, domain.ErrNotFound
	}
	return m.Keywords, nil
}
