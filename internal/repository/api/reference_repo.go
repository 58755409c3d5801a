package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/peksoon/account/internal/domain"
	"github.com/peksoon/account/internal/transport"
)

// CategoryRepository implements domain.CategoryRepository over REST
type CategoryRepository struct {
	res resource
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(client *transport.Client) *CategoryRepository {
	return &CategoryRepository{res: resource{client: client, path: "/categories"}}
}

// List retrieves categories, optionally filtered by type
func (r *CategoryRepository) List(ctx context.Context, entryType domain.EntryType) ([]domain.Category, error) {
	var query url.Values
	if entryType != "" {
		if !entryType.Valid() {
			return nil, domain.ErrInvalidEntryType
		}
		query = url.Values{"type": {string(entryType)}}
	}
	var out []domain.Category
	if err := r.res.list(ctx, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates a category
func (r *CategoryRepository) Create(ctx context.Context, input domain.CategoryInput) error {
	return r.res.create(ctx, input)
}

// Update updates a category
func (r *CategoryRepository) Update(ctx context.Context, id int, input domain.CategoryInput) error {
	return r.res.update(ctx, id, input)
}

// Delete deletes a category; the server answers 409 while entries reference it
func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	return r.res.delete(ctx, id)
}

// ForceDelete deletes a category together with its references
func (r *CategoryRepository) ForceDelete(ctx context.Context, id int) error {
	return r.res.forceDelete(ctx, id)
}

// PaymentMethodRepository implements domain.PaymentMethodRepository over REST
type PaymentMethodRepository struct {
	res resource
}

// NewPaymentMethodRepository creates a new PaymentMethodRepository
func NewPaymentMethodRepository(client *transport.Client) *PaymentMethodRepository {
	return &PaymentMethodRepository{res: resource{client: client, path: "/payment-methods"}}
}

// List retrieves the payment method hierarchy
func (r *PaymentMethodRepository) List(ctx context.Context) ([]domain.PaymentMethod, error) {
	var out []domain.PaymentMethod
	if err := r.res.list(ctx, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates a payment method
func (r *PaymentMethodRepository) Create(ctx context.Context, input domain.PaymentMethodInput) error {
	return r.res.create(ctx, input)
}

// Update updates a payment method
func (r *PaymentMethodRepository) Update(ctx context.Context, id int, input domain.PaymentMethodInput) error {
	return r.res.update(ctx, id, input)
}

// Delete deletes a payment method
func (r *PaymentMethodRepository) Delete(ctx context.Context, id int) error {
	return r.res.delete(ctx, id)
}

// ForceDelete deletes a payment method together with its references
func (r *PaymentMethodRepository) ForceDelete(ctx context.Context, id int) error {
	return r.res.forceDelete(ctx, id)
}

// DepositPathRepository implements domain.DepositPathRepository over REST
type DepositPathRepository struct {
	res resource
}

// NewDepositPathRepository creates a new DepositPathRepository
func NewDepositPathRepository(client *transport.Client) *DepositPathRepository {
	return &DepositPathRepository{res: resource{client: client, path: "/deposit-paths"}}
}

// List retrieves all deposit paths
func (r *DepositPathRepository) List(ctx context.Context) ([]domain.DepositPath, error) {
	var out []domain.DepositPath
	if err := r.res.list(ctx, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates a deposit path
func (r *DepositPathRepository) Create(ctx context.Context, input domain.DepositPathInput) error {
	return r.res.create(ctx, input)
}

// Update updates a deposit path
func (r *DepositPathRepository) Update(ctx context.Context, id int, input domain.DepositPathInput) error {
	return r.res.update(ctx, id, input)
}

// Delete deletes a deposit path
func (r *DepositPathRepository) Delete(ctx context.Context, id int) error {
	return r.res.delete(ctx, id)
}

// ForceDelete deletes a deposit path together with its references
func (r *DepositPathRepository) ForceDelete(ctx context.Context, id int) error {
	return r.res.forceDelete(ctx, id)
}

// UserRepository implements domain.UserRepository over REST
type UserRepository struct {
	res resource
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *transport.Client) *UserRepository {
	return &UserRepository{res: resource{client: client, path: "/users"}}
}

type userPayload struct {
	ID int `json:"id,omitempty"`
	domain.UserInput
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := r.res.list(ctx, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates a user
func (r *UserRepository) Create(ctx context.Context, input domain.UserInput) error {
	return r.res.create(ctx, input)
}

// Update updates a user. The backend reads the id from the body.
func (r *UserRepository) Update(ctx context.Context, id int, input domain.UserInput) error {
	return r.res.update(ctx, id, userPayload{ID: id, UserInput: input})
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	return r.res.delete(ctx, id)
}

// ForceDelete deletes a user together with their entries
func (r *UserRepository) ForceDelete(ctx context.Context, id int) error {
	return r.res.forceDelete(ctx, id)
}

// CheckUsage reports whether any entry or budget references the user
func (r *UserRepository) CheckUsage(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, domain.ErrInvalidID
	}
	var out struct {
		InUse bool `json:"in_use"`
	}
	if err := r.res.client.Get(ctx, r.res.path+"/check-usage", idQuery(id), &out); err != nil {
		return false, err
	}
	return out.InUse, nil
}

// KeywordRepository implements domain.KeywordRepository over REST
type KeywordRepository struct {
	res resource
}

// NewKeywordRepository creates a new KeywordRepository
func NewKeywordRepository(client *transport.Client) *KeywordRepository {
	return &KeywordRepository{res: resource{client: client, path: "/keywords"}}
}

// ListByCategory retrieves the keywords of one category
func (r *KeywordRepository) ListByCategory(ctx context.Context, categoryID int) ([]domain.Keyword, error) {
	if categoryID <= 0 {
		return nil, domain.ErrCategoryIDRequired
	}
	var out []domain.Keyword
	query := url.Values{"category_id": {strconv.Itoa(categoryID)}}
	if err := r.res.client.Get(ctx, r.res.path+"/category", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Suggestions retrieves autocomplete candidates ordered by usage
func (r *KeywordRepository) Suggestions(ctx context.Context, categoryID int, q string, limit int) ([]domain.KeywordSuggestion, error) {
	if categoryID <= 0 {
		return nil, domain.ErrCategoryIDRequired
	}
	if limit <= 0 {
		limit = domain.DefaultSuggestionLimit
	}
	query := url.Values{
		"category_id": {strconv.Itoa(categoryID)},
		"limit":       {strconv.Itoa(limit)},
	}
	if q != "" {
		query.Set("q", q)
	}
	var out []domain.KeywordSuggestion
	if err := r.res.client.Get(ctx, r.res.path+"/suggestions", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert creates the keyword or bumps its usage count
func (r *KeywordRepository) Upsert(ctx context.Context, input domain.KeywordInput) error {
	if input.CategoryID <= 0 {
		return domain.ErrCategoryIDRequired
	}
	return r.res.client.Post(ctx, r.res.path+"/upsert", input, nil)
}

// Update renames a keyword
func (r *KeywordRepository) Update(ctx context.Context, id int, input domain.KeywordInput) error {
	return r.res.update(ctx, id, input)
}

// Delete deletes a keyword
func (r *KeywordRepository) Delete(ctx context.Context, id int) error {
	return r.res.delete(ctx, id)
}

// ForceDelete deletes a keyword and detaches it from entries
func (r *KeywordRepository) ForceDelete(ctx context.Context, id int) error {
	return r.res.forceDelete(ctx, id)
}
