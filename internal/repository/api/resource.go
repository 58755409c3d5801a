package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/peksoon/account/internal/domain"
	"github.com/peksoon/account/internal/transport"
)

// resource implements the collection routes shared by every reference entity:
// GET /x, POST /x/create, PUT /x/update?id=, DELETE /x/delete?id=,
// DELETE /x/force-delete?id=
type resource struct {
	client *transport.Client
	path   string
}

func (r resource) list(ctx context.Context, query url.Values, out any) error {
	return r.client.Get(ctx, r.path, query, out)
}

func (r resource) create(ctx context.Context, body any) error {
	return r.client.Post(ctx, r.path+"/create", body, nil)
}

func (r resource) update(ctx context.Context, id int, body any) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	return r.client.Put(ctx, r.path+"/update", idQuery(id), body, nil)
}

func (r resource) delete(ctx context.Context, id int) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	return r.client.Delete(ctx, r.path+"/delete", idQuery(id))
}

func (r resource) forceDelete(ctx context.Context, id int) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	return r.client.Delete(ctx, r.path+"/force-delete", idQuery(id))
}

func idQuery(id int) url.Values {
	return url.Values{"id": {strconv.Itoa(id)}}
}

// wireAmount renders money as a bare JSON number; the backend rejects
// quoted amounts.
func wireAmount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
