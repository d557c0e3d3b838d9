package backend

import (
	"context"
	"net/http"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

type CallRepository struct {
	c *Client
}

func NewCallRepository(c *Client) *CallRepository {
	return &CallRepository{c: c}
}

func (r *CallRepository) List(ctx context.Context) ([]domain.Call, error) {
	return fetchList[domain.Call](ctx, r.c, pathCalls)
}

func (r *CallRepository) Get(ctx context.Context, id int) (*domain.Call, error) {
	return fetchOne[domain.Call](ctx, r.c, itemPath(pathCalls, id))
}

func (r *CallRepository) Create(ctx context.Context, in ports.CallInput) (*domain.Call, error) {
	return write[domain.Call](ctx, r.c, http.MethodPost, pathCalls, toCallPayload(in))
}

func (r *CallRepository) Update(ctx context.Context, id int, in ports.CallInput) (*domain.Call, error) {
	return write[domain.Call](ctx, r.c, http.MethodPatch, itemPath(pathCalls, id), toCallPayload(in))
}

func (r *CallRepository) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.c, itemPath(pathCalls, id))
}
