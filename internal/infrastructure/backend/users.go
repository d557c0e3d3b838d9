package backend

import (
	"context"
	"net/http"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

type UserRepository struct {
	c *Client
}

func NewUserRepository(c *Client) *UserRepository {
	return &UserRepository{c: c}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return fetchList[domain.User](ctx, r.c, pathUsers)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*domain.User, error) {
	return fetchOne[domain.User](ctx, r.c, itemPath(pathUsers, id))
}

func (r *UserRepository) Create(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	return write[domain.User](ctx, r.c, http.MethodPost, pathUsers, toUserPayload(in))
}

// Update patches a user. An empty password is left out of the payload.
func (r *UserRepository) Update(ctx context.Context, id int, in ports.UserInput) (*domain.User, error) {
	return write[domain.User](ctx, r.c, http.MethodPatch, itemPath(pathUsers, id), toUserPayload(in))
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.c, itemPath(pathUsers, id))
}

func (r *UserRepository) Me(ctx context.Context) (*domain.User, error) {
	return fetchOne[domain.User](ctx, r.c, pathCurrentUser)
}
