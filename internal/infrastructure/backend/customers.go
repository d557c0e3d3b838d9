package backend

import (
	"context"
	"net/http"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

type CustomerRepository struct {
	c *Client
}

func NewCustomerRepository(c *Client) *CustomerRepository {
	return &CustomerRepository{c: c}
}

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	return fetchList[domain.Customer](ctx, r.c, pathCustomers)
}

// Get reads a single customer. The backend records the read as a Data
// Access security event.
func (r *CustomerRepository) Get(ctx context.Context, id int) (*domain.Customer, error) {
	return fetchOne[domain.Customer](ctx, r.c, itemPath(pathCustomers, id))
}

func (r *CustomerRepository) Create(ctx context.Context, in ports.CustomerInput) (*domain.Customer, error) {
	return write[domain.Customer](ctx, r.c, http.MethodPost, pathCustomers, toCustomerPayload(in))
}

func (r *CustomerRepository) Update(ctx context.Context, id int, in ports.CustomerInput) (*domain.Customer, error) {
	return write[domain.Customer](ctx, r.c, http.MethodPatch, itemPath(pathCustomers, id), toCustomerPayload(in))
}

func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.c, itemPath(pathCustomers, id))
}
