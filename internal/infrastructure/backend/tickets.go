package backend

import (
	"context"
	"net/http"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

type TicketRepository struct {
	c *Client
}

func NewTicketRepository(c *Client) *TicketRepository {
	return &TicketRepository{c: c}
}

func (r *TicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	return fetchList[domain.Ticket](ctx, r.c, pathTickets)
}

func (r *TicketRepository) Get(ctx context.Context, id int) (*domain.Ticket, error) {
	return fetchOne[domain.Ticket](ctx, r.c, itemPath(pathTickets, id))
}

func (r *TicketRepository) Create(ctx context.Context, in ports.TicketInput) (*domain.Ticket, error) {
	return write[domain.Ticket](ctx, r.c, http.MethodPost, pathTickets, toTicketPayload(in))
}

func (r *TicketRepository) Update(ctx context.Context, id int, in ports.TicketInput) (*domain.Ticket, error) {
	return write[domain.Ticket](ctx, r.c, http.MethodPatch, itemPath(pathTickets, id), toTicketPayload(in))
}

func (r *TicketRepository) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.c, itemPath(pathTickets, id))
}
