package backend

import (
	"context"

	"github.com/safecall/crm-console/internal/core/domain"
)

type StatsRepository struct {
	c *Client
}

func NewStatsRepository(c *Client) *StatsRepository {
	return &StatsRepository{c: c}
}

// Supervisor returns the backend aggregate. Resolution rates are not part of
// the response and are left at zero.
func (r *StatsRepository) Supervisor(ctx context.Context) (*domain.SupervisorStats, error) {
	return fetchOne[domain.SupervisorStats](ctx, r.c, pathStats)
}
