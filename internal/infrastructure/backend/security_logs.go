package backend

import (
	"context"

	"github.com/safecall/crm-console/internal/core/domain"
)

type SecurityLogRepository struct {
	c *Client
}

func NewSecurityLogRepository(c *Client) *SecurityLogRepository {
	return &SecurityLogRepository{c: c}
}

func (r *SecurityLogRepository) List(ctx context.Context) ([]domain.SecurityLog, error) {
	return fetchList[domain.SecurityLog](ctx, r.c, pathSecurityLogs)
}

func (r *SecurityLogRepository) Get(ctx context.Context, id int) (*domain.SecurityLog, error) {
	return fetchOne[domain.SecurityLog](ctx, r.c, itemPath(pathSecurityLogs, id))
}
