package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

// SecurityLogService reads the backend audit log. Entries are never written
// or edited from the console.
type SecurityLogService struct {
	repo   ports.SecurityLogRepository
	logger zerolog.Logger
}

func NewSecurityLogService(repo ports.SecurityLogRepository, logger zerolog.Logger) *SecurityLogService {
	return &SecurityLogService{repo: repo, logger: logger}
}

// List returns log entries matching filter, in backend order.
func (s *SecurityLogService) List(ctx context.Context, filter ports.SecurityLogFilter) ([]domain.SecurityLog, error) {
	logs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list security logs: %w", err)
	}

	if filter.EventType == "" && !filter.FailedOnly {
		return logs, nil
	}
	out := make([]domain.SecurityLog, 0, len(logs))
	for _, l := range logs {
		if filter.EventType != "" && l.EventType != filter.EventType {
			continue
		}
		if filter.FailedOnly && !l.EventType.IsFailure() {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
