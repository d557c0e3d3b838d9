package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

// StatsService serves the supervisor view either from the backend's
// pre-aggregated endpoint or computed locally from the raw collections.
type StatsService struct {
	stats   ports.StatsRepository
	calls   ports.CallRepository
	tickets ports.TicketRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewStatsService(
	stats ports.StatsRepository,
	calls ports.CallRepository,
	tickets ports.TicketRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{stats: stats, calls: calls, tickets: tickets, users: users, logger: logger}
}

func (s *StatsService) Supervisor(ctx context.Context, source ports.StatsSource) (*domain.SupervisorStats, error) {
	switch source {
	case ports.StatsFromBackend, "":
		return s.fromBackend(ctx)
	case ports.StatsComputed:
		return s.Compute(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown stats source %q", domain.ErrValidation, source)
	}
}

func (s *StatsService) fromBackend(ctx context.Context) (*domain.SupervisorStats, error) {
	st, err := s.stats.Supervisor(ctx)
	if err != nil {
		return nil, fmt.Errorf("supervisor stats: %w", err)
	}
	out := st.WithRates()
	return &out, nil
}

// Compute fetches calls, tickets and users in parallel and aggregates them.
// Every failing source is reported, not only the first.
func (s *StatsService) Compute(ctx context.Context) (*domain.SupervisorStats, error) {
	var (
		calls                         []domain.Call
		tickets                       []domain.Ticket
		users                         []domain.User
		callsErr, ticketsErr, usersErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		calls, callsErr = s.calls.List(ctx)
		return nil
	})
	g.Go(func() error {
		tickets, ticketsErr = s.tickets.List(ctx)
		return nil
	})
	g.Go(func() error {
		users, usersErr = s.users.List(ctx)
		return nil
	})
	_ = g.Wait()

	if err := errors.Join(sourceErr("calls", callsErr), sourceErr("tickets", ticketsErr), sourceErr("users", usersErr)); err != nil {
		return nil, fmt.Errorf("compute supervisor stats: %w", err)
	}

	out := domain.Aggregate(calls, tickets, users)
	s.logger.Debug().Int("agents", len(out.Agents)).Int("total_calls", out.Stats.TotalCalls).Msg("supervisor stats computed")
	return &out, nil
}

func sourceErr(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
