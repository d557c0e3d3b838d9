package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/safecall/crm-console/internal/api/metrics"
	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
	"github.com/safecall/crm-console/internal/core/view"
)

const (
	dashboardView    = "dashboard"
	dashboardPreview = 5
)

// DashboardService loads the landing view. Its three sources are fetched in
// parallel and a failing source only affects its own sections.
type DashboardService struct {
	customers ports.CustomerRepository
	tickets   ports.TicketRepository
	calls     ports.CallRepository
	views     *view.Tracker[ports.Dashboard]
	logger    zerolog.Logger
}

func NewDashboardService(
	customers ports.CustomerRepository,
	tickets ports.TicketRepository,
	calls ports.CallRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		customers: customers,
		tickets:   tickets,
		calls:     calls,
		views:     view.NewTracker[ports.Dashboard](),
		logger:    logger,
	}
}

// Load fetches the dashboard for viewKey. It returns domain.ErrStaleView if
// another Load for the same key started before this one finished.
func (s *DashboardService) Load(ctx context.Context, viewKey string) (*ports.Dashboard, error) {
	load := s.views.Begin(ctx, viewKey)
	defer load.Release()

	prev, _ := load.Previous()
	lctx := load.Context()

	var (
		customers []domain.Customer
		tickets   []domain.Ticket
		calls     []domain.Call

		customersErr, ticketsErr, callsErr error
	)

	// Each fetch keeps its own error so one failure never cancels the others.
	var g errgroup.Group
	g.Go(func() error {
		customers, customersErr = s.customers.List(lctx)
		return nil
	})
	g.Go(func() error {
		tickets, ticketsErr = s.tickets.List(lctx)
		return nil
	})
	g.Go(func() error {
		calls, callsErr = s.calls.List(lctx)
		return nil
	})
	_ = g.Wait()

	s.sectionFailed("customers", customersErr)
	s.sectionFailed("tickets", ticketsErr)
	s.sectionFailed("calls", callsErr)

	d := ports.Dashboard{
		Customers:     view.Resolve(prev.Customers, summarizeCustomers(customers), customersErr),
		Tickets:       view.Resolve(prev.Tickets, domain.CountTickets(tickets), ticketsErr),
		RecentTickets: view.Resolve(prev.RecentTickets, domain.RecentTickets(tickets, dashboardPreview), ticketsErr),
		ActiveCalls:   view.Resolve(prev.ActiveCalls, domain.ActiveCalls(calls), callsErr),
	}

	if err := load.Commit(d); err != nil {
		s.logger.Debug().Str("view", viewKey).Msg("dashboard load superseded, result discarded")
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	return &d, nil
}

// Forget drops the retained snapshot, e.g. when the operator logs out.
func (s *DashboardService) Forget(viewKey string) {
	s.views.Forget(viewKey)
}

func (s *DashboardService) sectionFailed(section string, err error) {
	if err == nil {
		return
	}
	metrics.ViewFetchErrorsTotal.WithLabelValues(dashboardView, section).Inc()
	s.logger.Warn().Err(err).Str("view", dashboardView).Str("section", section).Msg("dashboard section failed")
}

func summarizeCustomers(customers []domain.Customer) ports.CustomerSummary {
	latest := customers
	if len(latest) > dashboardPreview {
		latest = latest[:dashboardPreview]
	}
	return ports.CustomerSummary{Total: len(customers), Latest: append([]domain.Customer{}, latest...)}
}
