package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/api/metrics"
	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

type TicketService struct {
	repo   ports.TicketRepository
	calls  ports.CallRepository
	logger zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, calls ports.CallRepository, logger zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, calls: calls, logger: logger}
}

func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (s *TicketService) Get(ctx context.Context, id int) (*domain.Ticket, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ticket %d: %w", id, err)
	}
	return t, nil
}

// Create submits a new ticket. Missing status, priority and category default
// to Open, Medium and General. Invalid values never reach the backend.
func (s *TicketService) Create(ctx context.Context, in ports.TicketInput) (*domain.Ticket, error) {
	in = withTicketDefaults(in)
	if in.Customer == nil || *in.Customer <= 0 {
		return nil, domain.ErrMissingCustomer
	}
	if err := domain.ValidateTicketFields(in.Status, in.Priority, in.Category); err != nil {
		return nil, err
	}
	return s.create(ctx, in, "manual")
}

// Update applies a partial change. Any status may move to any other status
// and priority changes independently of it.
func (s *TicketService) Update(ctx context.Context, id int, in ports.TicketInput) (*domain.Ticket, error) {
	if err := domain.ValidateTicketFields(in.Status, in.Priority, in.Category); err != nil {
		return nil, err
	}
	if in.Customer != nil && *in.Customer <= 0 {
		return nil, domain.ErrMissingCustomer
	}

	t, err := s.repo.Update(ctx, id, in)
	if err != nil {
		s.logger.Error().Err(err).Int("ticket_id", id).Msg("failed to update ticket")
		return nil, fmt.Errorf("update ticket %d: %w", id, err)
	}
	s.logger.Info().Int("ticket_id", id).Str("status", string(t.Status)).Msg("ticket updated")
	return t, nil
}

func (s *TicketService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ticket %d: %w", id, err)
	}
	s.logger.Info().Int("ticket_id", id).Msg("ticket deleted")
	return nil
}

// DraftFromCall pre-fills a ticket from a call record for review.
func (s *TicketService) DraftFromCall(ctx context.Context, callID int) (*domain.TicketDraft, error) {
	call, err := s.calls.Get(ctx, callID)
	if err != nil {
		return nil, fmt.Errorf("get call %d: %w", callID, err)
	}
	draft, err := domain.DeriveTicket(*call)
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// CreateFromCall derives a draft from the call, applies the operator's edits
// and submits it. Customer and call always come from the call record.
func (s *TicketService) CreateFromCall(ctx context.Context, callID int, overrides ports.TicketInput) (*domain.Ticket, error) {
	draft, err := s.DraftFromCall(ctx, callID)
	if err != nil {
		return nil, err
	}

	if overrides.Title != nil {
		draft.Title = *overrides.Title
	}
	if overrides.Description != nil {
		draft.Description = *overrides.Description
	}
	if overrides.Priority != nil {
		draft.Priority = *overrides.Priority
	}
	if overrides.Category != nil {
		draft.Category = *overrides.Category
	}
	if overrides.Status != nil {
		draft.Status = *overrides.Status
	}
	if overrides.Agent != nil {
		draft.Agent = overrides.Agent
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}
	return s.create(ctx, ports.TicketInputFromDraft(*draft), "call")
}

func (s *TicketService) create(ctx context.Context, in ports.TicketInput, source string) (*domain.Ticket, error) {
	t, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Str("source", source).Msg("failed to create ticket")
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	metrics.TicketsCreatedTotal.WithLabelValues(source).Inc()
	s.logger.Info().Int("ticket_id", t.ID).Int("customer_id", t.Customer).Str("source", source).Msg("ticket created")
	return t, nil
}

func withTicketDefaults(in ports.TicketInput) ports.TicketInput {
	if in.Status == nil {
		st := domain.StatusOpen
		in.Status = &st
	}
	if in.Priority == nil {
		p := domain.PriorityMedium
		in.Priority = &p
	}
	if in.Category == nil {
		c := domain.CategoryGeneral
		in.Category = &c
	}
	return in
}
