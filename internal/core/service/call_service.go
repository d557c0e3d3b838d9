package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

type CallService struct {
	repo   ports.CallRepository
	logger zerolog.Logger
}

func NewCallService(repo ports.CallRepository, logger zerolog.Logger) *CallService {
	return &CallService{repo: repo, logger: logger}
}

// History lists calls with their display labels, in backend order.
func (s *CallService) History(ctx context.Context) ([]ports.CallHistoryEntry, error) {
	calls, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}
	entries := make([]ports.CallHistoryEntry, len(calls))
	for i, c := range calls {
		entries[i] = historyEntry(c)
	}
	return entries, nil
}

func (s *CallService) Get(ctx context.Context, id int) (*ports.CallHistoryEntry, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get call %d: %w", id, err)
	}
	entry := historyEntry(*c)
	return &entry, nil
}

func (s *CallService) Create(ctx context.Context, in ports.CallInput) (*domain.Call, error) {
	if err := validateCallInput(in); err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create call: %w", err)
	}
	s.logger.Info().Int("call_id", c.ID).Str("type", string(c.Type)).Msg("call logged")
	return c, nil
}

func (s *CallService) Update(ctx context.Context, id int, in ports.CallInput) (*domain.Call, error) {
	if err := validateCallInput(in); err != nil {
		return nil, err
	}
	c, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update call %d: %w", id, err)
	}
	return c, nil
}

func (s *CallService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete call %d: %w", id, err)
	}
	s.logger.Info().Int("call_id", id).Msg("call deleted")
	return nil
}

func validateCallInput(in ports.CallInput) error {
	if in.Type != nil && !in.Type.Valid() {
		return fmt.Errorf("%w: invalid call type %q", domain.ErrValidation, *in.Type)
	}
	if in.StartTime != nil && in.EndTime != nil && in.EndTime.Before(*in.StartTime) {
		return fmt.Errorf("%w: call cannot end before it starts", domain.ErrValidation)
	}
	return nil
}

func historyEntry(c domain.Call) ports.CallHistoryEntry {
	return ports.CallHistoryEntry{
		Call:          c,
		Duration:      c.DurationLabel(),
		AgentLabel:    c.AgentLabel(),
		CustomerLabel: c.CustomerLabel(),
		Active:        c.IsActive(),
	}
}
