package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

type CustomerService struct {
	repo   ports.CustomerRepository
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Get opens a customer record. The backend records a Data Access entry in
// the security log for every call.
func (s *CustomerService) Get(ctx context.Context, id int) (*domain.Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	s.logger.Info().Int("customer_id", id).Msg("customer record accessed")
	return c, nil
}

func (s *CustomerService) Create(ctx context.Context, in ports.CustomerInput) (*domain.Customer, error) {
	if in.AccountStatus == nil {
		st := domain.AccountActive
		in.AccountStatus = &st
	}
	c, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	s.logger.Info().Int("customer_id", c.ID).Msg("customer created")
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id int, in ports.CustomerInput) (*domain.Customer, error) {
	c, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update customer %d: %w", id, err)
	}
	s.logger.Info().Int("customer_id", id).Msg("customer updated")
	return c, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	s.logger.Info().Int("customer_id", id).Msg("customer deleted")
	return nil
}
