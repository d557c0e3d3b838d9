package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (s *UserService) Me(ctx context.Context) (*domain.User, error) {
	u, err := s.repo.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return u, nil
}

// Create adds a console user. A password is mandatory on create.
func (s *UserService) Create(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	if in.Password == "" {
		return nil, domain.ErrMissingPassword
	}
	if in.Role == nil {
		r := domain.RoleAgent
		in.Role = &r
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, *in.Role)
	}

	u, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info().Int("user_id", u.ID).Str("role", string(u.Role)).Msg("user created")
	return u, nil
}

// Update patches a user. An empty password leaves the stored one unchanged.
func (s *UserService) Update(ctx context.Context, id int, in ports.UserInput) (*domain.User, error) {
	if in.Role != nil && !in.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, *in.Role)
	}
	u, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	s.logger.Info().Int("user_id", id).Bool("password_changed", in.Password != "").Msg("user updated")
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.logger.Info().Int("user_id", id).Msg("user deleted")
	return nil
}
