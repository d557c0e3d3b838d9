package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

// AuthService drives the session lifecycle: login, logout and the
// principal shown in the console header.
type AuthService struct {
	repo    ports.AuthRepository
	session ports.Session
	logger  zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, session ports.Session, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, session: session, logger: logger}
}

// Login obtains a token pair, stores it in the session and loads the
// principal. A rejected login leaves any previous session untouched.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.SessionInfo, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	creds, err := s.repo.ObtainToken(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			s.logger.Warn().Str("username", username).Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.session.SetCredentials(ctx, creds.Access, creds.Refresh); err != nil {
		if _, ok := s.session.AuthorizationHeader(ctx); !ok {
			return nil, fmt.Errorf("login: %w", err)
		}
		s.logger.Warn().Err(err).Msg("session not persisted, continuing in memory")
	}

	user, err := s.repo.CurrentUser(ctx)
	if err != nil {
		_ = s.session.ClearCredentials(ctx)
		return nil, fmt.Errorf("load current user: %w", err)
	}
	s.session.SetPrincipal(*user)

	s.logger.Info().Int("user_id", user.ID).Str("username", user.Username).Str("role", string(user.Role)).Msg("logged in")
	return s.sessionInfo(ctx, *user), nil
}

// Logout clears credentials and principal and returns the principal that
// was held. It never calls the backend.
func (s *AuthService) Logout(ctx context.Context) (*domain.User, error) {
	user, had := s.session.Principal()
	if err := s.session.ClearCredentials(ctx); err != nil {
		return nil, fmt.Errorf("logout: %w", err)
	}
	if !had {
		return nil, nil
	}
	s.logger.Info().Int("user_id", user.ID).Msg("logged out")
	return &user, nil
}

// Current returns the principal, loading it from the backend when the
// session was restored without one or when the held principal is not the
// user the access token was issued to.
func (s *AuthService) Current(ctx context.Context) (*ports.SessionInfo, error) {
	if user, ok := s.session.Principal(); ok {
		claims, err := s.session.AccessClaims(ctx)
		if err != nil || claims.UserID == 0 || claims.UserID == user.ID {
			return s.sessionInfo(ctx, user), nil
		}
		s.logger.Warn().Int("user_id", user.ID).Int("token_user_id", claims.UserID).Msg("principal does not match access token, reloading")
	}
	if _, ok := s.session.AuthorizationHeader(ctx); !ok {
		return nil, domain.ErrNoSession
	}

	user, err := s.repo.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("load current user: %w", err)
	}
	s.session.SetPrincipal(*user)
	return s.sessionInfo(ctx, *user), nil
}

func (s *AuthService) VerifyPassword(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, domain.ErrMissingPassword
	}
	ok, err := s.repo.VerifyPassword(ctx, password)
	if err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.Warn().Msg("password re-verification failed")
	}
	return ok, nil
}

func (s *AuthService) sessionInfo(ctx context.Context, u domain.User) *ports.SessionInfo {
	info := &ports.SessionInfo{
		User:       u,
		FullName:   u.FullName(),
		Navigation: domain.Navigation(u),
		Actions:    domain.ActionsFor(u),
	}
	if claims, err := s.session.AccessClaims(ctx); err == nil && !claims.ExpiresAt.IsZero() {
		exp := claims.ExpiresAt
		info.ExpiresAt = &exp
	}
	return info
}
