package ports

import (
	"context"

	"github.com/safecall/crm-console/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*SessionInfo, error)
	// Logout returns the principal that was held, or nil.
	Logout(ctx context.Context) (*domain.User, error)
	Current(ctx context.Context) (*SessionInfo, error)
	VerifyPassword(ctx context.Context, password string) (bool, error)
}
