package ports

import (
	"context"

	"github.com/safecall/crm-console/internal/core/domain"
)

// AuthRepository talks to the backend's token and identity endpoints.
type AuthRepository interface {
	ObtainToken(ctx context.Context, username, password string) (Credentials, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
	VerifyPassword(ctx context.Context, password string) (bool, error)
}
