package ports

import (
	"context"
	"time"

	"github.com/safecall/crm-console/internal/core/domain"
)

// Credentials is the access/refresh token pair issued by the backend.
type Credentials struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessClaims are the fields read from the access token. The token is
// decoded without verification; the backend validates it.
type AccessClaims struct {
	UserID    int
	ExpiresAt time.Time
}

// CredentialStore persists the credential pair between process restarts.
type CredentialStore interface {
	// Load returns nil, nil when nothing is stored.
	Load(ctx context.Context) (*Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}

// Session is the explicit session object handed to the backend client and
// the auth service. It is created at start-up and torn down on logout.
type Session interface {
	SetCredentials(ctx context.Context, access, refresh string) error
	ClearCredentials(ctx context.Context) error
	// AuthorizationHeader returns the bearer header value, or false when no
	// credentials are held.
	AuthorizationHeader(ctx context.Context) (string, bool)
	RefreshToken(ctx context.Context) (string, bool)
	// AccessClaims returns ErrNoSession when no access token is held.
	AccessClaims(ctx context.Context) (AccessClaims, error)

	SetPrincipal(u domain.User)
	Principal() (domain.User, bool)
}
