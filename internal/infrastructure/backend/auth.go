package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

// AuthRepository wraps the token and identity endpoints.
type AuthRepository struct {
	c *Client
}

func NewAuthRepository(c *Client) *AuthRepository {
	return &AuthRepository{c: c}
}

// ObtainToken exchanges username and password for a token pair. It is sent
// without credentials and never triggers a refresh.
func (r *AuthRepository) ObtainToken(ctx context.Context, username, password string) (ports.Credentials, error) {
	var pair tokenPair
	err := r.c.send(ctx, http.MethodPost, pathToken, credentialsPayload{Username: username, Password: password}, &pair, false)
	if err != nil {
		return ports.Credentials{}, err
	}
	return ports.Credentials{Access: pair.Access, Refresh: pair.Refresh}, nil
}

func (r *AuthRepository) CurrentUser(ctx context.Context) (*domain.User, error) {
	return fetchOne[domain.User](ctx, r.c, pathCurrentUser)
}

type verifyResponse struct {
	Valid *bool `json:"valid"`
}

// VerifyPassword re-checks the logged-in user's password. A validation
// rejection means a wrong password and is reported as false.
func (r *AuthRepository) VerifyPassword(ctx context.Context, password string) (bool, error) {
	var out verifyResponse
	err := r.c.do(ctx, http.MethodPost, pathVerifyPassword, passwordPayload{Password: password}, &out)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return false, nil
		}
		return false, err
	}
	if out.Valid == nil {
		return true, nil
	}
	return *out.Valid, nil
}
