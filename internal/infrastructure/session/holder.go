// Package session holds the console's backend credentials. A Holder is
// created once at start-up and passed explicitly to every component that
// needs the bearer header.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

var errEmptyAccessToken = errors.New("empty access token")

// Holder implements ports.Session on top of a ports.CredentialStore.
type Holder struct {
	store ports.CredentialStore
	log   zerolog.Logger

	mu        sync.RWMutex
	creds     *ports.Credentials
	principal *domain.User
}

func NewHolder(store ports.CredentialStore, log zerolog.Logger) *Holder {
	return &Holder{store: store, log: log}
}

// Restore loads credentials persisted by a previous run, if any.
func (h *Holder) Restore(ctx context.Context) error {
	creds, err := h.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if creds == nil || creds.Access == "" {
		return nil
	}

	h.mu.Lock()
	h.creds = creds
	h.mu.Unlock()

	h.log.Info().Msg("session restored from credential store")
	return nil
}

// SetCredentials replaces the held token pair and persists it. An empty
// refresh token keeps the current one, matching backends that do not rotate
// refresh tokens.
func (h *Holder) SetCredentials(ctx context.Context, access, refresh string) error {
	if access == "" {
		return errEmptyAccessToken
	}

	h.mu.Lock()
	if refresh == "" && h.creds != nil {
		refresh = h.creds.Refresh
	}
	creds := ports.Credentials{Access: access, Refresh: refresh}
	h.creds = &creds
	h.mu.Unlock()

	if err := h.store.Save(ctx, creds); err != nil {
		h.log.Warn().Err(err).Msg("failed to persist credentials")
		return fmt.Errorf("set credentials: %w", err)
	}
	return nil
}

// ClearCredentials drops the token pair and the principal.
func (h *Holder) ClearCredentials(ctx context.Context) error {
	h.mu.Lock()
	h.creds = nil
	h.principal = nil
	h.mu.Unlock()

	if err := h.store.Clear(ctx); err != nil {
		h.log.Warn().Err(err).Msg("failed to clear persisted credentials")
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (h *Holder) AuthorizationHeader(_ context.Context) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.creds == nil || h.creds.Access == "" {
		return "", false
	}
	return "Bearer " + h.creds.Access, true
}

func (h *Holder) RefreshToken(_ context.Context) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.creds == nil || h.creds.Refresh == "" {
		return "", false
	}
	return h.creds.Refresh, true
}

func (h *Holder) SetPrincipal(u domain.User) {
	h.mu.Lock()
	h.principal = &u
	h.mu.Unlock()
}

func (h *Holder) Principal() (domain.User, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.principal == nil {
		return domain.User{}, false
	}
	return *h.principal, true
}

// AccessClaims decodes user_id and exp from the held access token.
func (h *Holder) AccessClaims(_ context.Context) (ports.AccessClaims, error) {
	h.mu.RLock()
	var access string
	if h.creds != nil {
		access = h.creds.Access
	}
	h.mu.RUnlock()

	if access == "" {
		return ports.AccessClaims{}, domain.ErrNoSession
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return ports.AccessClaims{}, fmt.Errorf("decode access token: %w", err)
	}

	var out ports.AccessClaims
	if uid, ok := claims["user_id"].(float64); ok {
		out.UserID = int(uid)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return ports.AccessClaims{}, fmt.Errorf("decode access token: %w", err)
	}
	if exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
