package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

type failingStore struct{ err error }

func (s failingStore) Load(context.Context) (*ports.Credentials, error) { return nil, s.err }
func (s failingStore) Save(context.Context, ports.Credentials) error { return s.err }
func (s failingStore) Clear(context.Context) error { return s.err }

func TestHolder_SetAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	h := NewHolder(store, zerolog.Nop())

	if _, ok := h.AuthorizationHeader(ctx); ok {
		t.Fatalf("new holder must not carry a header")
	}

	if err := h.SetCredentials(ctx, "acc", "ref"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	header, ok := h.AuthorizationHeader(ctx)
	if !ok || header != "Bearer acc" {
		t.Fatalf("unexpected header %q (ok=%v)", header, ok)
	}
	if stored, _ := store.Load(ctx); stored == nil || stored.Refresh != "ref" {
		t.Fatalf("credentials were not persisted: %+v", stored)
	}

	h.SetPrincipal(domain.User{ID: 1, Username: "ana"})
	if err := h.ClearCredentials(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := h.AuthorizationHeader(ctx); ok {
		t.Fatalf("header should be absent after clear")
	}
	if _, ok := h.Principal(); ok {
		t.Fatalf("principal should be dropped on clear")
	}
	if stored, _ := store.Load(ctx); stored != nil {
		t.Fatalf("store should be empty after clear")
	}
}

func TestHolder_KeepsRefreshWhenNotRotated(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(NewMemoryStore(), zerolog.Nop())
	_ = h.SetCredentials(ctx, "a1", "r1")
	_ = h.SetCredentials(ctx, "a2", "")

	if rt, _ := h.RefreshToken(ctx); rt != "r1" {
		t.Fatalf("expected refresh token to be kept, got %q", rt)
	}
}

func TestHolder_RejectsEmptyAccess(t *testing.T) {
	h := NewHolder(NewMemoryStore(), zerolog.Nop())
	if err := h.SetCredentials(context.Background(), "", "r"); err == nil {
		t.Fatalf("expected error for empty access token")
	}
}

func TestHolder_Restore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Save(ctx, ports.Credentials{Access: "persisted", Refresh: "r"})

	h := NewHolder(store, zerolog.Nop())
	if err := h.Restore(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header, ok := h.AuthorizationHeader(ctx); !ok || header != "Bearer persisted" {
		t.Fatalf("expected restored session to be active, got %q", header)
	}
}

func TestHolder_RestoreError(t *testing.T) {
	boom := errors.New("redis down")
	h := NewHolder(failingStore{err: boom}, zerolog.Nop())
	if err := h.Restore(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestHolder_AccessClaims(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	h := NewHolder(NewMemoryStore(), zerolog.Nop())
	_ = h.SetCredentials(ctx, signToken(t, jwt.MapClaims{"user_id": 12, "exp": exp.Unix()}), "r")

	claims, err := h.AccessClaims(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 12 || !claims.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestHolder_AccessClaimsWithoutSession(t *testing.T) {
	h := NewHolder(NewMemoryStore(), zerolog.Nop())
	if _, err := h.AccessClaims(context.Background()); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
