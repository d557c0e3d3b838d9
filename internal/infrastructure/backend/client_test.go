package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
	"github.com/safecall/crm-console/internal/infrastructure/session"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestClient(t *testing.T, h http.Handler, access, refresh string) (*Client, *session.Holder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	holder := session.NewHolder(session.NewMemoryStore(), zerolog.Nop())
	if access != "" {
		if err := holder.SetCredentials(context.Background(), access, refresh); err != nil {
			t.Fatalf("set credentials: %v", err)
		}
	}
	return NewClient(srv.URL, holder, zerolog.Nop()), holder
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return m
}

// ---------------------------------------------------------------------------
// Session handling
// ---------------------------------------------------------------------------

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, []domain.Ticket{{ID: 1, Status: domain.StatusOpen}})
	}), "tok", "ref")

	ctx := WithRequestID(context.Background(), "req-123")
	tickets, err := NewTicketRepository(client).List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tickets) != 1 || tickets[0].ID != 1 {
		t.Fatalf("unexpected tickets: %+v", tickets)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotReqID != "req-123" {
		t.Errorf("request id = %q", gotReqID)
	}
}

func TestClient_GeneratesRequestID(t *testing.T) {
	var gotReqID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReqID = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, []domain.Call{})
	}), "tok", "ref")

	if _, err := NewCallRepository(client).List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotReqID) != 36 {
		t.Fatalf("expected a generated uuid, got %q", gotReqID)
	}
}

func TestClient_NoSessionFailsWithoutRequest(t *testing.T) {
	var hits int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}), "", "")

	_, err := NewTicketRepository(client).List(context.Background())
	if !errors.Is(err, domain.ErrNoSession) || !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("no request should reach the backend, got %d", hits)
	}
}

func TestClient_RefreshesOnceAndReplays(t *testing.T) {
	var ticketHits, refreshHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/tickets", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ticketHits, 1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		body := readBody(t, r)
		writeJSON(w, http.StatusCreated, domain.Ticket{ID: 10, Title: body["title"].(string), Status: domain.StatusOpen})
	})
	mux.HandleFunc("/auth/token/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshHits, 1)
		if r.Header.Get("Authorization") != "" {
			t.Errorf("refresh must not carry the access token")
		}
		if body := readBody(t, r); body["refresh"] != "r1" {
			t.Errorf("unexpected refresh body: %v", body)
		}
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh"})
	})

	client, holder := newTestClient(t, mux, "stale", "r1")
	title := "Printer on fire"
	ticket, err := NewTicketRepository(client).Create(context.Background(), ports.TicketInput{Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.ID != 10 || ticket.Title != title {
		t.Fatalf("replayed request lost its body: %+v", ticket)
	}
	if ticketHits != 2 || refreshHits != 1 {
		t.Fatalf("expected 2 ticket hits and 1 refresh, got %d and %d", ticketHits, refreshHits)
	}
	if header, _ := holder.AuthorizationHeader(context.Background()); header != "Bearer fresh" {
		t.Fatalf("session not updated, header = %q", header)
	}
	if rt, _ := holder.RefreshToken(context.Background()); rt != "r1" {
		t.Fatalf("refresh token should be kept when not rotated, got %q", rt)
	}
}

func accessToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 7, "exp": exp.Unix()}).
		SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestClient_RefreshesExpiredTokenBeforeSending(t *testing.T) {
	var ticketHits, refreshHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/tickets", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ticketHits, 1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeJSON(w, http.StatusOK, []domain.Ticket{})
	})
	mux.HandleFunc("/auth/token/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshHits, 1)
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh"})
	})

	client, _ := newTestClient(t, mux, accessToken(t, time.Now().Add(-time.Minute)), "r1")
	if _, err := NewTicketRepository(client).List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticketHits != 1 || refreshHits != 1 {
		t.Fatalf("expected the expired token to be refreshed up front, got %d ticket hits and %d refreshes", ticketHits, refreshHits)
	}
}

func TestClient_ValidTokenIsNotRefreshed(t *testing.T) {
	var refreshHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/tickets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Ticket{})
	})
	mux.HandleFunc("/auth/token/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshHits, 1)
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh"})
	})

	client, _ := newTestClient(t, mux, accessToken(t, time.Now().Add(time.Hour)), "r1")
	if _, err := NewTicketRepository(client).List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshHits != 0 {
		t.Fatalf("a valid token must not be refreshed, got %d refreshes", refreshHits)
	}
}

func TestClient_SecondFailureClearsCredentials(t *testing.T) {
	var ticketHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/tickets", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ticketHits, 1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "no"})
	})
	mux.HandleFunc("/auth/token/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh", "refresh": "r2"})
	})

	client, holder := newTestClient(t, mux, "stale", "r1")
	_, err := NewTicketRepository(client).List(context.Background())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
	if ticketHits != 2 {
		t.Fatalf("expected exactly one replay, got %d hits", ticketHits)
	}
	if _, ok := holder.AuthorizationHeader(context.Background()); ok {
		t.Fatalf("credentials must be cleared after the replay is rejected")
	}
}

func TestClient_RejectedRefreshClearsCredentials(t *testing.T) {
	var ticketHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/tickets", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ticketHits, 1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "expired"})
	})
	mux.HandleFunc("/auth/token/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
	})

	client, holder := newTestClient(t, mux, "stale", "r1")
	_, err := NewTicketRepository(client).List(context.Background())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
	if ticketHits != 1 {
		t.Fatalf("no replay without a new token, got %d hits", ticketHits)
	}
	if _, ok := holder.AuthorizationHeader(context.Background()); ok {
		t.Fatalf("credentials must be cleared when refresh is rejected")
	}
}

func TestClient_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	var refreshHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/calls", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "expired"})
			return
		}
		writeJSON(w, http.StatusOK, []domain.Call{})
	})
	mux.HandleFunc("/auth/token/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshHits, 1)
		writeJSON(w, http.StatusOK, map[string]string{"access": "fresh"})
	})

	client, _ := newTestClient(t, mux, "stale", "r1")
	repo := NewCallRepository(client)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.List(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if refreshHits != 1 {
		t.Fatalf("expected a single shared refresh, got %d", refreshHits)
	}
}

// ---------------------------------------------------------------------------
// Error taxonomy
// ---------------------------------------------------------------------------

func TestClient_NoRetryOnServerError(t *testing.T) {
	var hits int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "database is down"})
	}), "tok", "ref")

	_, err := NewCustomerRepository(client).List(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Message != "database is down" {
		t.Fatalf("unexpected error fields: %+v", apiErr)
	}
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected transient classification, got %v", err)
	}
	if hits != 1 {
		t.Fatalf("CRUD failures must not be retried, got %d hits", hits)
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		want    error
		wantMsg string
	}{
		{"forbidden", http.StatusForbidden, map[string]string{"detail": "You do not have permission to perform this action."}, domain.ErrForbidden, "You do not have permission to perform this action."},
		{"field errors", http.StatusBadRequest, map[string][]string{"email": {"customer with this email already exists."}}, domain.ErrValidation, "email: customer with this email already exists."},
		{"not found", http.StatusNotFound, map[string]string{"detail": "Not found."}, domain.ErrNotFound, "Not found."},
		{"bad gateway no body", http.StatusBadGateway, nil, domain.ErrUnavailable, "bad gateway"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.body == nil {
					w.WriteHeader(tc.status)
					return
				}
				writeJSON(w, tc.status, tc.body)
			}), "tok", "ref")

			_, err := NewCustomerRepository(client).Get(context.Background(), 1)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Message != tc.wantMsg || apiErr.Status != tc.status {
				t.Fatalf("unexpected api error: %+v", apiErr)
			}
		})
	}
}

func TestClient_TransportErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	holder := session.NewHolder(session.NewMemoryStore(), zerolog.Nop())
	_ = holder.SetCredentials(context.Background(), "tok", "ref")
	client := NewClient(url, holder, zerolog.Nop())

	_, err := NewTicketRepository(client).List(context.Background())
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 0 {
		t.Fatalf("expected status-less APIError, got %+v", apiErr)
	}
}

// ---------------------------------------------------------------------------
// Resource endpoints
// ---------------------------------------------------------------------------

func TestUserRepository_UpdateOmitsEmptyPassword(t *testing.T) {
	var body map[string]any
	var method, path string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		body = readBody(t, r)
		writeJSON(w, http.StatusOK, domain.User{ID: 4, Username: "ana", Role: domain.RoleAgent})
	}), "tok", "ref")

	email := "ana@example.com"
	_, err := NewUserRepository(client).Update(context.Background(), 4, ports.UserInput{Email: &email, Password: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != http.MethodPatch || path != "/users/4" {
		t.Fatalf("unexpected request %s %s", method, path)
	}
	if _, ok := body["password"]; ok {
		t.Fatalf("empty password must be absent from the payload: %v", body)
	}
	if body["email"] != email {
		t.Fatalf("supplied field missing: %v", body)
	}
	if len(body) != 1 {
		t.Fatalf("unsupplied fields must be omitted, got %v", body)
	}
}

func TestUserRepository_CreateSendsPassword(t *testing.T) {
	var body map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body = readBody(t, r)
		writeJSON(w, http.StatusCreated, domain.User{ID: 5})
	}), "tok", "ref")

	name := "bo"
	role := domain.RoleSupervisor
	if _, err := NewUserRepository(client).Create(context.Background(), ports.UserInput{Username: &name, Password: "s3cret", Role: &role}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["password"] != "s3cret" || body["role"] != "Supervisor" {
		t.Fatalf("unexpected payload: %v", body)
	}
}

func TestCustomerRepository_GetHitsDetailEndpoint(t *testing.T) {
	var method, path string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		writeJSON(w, http.StatusOK, domain.Customer{ID: 5, FullName: "Jane Doe"})
	}), "tok", "ref")

	c, err := NewCustomerRepository(client).Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != http.MethodGet || path != "/customers/5" {
		t.Fatalf("expected GET /customers/5, got %s %s", method, path)
	}
	if c.FullName != "Jane Doe" {
		t.Fatalf("unexpected customer: %+v", c)
	}
}

func TestCampaignRepository_MembershipEndpoints(t *testing.T) {
	type call struct {
		method, path string
		body         map[string]any
	}
	var calls []call
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path}
		if r.Method == http.MethodPost {
			c.body = readBody(t, r)
			w.WriteHeader(http.StatusOK)
		} else {
			writeJSON(w, http.StatusOK, []domain.Customer{{ID: 3}})
		}
		calls = append(calls, c)
	}), "tok", "ref")

	repo := NewCampaignRepository(client)
	ctx := context.Background()
	if _, err := repo.Members(ctx, 2); err != nil {
		t.Fatalf("members: %v", err)
	}
	if err := repo.AddMember(ctx, 2, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.RemoveMember(ctx, 2, 3); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if len(calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(calls))
	}
	if calls[0].path != "/campaigns/2/members" {
		t.Errorf("members path = %s", calls[0].path)
	}
	if calls[1].path != "/campaigns/2/add_customer" || calls[1].body["customer_id"] != float64(3) {
		t.Errorf("unexpected add call: %+v", calls[1])
	}
	if calls[2].path != "/campaigns/2/remove_customer" || calls[2].body["customer_id"] != float64(3) {
		t.Errorf("unexpected remove call: %+v", calls[2])
	}
}

func TestAuthRepository_ObtainTokenSkipsAuthorization(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/auth/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]string{"access": "a", "refresh": "r"})
	}), "", "")

	creds, err := NewAuthRepository(client).ObtainToken(context.Background(), "ana", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Access != "a" || creds.Refresh != "r" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
	if gotAuth != "" {
		t.Fatalf("login must not send a bearer header, got %q", gotAuth)
	}
}

func TestAuthRepository_LoginFailureDoesNotRefresh(t *testing.T) {
	var refreshHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
	})
	mux.HandleFunc("/auth/token/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshHits, 1)
	})

	client, _ := newTestClient(t, mux, "", "")
	_, err := NewAuthRepository(client).ObtainToken(context.Background(), "ana", "wrong")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
	if refreshHits != 0 {
		t.Fatalf("login failures must not trigger a refresh")
	}
}

func TestAuthRepository_VerifyPassword(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		want   bool
	}{
		{"valid", http.StatusOK, map[string]bool{"valid": true}, true},
		{"explicit invalid", http.StatusOK, map[string]bool{"valid": false}, false},
		{"rejected", http.StatusBadRequest, map[string]string{"detail": "Invalid password"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, tc.body)
			}), "tok", "ref")

			got, err := NewAuthRepository(client).VerifyPassword(context.Background(), "pw")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestStatsRepository_Supervisor(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/supervisor/stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"agents":[{"id":1,"username":"ana","full_name":"Ana","calls_count":2,"tickets_assigned":3,"tickets_resolved":1}],
			"stats":{"total_calls":2,"total_tickets":3,"open_tickets":2,"resolved_tickets":1}}`)
	}), "tok", "ref")

	stats, err := NewStatsRepository(client).Supervisor(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Stats.TotalTickets != 3 || len(stats.Agents) != 1 || stats.Agents[0].TicketsAssigned != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestResourceLabel(t *testing.T) {
	cases := map[string]string{
		"/tickets":             "tickets",
		"/tickets/12":          "tickets",
		"/campaigns/2/members": "campaigns",
		"/auth/token/refresh":  "auth",
		"/supervisor/stats":    "supervisor",
	}
	for in, want := range cases {
		if got := resourceLabel(in); got != want {
			t.Errorf("resourceLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
