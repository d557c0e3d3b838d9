package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/api/handler"
	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/infrastructure/backend"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"no session", domain.ErrNoSession, http.StatusUnauthorized, domain.ErrNoSession.Error()},
		{"invalid credentials", fmt.Errorf("login: %w", domain.ErrInvalidCredentials), http.StatusUnauthorized, "login: authentication required: invalid credentials"},
		{"forbidden", &backend.APIError{Status: 403, Message: "nope", Method: "DELETE", Path: "/users/2"}, http.StatusForbidden, "DELETE /users/2: 403 nope"},
		{"validation", domain.ErrInvalidPriority, http.StatusUnprocessableEntity, domain.ErrInvalidPriority.Error()},
		{"not found", fmt.Errorf("get ticket 9: %w", domain.ErrNotFound), http.StatusNotFound, "get ticket 9: record not found"},
		{"unavailable", fmt.Errorf("list tickets: %w", domain.ErrUnavailable), http.StatusBadGateway, "list tickets: backend unavailable"},
		{"stale view", fmt.Errorf("load dashboard: %w", domain.ErrStaleView), http.StatusConflict, "load dashboard: view superseded by a newer load"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid id"), http.StatusBadRequest, "invalid id"},
		{"unexpected", errors.New("nil map write"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/x", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tt.message != "" && resp.Error != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, resp.Error)
			}
			if resp.Error == "" {
				t.Fatalf("empty error message")
			}
		})
	}
}

func TestHTTPErrorHandler_EchoesSubmittedPayload(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/tickets", nil), rec)

	err := &handler.FormError{
		Err:       fmt.Errorf("%w: status must be one of: Open Pending Resolved", domain.ErrValidation),
		Submitted: map[string]string{"status": "Closed"},
	}
	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp struct {
		Error     string            `json:"error"`
		Submitted map[string]string `json:"submitted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Submitted["status"] != "Closed" {
		t.Fatalf("submitted payload missing: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrNotFound, c)
	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was overwritten: %d %q", rec.Code, rec.Body.String())
	}
}
