// Package backend is the REST client for the CRM backend. Every request
// carries the bearer header from the session holder. A 401 triggers one
// token refresh and one replay; nothing else is retried. An access token
// whose exp has passed is refreshed before the request is sent.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/safecall/crm-console/internal/api/metrics"
	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

const (
	headerRequestID = "X-Request-ID"
	// expirySkew refreshes slightly before exp so the token does not lapse in flight.
	expirySkew = 5 * time.Second
)

// Client sends JSON requests to the backend.
type Client struct {
	baseURL string
	http    *http.Client
	session ports.Session
	log     zerolog.Logger

	refreshGroup singleflight.Group
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient returns a Client rooted at baseURL. No timeout is configured;
// callers bound requests through their context.
func NewClient(baseURL string, session ports.Session, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		session: session,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type requestIDKey struct{}

// WithRequestID attaches a correlation id that is forwarded as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the correlation id attached by WithRequestID.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

func requestID(ctx context.Context) string {
	if id, ok := RequestIDFrom(ctx); ok {
		return id
	}
	return uuid.NewString()
}

// do sends an authenticated request.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, true)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any, auth bool) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
	}
	reqID := requestID(ctx)

	if auth {
		if err := c.refreshIfExpired(ctx); err != nil {
			return err
		}
	}

	resp, usedHeader, err := c.roundTrip(ctx, method, path, payload, reqID, auth)
	if err != nil {
		return err
	}

	if auth && resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		if err := c.refresh(ctx, usedHeader); err != nil {
			return err
		}

		resp, _, err = c.roundTrip(ctx, method, path, payload, reqID, auth)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			apiErr := decodeError(method, path, resp)
			drain(resp)
			c.expire(ctx, "replayed request rejected")
			return apiErr
		}
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(method, path, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", domain.ErrUnavailable, method, path, err)
	}
	return nil
}

// roundTrip performs a single HTTP exchange and returns the authorization
// header it used.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, reqID string, auth bool) (*http.Response, string, error) {
	var header string
	if auth {
		var ok bool
		if header, ok = c.session.AuthorizationHeader(ctx); !ok {
			return nil, "", fmt.Errorf("%s %s: %w", method, path, domain.ErrNoSession)
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, "", fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestID, reqID)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	resource := resourceLabel(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(method, resource).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(method, resource, "error").Inc()
		c.log.Warn().Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", reqID).
			Msg("backend request failed")
		return nil, "", transportError(method, path, err)
	}
	metrics.BackendRequestsTotal.WithLabelValues(method, resource, strconv.Itoa(resp.StatusCode)).Inc()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", reqID).
		Dur("latency", time.Since(start)).
		Msg("backend request")

	return resp, header, nil
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// refresh exchanges the refresh token for a new access token. Concurrent
// callers share one exchange. When staleHeader no longer matches the held
// header another caller already refreshed and nothing is sent.
func (c *Client) refresh(ctx context.Context, staleHeader string) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		if current, ok := c.session.AuthorizationHeader(ctx); ok && current != staleHeader {
			return nil, nil
		}

		rt, ok := c.session.RefreshToken(ctx)
		if !ok {
			metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
			c.expire(ctx, "no refresh token")
			return nil, domain.ErrNoSession
		}

		var pair tokenPair
		if err := c.send(ctx, http.MethodPost, pathTokenRefresh, refreshRequest{Refresh: rt}, &pair, false); err != nil {
			metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
			if isRejection(err) {
				c.expire(ctx, "refresh token rejected")
			}
			return nil, fmt.Errorf("refresh access token: %w", err)
		}
		if pair.Access == "" {
			metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
			return nil, fmt.Errorf("refresh access token: %w: empty access token", domain.ErrUnavailable)
		}
		// The holder keeps the new pair in memory even when persisting fails.
		if err := c.session.SetCredentials(ctx, pair.Access, pair.Refresh); err != nil {
			c.log.Warn().Err(err).Msg("refreshed credentials not persisted")
		}

		metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
		c.log.Info().Msg("access token refreshed")
		return nil, nil
	})
	return err
}

// refreshIfExpired refreshes ahead of a request when the held access token
// carries an exp that has passed. Opaque tokens are sent as they are.
func (c *Client) refreshIfExpired(ctx context.Context) error {
	claims, err := c.session.AccessClaims(ctx)
	if err != nil || claims.ExpiresAt.IsZero() || time.Now().Add(expirySkew).Before(claims.ExpiresAt) {
		return nil
	}
	header, ok := c.session.AuthorizationHeader(ctx)
	if !ok {
		return nil
	}
	c.log.Debug().Time("expires_at", claims.ExpiresAt).Msg("access token expired, refreshing before request")
	return c.refresh(ctx, header)
}

// expire drops the session so the operator has to log in again.
func (c *Client) expire(ctx context.Context, reason string) {
	c.log.Warn().Str("reason", reason).Msg("session expired, credentials cleared")
	if err := c.session.ClearCredentials(ctx); err != nil {
		c.log.Error().Err(err).Msg("failed to clear credentials")
	}
}

// Ping checks that the backend answers HTTP at all. Any status below 500
// counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer drain(resp)
	if resp.StatusCode >= 500 {
		return fmt.Errorf("backend returned %d", resp.StatusCode)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// resourceLabel keeps metric cardinality bounded: "/tickets/12" -> "tickets".
func resourceLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
