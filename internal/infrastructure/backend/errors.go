package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/safecall/crm-console/internal/core/domain"
)

const maxErrorBody = 64 << 10

// APIError is a failed backend call. Status is 0 when no response arrived.
// It unwraps to the matching domain sentinel, so errors.Is(err,
// domain.ErrForbidden) and friends work on it directly.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string

	cause error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *APIError) Unwrap() []error {
	errs := []error{classify(e.Status)}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// classify maps an HTTP status onto the domain error taxonomy.
func classify(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return domain.ErrValidation
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return domain.ErrUnavailable
	}
}

func transportError(method, path string, err error) *APIError {
	return &APIError{Method: method, Path: path, Message: err.Error(), cause: err}
}

// decodeError builds an APIError from a non-2xx response. The body is read
// but not closed.
func decodeError(method, path string, resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := errorMessage(raw)
	if msg == "" {
		msg = strings.ToLower(http.StatusText(resp.StatusCode))
	}
	return &APIError{Status: resp.StatusCode, Message: msg, Method: method, Path: path}
}

// errorMessage extracts a human readable message from the common backend
// error shapes: {"detail": "..."}, {"error": "..."} and field error maps
// such as {"email": ["already taken"]}.
func errorMessage(raw []byte) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}

	for _, key := range []string{"detail", "error", "message"} {
		if v, ok := body[key]; ok {
			var s string
			if json.Unmarshal(v, &s) == nil && s != "" {
				return s
			}
		}
	}

	fields := make([]string, 0, len(body))
	for k := range body {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, field := range fields {
		var msgs []string
		if json.Unmarshal(body[field], &msgs) == nil && len(msgs) > 0 {
			return field + ": " + msgs[0]
		}
	}
	return ""
}

// isRejection reports whether the backend answered with a 4xx, as opposed to
// being unreachable or failing internally.
func isRejection(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status >= 400 && apiErr.Status < 500
}
