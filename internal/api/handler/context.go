package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/safecall/crm-console/internal/api/middleware"
	"github.com/safecall/crm-console/internal/core/domain"
)

// currentUser returns the principal injected by the Session middleware.
// Its absence means the route was mounted without the middleware.
func currentUser(c echo.Context) (domain.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.User{}, domain.ErrNoSession
	}
	return u, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// FormError is a validation failure that echoes the rejected payload so the
// form can be corrected and resubmitted.
type FormError struct {
	Err       error
	Submitted any
}

func (e *FormError) Error() string { return e.Err.Error() }

func (e *FormError) Unwrap() error { return e.Err }

// redactor is implemented by requests carrying secrets that must not be
// echoed back.
type redactor interface {
	redacted() any
}

func submitted(req any) any {
	if r, ok := req.(redactor); ok {
		return r.redacted()
	}
	return req
}

// bindAndValidate binds the request and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return &FormError{Err: fmt.Errorf("%w: invalid payload", domain.ErrValidation)}
	}
	if err := c.Validate(req); err != nil {
		return &FormError{Err: fmt.Errorf("%w: %s", domain.ErrValidation, err), Submitted: submitted(req)}
	}
	return nil
}

// formFailure attaches the payload to validation errors coming back from
// the service layer. Other errors pass through.
func formFailure(err error, req any) error {
	if errors.Is(err, domain.ErrValidation) {
		return &FormError{Err: err, Submitted: submitted(req)}
	}
	return err
}

// enumPtr converts an optional raw string into an optional enum value.
func enumPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

// listResponse wraps collection responses.
type listResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Count: len(items), Results: items}
}
