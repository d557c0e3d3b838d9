package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safecall/crm-console/internal/core/ports"
)

type CallHandler struct {
	calls ports.CallService
}

func NewCallHandler(calls ports.CallService) *CallHandler {
	return &CallHandler{calls: calls}
}

// History returns the call log, newest first, with display labels.
//
// @Summary      Call history
// @Tags         calls
// @Produce      json
// @Success      200  {object}  listResponse[ports.CallHistoryEntry]
// @Failure      502  {object}  errorResponse
// @Router       /api/calls [get]
func (h *CallHandler) History(c echo.Context) error {
	entries, err := h.calls.History(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(entries))
}

// @Summary      Get call
// @Tags         calls
// @Produce      json
// @Param        id   path      int  true  "Call ID"
// @Success      200  {object}  ports.CallHistoryEntry
// @Failure      404  {object}  errorResponse
// @Router       /api/calls/{id} [get]
func (h *CallHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entry, err := h.calls.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// Create logs a call.
//
// @Summary      Log call
// @Tags         calls
// @Accept       json
// @Produce      json
// @Param        body  body      createCallRequest  true  "Call"
// @Success      201   {object}  domain.Call
// @Failure      422   {object}  errorResponse
// @Router       /api/calls [post]
func (h *CallHandler) Create(c echo.Context) error {
	var req createCallRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	call, err := h.calls.Create(c.Request().Context(), req.input())
	if err != nil {
		return formFailure(err, &req)
	}
	return c.JSON(http.StatusCreated, call)
}

// Update changes call fields, typically to record the end time and notes.
//
// @Summary      Update call
// @Tags         calls
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Call ID"
// @Param        body  body      callRequest  true  "Fields to change"
// @Success      200   {object}  domain.Call
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/calls/{id} [patch]
func (h *CallHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req callRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	call, err := h.calls.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return formFailure(err, &req)
	}
	return c.JSON(http.StatusOK, call)
}

// @Summary      Delete call
// @Tags         calls
// @Param        id   path  int  true  "Call ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /api/calls/{id} [delete]
func (h *CallHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.calls.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
