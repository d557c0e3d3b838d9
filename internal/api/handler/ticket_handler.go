package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safecall/crm-console/internal/core/ports"
)

type TicketHandler struct {
	tickets ports.TicketService
}

func NewTicketHandler(tickets ports.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// List returns every ticket visible to the session.
//
// @Summary      List tickets
// @Tags         tickets
// @Produce      json
// @Success      200  {object}  listResponse[domain.Ticket]
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	tickets, err := h.tickets.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(tickets))
}

// Get returns a single ticket.
//
// @Summary      Get ticket
// @Tags         tickets
// @Produce      json
// @Param        id   path      int  true  "Ticket ID"
// @Success      200  {object}  domain.Ticket
// @Failure      404  {object}  errorResponse
// @Router       /api/tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.tickets.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// Create opens a ticket. Status, priority and category default to Open,
// Medium and General.
//
// @Summary      Create ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        body  body      createTicketRequest  true  "Ticket"
// @Success      201   {object}  domain.Ticket
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	var req createTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.tickets.Create(c.Request().Context(), req.input())
	if err != nil {
		return formFailure(err, &req)
	}
	return c.JSON(http.StatusCreated, t)
}

// Update changes any subset of ticket fields.
//
// @Summary      Update ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Ticket ID"
// @Param        body  body      updateTicketRequest  true  "Fields to change"
// @Success      200   {object}  domain.Ticket
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/tickets/{id} [patch]
func (h *TicketHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.tickets.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return formFailure(err, &req)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete removes a ticket.
//
// @Summary      Delete ticket
// @Tags         tickets
// @Param        id   path  int  true  "Ticket ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tickets/{id} [delete]
func (h *TicketHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.tickets.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Draft pre-fills a ticket from a call for review.
//
// @Summary      Ticket draft from call
// @Tags         calls
// @Produce      json
// @Param        id   path      int  true  "Call ID"
// @Success      200  {object}  domain.TicketDraft
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/calls/{id}/ticket-draft [get]
func (h *TicketHandler) Draft(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	draft, err := h.tickets.DraftFromCall(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draft)
}

// CreateFromCall submits a call-derived ticket with the operator's edits.
// Customer and call always come from the call record.
//
// @Summary      Create ticket from call
// @Tags         calls
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true   "Call ID"
// @Param        body  body      updateTicketRequest  false  "Draft overrides"
// @Success      201   {object}  domain.Ticket
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/calls/{id}/tickets [post]
func (h *TicketHandler) CreateFromCall(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.tickets.CreateFromCall(c.Request().Context(), id, req.input())
	if err != nil {
		return formFailure(err, &req)
	}
	return c.JSON(http.StatusCreated, t)
}
