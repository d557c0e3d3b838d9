package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/safecall/crm-console/internal/core/ports"
)

type CampaignHandler struct {
	campaigns ports.CampaignService
}

func NewCampaignHandler(campaigns ports.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// @Summary      List campaigns
// @Tags         campaigns
// @Produce      json
// @Success      200  {object}  listResponse[domain.Campaign]
// @Failure      502  {object}  errorResponse
// @Router       /api/campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	campaigns, err := h.campaigns.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(campaigns))
}

// @Summary      Get campaign
// @Tags         campaigns
// @Produce      json
// @Param        id   path      int  true  "Campaign ID"
// @Success      200  {object}  domain.Campaign
// @Failure      404  {object}  errorResponse
// @Router       /api/campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	campaign, err := h.campaigns.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// Create schedules a campaign. Any role may submit; the backend refuses
// callers without Supervisor rights.
//
// @Summary      Create campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        body  body      createCampaignRequest  true  "Campaign"
// @Success      201   {object}  domain.Campaign
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	var req createCampaignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	campaign, err := h.campaigns.Create(c.Request().Context(), req.input())
	if err != nil {
		return formFailure(err, &req)
	}
	return c.JSON(http.StatusCreated, campaign)
}

// @Summary      Update campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Campaign ID"
// @Param        body  body      updateCampaignRequest  true  "Fields to change"
// @Success      200   {object}  domain.Campaign
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/campaigns/{id} [patch]
func (h *CampaignHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateCampaignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	campaign, err := h.campaigns.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return formFailure(err, &req)
	}
	return c.JSON(http.StatusOK, campaign)
}

// @Summary      Delete campaign
// @Tags         campaigns
// @Param        id   path  int  true  "Campaign ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.campaigns.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Members lists the customers enrolled in a campaign.
//
// @Summary      Campaign members
// @Tags         campaigns
// @Produce      json
// @Param        id   path      int  true  "Campaign ID"
// @Success      200  {object}  domain.Membership
// @Failure      404  {object}  errorResponse
// @Router       /api/campaigns/{id}/members [get]
func (h *CampaignHandler) Members(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	m, err := h.campaigns.ListMembers(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// AddMember enrolls a customer. Enrolling an existing member is a no-op.
//
// @Summary      Add campaign member
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Campaign ID"
// @Param        body  body      memberRequest  true  "Customer"
// @Success      200   {object}  domain.Membership
// @Failure      422   {object}  errorResponse
// @Router       /api/campaigns/{id}/members [post]
func (h *CampaignHandler) AddMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req memberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := h.campaigns.AddMember(c.Request().Context(), id, req.CustomerID)
	if err != nil {
		return formFailure(err, &req)
	}
	return c.JSON(http.StatusOK, m)
}

// RemoveMember withdraws a customer. Removing a non-member is a no-op.
//
// @Summary      Remove campaign member
// @Tags         campaigns
// @Produce      json
// @Param        id           path      int  true  "Campaign ID"
// @Param        customer_id  path      int  true  "Customer ID"
// @Success      200          {object}  domain.Membership
// @Failure      404          {object}  errorResponse
// @Router       /api/campaigns/{id}/members/{customer_id} [delete]
func (h *CampaignHandler) RemoveMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	customerID, err := pathID(c, "customer_id")
	if err != nil {
		return err
	}
	m, err := h.campaigns.RemoveMember(c.Request().Context(), id, customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}
