package backend

import (
	"context"
	"net/http"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

type CampaignRepository struct {
	c *Client
}

func NewCampaignRepository(c *Client) *CampaignRepository {
	return &CampaignRepository{c: c}
}

func (r *CampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	return fetchList[domain.Campaign](ctx, r.c, pathCampaigns)
}

func (r *CampaignRepository) Get(ctx context.Context, id int) (*domain.Campaign, error) {
	return fetchOne[domain.Campaign](ctx, r.c, itemPath(pathCampaigns, id))
}

func (r *CampaignRepository) Create(ctx context.Context, in ports.CampaignInput) (*domain.Campaign, error) {
	return write[domain.Campaign](ctx, r.c, http.MethodPost, pathCampaigns, toCampaignPayload(in))
}

func (r *CampaignRepository) Update(ctx context.Context, id int, in ports.CampaignInput) (*domain.Campaign, error) {
	return write[domain.Campaign](ctx, r.c, http.MethodPatch, itemPath(pathCampaigns, id), toCampaignPayload(in))
}

func (r *CampaignRepository) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.c, itemPath(pathCampaigns, id))
}

func (r *CampaignRepository) Members(ctx context.Context, campaignID int) ([]domain.Customer, error) {
	return fetchList[domain.Customer](ctx, r.c, campaignAction(campaignID, "members"))
}

func (r *CampaignRepository) AddMember(ctx context.Context, campaignID, customerID int) error {
	return r.c.do(ctx, http.MethodPost, campaignAction(campaignID, "add_customer"), membershipPayload{CustomerID: customerID}, nil)
}

func (r *CampaignRepository) RemoveMember(ctx context.Context, campaignID, customerID int) error {
	return r.c.do(ctx, http.MethodPost, campaignAction(campaignID, "remove_customer"), membershipPayload{CustomerID: customerID}, nil)
}
