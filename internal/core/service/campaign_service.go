package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/api/metrics"
	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

const (
	opAdd    = "add"
	opRemove = "remove"
)

// CampaignService manages campaigns and their customer membership.
// Membership changes for one campaign are serialized through the queue.
type CampaignService struct {
	repo   ports.CampaignRepository
	queue  ports.Serializer
	logger zerolog.Logger
}

func NewCampaignService(repo ports.CampaignRepository, queue ports.Serializer, logger zerolog.Logger) *CampaignService {
	return &CampaignService{repo: repo, queue: queue, logger: logger}
}

func (s *CampaignService) List(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *CampaignService) Get(ctx context.Context, id int) (*domain.Campaign, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get campaign %d: %w", id, err)
	}
	return c, nil
}

// Create submits a campaign. The console does not check the caller's role;
// the backend decides and a refusal is reported with a hint.
func (s *CampaignService) Create(ctx context.Context, in ports.CampaignInput) (*domain.Campaign, error) {
	if in.Status == nil {
		st := domain.CampaignScheduled
		in.Status = &st
	}
	if err := domain.ValidateCampaignStatus(in.Status); err != nil {
		return nil, err
	}
	if err := domain.ValidateCampaignDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			s.logger.Warn().Err(err).Msg("campaign creation refused by backend")
			return nil, fmt.Errorf("failed to create campaign: ensure you are a Supervisor: %w", domain.ErrForbidden)
		}
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	s.logger.Info().Int("campaign_id", c.ID).Str("name", c.Name).Msg("campaign created")
	return c, nil
}

func (s *CampaignService) Update(ctx context.Context, id int, in ports.CampaignInput) (*domain.Campaign, error) {
	if err := domain.ValidateCampaignStatus(in.Status); err != nil {
		return nil, err
	}
	if err := domain.ValidateCampaignDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	c, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update campaign %d: %w", id, err)
	}
	s.logger.Info().Int("campaign_id", id).Msg("campaign updated")
	return c, nil
}

func (s *CampaignService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete campaign %d: %w", id, err)
	}
	s.logger.Info().Int("campaign_id", id).Msg("campaign deleted")
	return nil
}

func (s *CampaignService) ListMembers(ctx context.Context, campaignID int) (domain.Membership, error) {
	return s.members(ctx, campaignID)
}

// AddMember enrolls a customer. Adding an existing member sends nothing.
func (s *CampaignService) AddMember(ctx context.Context, campaignID, customerID int) (domain.Membership, error) {
	return s.mutate(ctx, opAdd, campaignID, customerID)
}

// RemoveMember withdraws a customer. Removing a non-member is a no-op.
func (s *CampaignService) RemoveMember(ctx context.Context, campaignID, customerID int) (domain.Membership, error) {
	return s.mutate(ctx, opRemove, campaignID, customerID)
}

func (s *CampaignService) mutate(ctx context.Context, op string, campaignID, customerID int) (domain.Membership, error) {
	if customerID <= 0 {
		return domain.Membership{}, domain.ErrMissingCustomer
	}

	var result domain.Membership
	err := s.queue.Submit(ctx, membershipKey(campaignID), func(ctx context.Context) error {
		current, err := s.members(ctx, campaignID)
		if err != nil {
			return err
		}

		present := current.Contains(customerID)
		if (op == opAdd && present) || (op == opRemove && !present) {
			metrics.MembershipChangesTotal.WithLabelValues(op, "noop").Inc()
			s.logger.Debug().Int("campaign_id", campaignID).Int("customer_id", customerID).Str("op", op).Msg("membership unchanged")
			result = current
			return nil
		}

		if op == opAdd {
			err = s.repo.AddMember(ctx, campaignID, customerID)
		} else {
			err = s.repo.RemoveMember(ctx, campaignID, customerID)
		}
		if err != nil {
			metrics.MembershipChangesTotal.WithLabelValues(op, "error").Inc()
			return fmt.Errorf("%s customer %d on campaign %d: %w", op, customerID, campaignID, err)
		}
		metrics.MembershipChangesTotal.WithLabelValues(op, "applied").Inc()
		s.logger.Info().Int("campaign_id", campaignID).Int("customer_id", customerID).Str("op", op).Msg("membership changed")

		result, err = s.members(ctx, campaignID)
		return err
	})
	if err != nil {
		return domain.Membership{}, err
	}
	return result, nil
}

func (s *CampaignService) members(ctx context.Context, campaignID int) (domain.Membership, error) {
	customers, err := s.repo.Members(ctx, campaignID)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("list members of campaign %d: %w", campaignID, err)
	}
	return domain.NewMembership(campaignID, customers), nil
}

func membershipKey(campaignID int) string {
	return "campaign:" + strconv.Itoa(campaignID)
}
