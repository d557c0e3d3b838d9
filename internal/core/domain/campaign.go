package domain

import (
	"fmt"
	"sort"
)

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignScheduled CampaignStatus = "Scheduled"
	CampaignActive    CampaignStatus = "Active"
	CampaignCompleted CampaignStatus = "Completed"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignScheduled, CampaignActive, CampaignCompleted:
		return true
	}
	return false
}

// ValidateCampaignStatus rejects unknown non-nil statuses.
func ValidateCampaignStatus(s *CampaignStatus) error {
	if s != nil && !s.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCampaignStatus, *s)
	}
	return nil
}

// ValidateCampaignDates rejects an end date before the start date. Dates use
// YYYY-MM-DD, so they order lexically. Either side may be nil.
func ValidateCampaignDates(start, end *string) error {
	if start != nil && end != nil && *start != "" && *end != "" && *end < *start {
		return ErrCampaignDates
	}
	return nil
}

// Campaign is a named outreach effort. Dates use the YYYY-MM-DD layout.
type Campaign struct {
	ID          int            `json:"campaign_id"`
	Name        string         `json:"campaign_name"`
	Type        string         `json:"type"`
	TargetGroup string         `json:"target_group"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	Status      CampaignStatus `json:"status"`
}

// Membership is the set of customers enrolled in a campaign.
type Membership struct {
	CampaignID int        `json:"campaign_id"`
	Members    []Customer `json:"members"`
}

// NewMembership builds a membership set, dropping duplicate customer ids and
// ordering members by id.
func NewMembership(campaignID int, customers []Customer) Membership {
	seen := make(map[int]struct{}, len(customers))
	members := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		members = append(members, c)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return Membership{CampaignID: campaignID, Members: members}
}

// Contains reports whether customerID is a member.
func (m Membership) Contains(customerID int) bool {
	for _, c := range m.Members {
		if c.ID == customerID {
			return true
		}
	}
	return false
}
