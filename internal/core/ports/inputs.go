package ports

import (
	"time"

	"github.com/safecall/crm-console/internal/core/domain"
)

// Input DTOs use pointer fields: nil means "not supplied" and the field is
// left out of the outgoing payload.

// CustomerInput carries customer fields for create and partial update.
type CustomerInput struct {
	FullName      *string
	Email         *string
	PhoneNumber   *string
	Address       *string
	AccountStatus *string
	AssignedAgent *int
}

// CallInput carries call fields for create and partial update.
type CallInput struct {
	Type          *domain.CallType
	Customer      *int
	StartTime     *time.Time
	EndTime       *time.Time
	RecordingPath *string
	Notes         *string
}

// TicketInput carries ticket fields for create and partial update.
type TicketInput struct {
	Title       *string
	Description *string
	Customer    *int
	Agent       *int
	Call        *int
	Priority    *domain.Priority
	Category    *domain.Category
	Status      *domain.TicketStatus
}

// TicketInputFromDraft converts a complete draft into a create input.
func TicketInputFromDraft(d domain.TicketDraft) TicketInput {
	return TicketInput{
		Title:       &d.Title,
		Description: &d.Description,
		Customer:    &d.Customer,
		Agent:       d.Agent,
		Call:        d.Call,
		Priority:    &d.Priority,
		Category:    &d.Category,
		Status:      &d.Status,
	}
}

// CampaignInput carries campaign fields for create and partial update.
type CampaignInput struct {
	Name        *string
	Type        *string
	TargetGroup *string
	StartDate   *string
	EndDate     *string
	Status      *domain.CampaignStatus
}

// UserInput carries user fields for create and partial update. An empty
// Password is never sent, so it cannot overwrite the stored one.
type UserInput struct {
	Username       *string
	Email          *string
	FirstName      *string
	LastName       *string
	Password       string
	Role           *domain.Role
	Department     *string
	PhoneExtension *string
}

// SecurityLogFilter narrows a security log listing. Empty fields match all.
type SecurityLogFilter struct {
	EventType  domain.SecurityEvent
	FailedOnly bool
}

// CallHistoryEntry is a call decorated with its display labels.
type CallHistoryEntry struct {
	domain.Call
	Duration      string `json:"duration"`
	AgentLabel    string `json:"agent_label"`
	CustomerLabel string `json:"customer_label"`
	Active        bool   `json:"active"`
}
