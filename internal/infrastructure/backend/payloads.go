package backend

import (
	"time"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

// Wire payloads. Nil pointers are dropped by omitempty, so a field the caller
// did not supply never reaches the backend.

type customerPayload struct {
	FullName      *string `json:"full_name,omitempty"`
	Email         *string `json:"email,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	Address       *string `json:"address,omitempty"`
	AccountStatus *string `json:"account_status,omitempty"`
	AssignedAgent *int    `json:"assigned_agent,omitempty"`
}

type callPayload struct {
	Type          *domain.CallType `json:"call_type,omitempty"`
	Customer      *int             `json:"customer,omitempty"`
	StartTime     *time.Time       `json:"call_start_time,omitempty"`
	EndTime       *time.Time       `json:"call_end_time,omitempty"`
	RecordingPath *string          `json:"recording_path,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

type ticketPayload struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Customer    *int                 `json:"customer,omitempty"`
	Agent       *int                 `json:"agent,omitempty"`
	Call        *int                 `json:"call,omitempty"`
	Priority    *domain.Priority     `json:"priority_level,omitempty"`
	Category    *domain.Category     `json:"issue_category,omitempty"`
	Status      *domain.TicketStatus `json:"status,omitempty"`
}

type campaignPayload struct {
	Name        *string                `json:"campaign_name,omitempty"`
	Type        *string                `json:"type,omitempty"`
	TargetGroup *string                `json:"target_group,omitempty"`
	StartDate   *string                `json:"start_date,omitempty"`
	EndDate     *string                `json:"end_date,omitempty"`
	Status      *domain.CampaignStatus `json:"status,omitempty"`
}

type userPayload struct {
	Username       *string      `json:"username,omitempty"`
	Email          *string      `json:"email,omitempty"`
	FirstName      *string      `json:"first_name,omitempty"`
	LastName       *string      `json:"last_name,omitempty"`
	Password       string       `json:"password,omitempty"`
	Role           *domain.Role `json:"role,omitempty"`
	Department     *string      `json:"department,omitempty"`
	PhoneExtension *string      `json:"phone_extension,omitempty"`
}

type membershipPayload struct {
	CustomerID int `json:"customer_id"`
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type passwordPayload struct {
	Password string `json:"password"`
}

func toCustomerPayload(in ports.CustomerInput) customerPayload {
	return customerPayload{
		FullName:      in.FullName,
		Email:         in.Email,
		PhoneNumber:   in.PhoneNumber,
		Address:       in.Address,
		AccountStatus: in.AccountStatus,
		AssignedAgent: in.AssignedAgent,
	}
}

func toCallPayload(in ports.CallInput) callPayload {
	return callPayload{
		Type:          in.Type,
		Customer:      in.Customer,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		RecordingPath: in.RecordingPath,
		Notes:         in.Notes,
	}
}

func toTicketPayload(in ports.TicketInput) ticketPayload {
	return ticketPayload{
		Title:       in.Title,
		Description: in.Description,
		Customer:    in.Customer,
		Agent:       in.Agent,
		Call:        in.Call,
		Priority:    in.Priority,
		Category:    in.Category,
		Status:      in.Status,
	}
}

func toCampaignPayload(in ports.CampaignInput) campaignPayload {
	return campaignPayload{
		Name:        in.Name,
		Type:        in.Type,
		TargetGroup: in.TargetGroup,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      in.Status,
	}
}

func toUserPayload(in ports.UserInput) userPayload {
	return userPayload{
		Username:       in.Username,
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Password:       in.Password,
		Role:           in.Role,
		Department:     in.Department,
		PhoneExtension: in.PhoneExtension,
	}
}
