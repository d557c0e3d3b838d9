package handler

import (
	"time"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error     string `json:"error"`
	Submitted any    `json:"submitted,omitempty"`
}

// --- Session ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r loginRequest) redacted() any {
	return map[string]string{"username": r.Username}
}

type verifyPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

func (r verifyPasswordRequest) redacted() any { return map[string]string{} }

type verifyPasswordResponse struct {
	Valid bool `json:"valid"`
}

// --- Tickets ---

type createTicketRequest struct {
	Title       string  `json:"title"          validate:"required,max=255"`
	Description string  `json:"description"`
	Customer    int     `json:"customer"       validate:"required,gt=0"`
	Agent       *int    `json:"agent"          validate:"omitempty,gt=0"`
	Call        *int    `json:"call"           validate:"omitempty,gt=0"`
	Priority    *string `json:"priority_level" validate:"omitempty,oneof=Low Medium High"`
	Category    *string `json:"issue_category" validate:"omitempty,oneof=General Technical Billing 'Feature Request'"`
	Status      *string `json:"status"         validate:"omitempty,oneof=Open Pending Resolved"`
}

func (r createTicketRequest) input() ports.TicketInput {
	return ports.TicketInput{
		Title:       &r.Title,
		Description: &r.Description,
		Customer:    &r.Customer,
		Agent:       r.Agent,
		Call:        r.Call,
		Priority:    enumPtr[domain.Priority](r.Priority),
		Category:    enumPtr[domain.Category](r.Category),
		Status:      enumPtr[domain.TicketStatus](r.Status),
	}
}

// updateTicketRequest is a partial update. It is also the override set
// applied to a call-derived draft, where customer and call are ignored.
type updateTicketRequest struct {
	Title       *string `json:"title"          validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Customer    *int    `json:"customer"       validate:"omitempty,gt=0"`
	Agent       *int    `json:"agent"          validate:"omitempty,gt=0"`
	Priority    *string `json:"priority_level" validate:"omitempty,oneof=Low Medium High"`
	Category    *string `json:"issue_category" validate:"omitempty,oneof=General Technical Billing 'Feature Request'"`
	Status      *string `json:"status"         validate:"omitempty,oneof=Open Pending Resolved"`
}

func (r updateTicketRequest) input() ports.TicketInput {
	return ports.TicketInput{
		Title:       r.Title,
		Description: r.Description,
		Customer:    r.Customer,
		Agent:       r.Agent,
		Priority:    enumPtr[domain.Priority](r.Priority),
		Category:    enumPtr[domain.Category](r.Category),
		Status:      enumPtr[domain.TicketStatus](r.Status),
	}
}

// --- Calls ---

type callRequest struct {
	Type          *string    `json:"call_type"       validate:"omitempty,oneof=Inbound Outbound"`
	Customer      *int       `json:"customer"        validate:"omitempty,gt=0"`
	StartTime     *time.Time `json:"call_start_time"`
	EndTime       *time.Time `json:"call_end_time"`
	RecordingPath *string    `json:"recording_path"`
	Notes         *string    `json:"notes"`
}

type createCallRequest struct {
	Type          string     `json:"call_type"       validate:"required,oneof=Inbound Outbound"`
	Customer      int        `json:"customer"        validate:"required,gt=0"`
	StartTime     time.Time  `json:"call_start_time" validate:"required"`
	EndTime       *time.Time `json:"call_end_time"`
	RecordingPath *string    `json:"recording_path"`
	Notes         *string    `json:"notes"`
}

func (r createCallRequest) input() ports.CallInput {
	t := domain.CallType(r.Type)
	return ports.CallInput{
		Type:          &t,
		Customer:      &r.Customer,
		StartTime:     &r.StartTime,
		EndTime:       r.EndTime,
		RecordingPath: r.RecordingPath,
		Notes:         r.Notes,
	}
}

func (r callRequest) input() ports.CallInput {
	return ports.CallInput{
		Type:          enumPtr[domain.CallType](r.Type),
		Customer:      r.Customer,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		RecordingPath: r.RecordingPath,
		Notes:         r.Notes,
	}
}

// --- Customers ---

type createCustomerRequest struct {
	FullName      string  `json:"full_name"      validate:"required,max=255"`
	Email         string  `json:"email"          validate:"required,email"`
	PhoneNumber   string  `json:"phone_number"   validate:"required,max=20"`
	Address       *string `json:"address"`
	AccountStatus *string `json:"account_status" validate:"omitempty,oneof=Active Inactive"`
	AssignedAgent *int    `json:"assigned_agent" validate:"omitempty,gt=0"`
}

func (r createCustomerRequest) input() ports.CustomerInput {
	return ports.CustomerInput{
		FullName:      &r.FullName,
		Email:         &r.Email,
		PhoneNumber:   &r.PhoneNumber,
		Address:       r.Address,
		AccountStatus: r.AccountStatus,
		AssignedAgent: r.AssignedAgent,
	}
}

type updateCustomerRequest struct {
	FullName      *string `json:"full_name"      validate:"omitempty,min=1,max=255"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	PhoneNumber   *string `json:"phone_number"   validate:"omitempty,min=1,max=20"`
	Address       *string `json:"address"`
	AccountStatus *string `json:"account_status" validate:"omitempty,oneof=Active Inactive"`
	AssignedAgent *int    `json:"assigned_agent" validate:"omitempty,gt=0"`
}

func (r updateCustomerRequest) input() ports.CustomerInput {
	return ports.CustomerInput{
		FullName:      r.FullName,
		Email:         r.Email,
		PhoneNumber:   r.PhoneNumber,
		Address:       r.Address,
		AccountStatus: r.AccountStatus,
		AssignedAgent: r.AssignedAgent,
	}
}

// --- Campaigns ---

type createCampaignRequest struct {
	Name        string  `json:"campaign_name" validate:"required,max=255"`
	Type        string  `json:"type"          validate:"required"`
	TargetGroup string  `json:"target_group"  validate:"required"`
	StartDate   string  `json:"start_date"    validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date"      validate:"required,datetime=2006-01-02"`
	Status      *string `json:"status"        validate:"omitempty,oneof=Scheduled Active Completed"`
}

func (r createCampaignRequest) input() ports.CampaignInput {
	return ports.CampaignInput{
		Name:        &r.Name,
		Type:        &r.Type,
		TargetGroup: &r.TargetGroup,
		StartDate:   &r.StartDate,
		EndDate:     &r.EndDate,
		Status:      enumPtr[domain.CampaignStatus](r.Status),
	}
}

type updateCampaignRequest struct {
	Name        *string `json:"campaign_name" validate:"omitempty,min=1,max=255"`
	Type        *string `json:"type"`
	TargetGroup *string `json:"target_group"`
	StartDate   *string `json:"start_date"    validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date"      validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status"        validate:"omitempty,oneof=Scheduled Active Completed"`
}

func (r updateCampaignRequest) input() ports.CampaignInput {
	return ports.CampaignInput{
		Name:        r.Name,
		Type:        r.Type,
		TargetGroup: r.TargetGroup,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Status:      enumPtr[domain.CampaignStatus](r.Status),
	}
}

type memberRequest struct {
	CustomerID int `json:"customer_id" validate:"required,gt=0"`
}

// --- Users ---

type createUserRequest struct {
	Username       string  `json:"username"        validate:"required,max=150"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Password       string  `json:"password"        validate:"required"`
	Role           *string `json:"role"            validate:"omitempty,oneof=Agent Supervisor Admin"`
	Department     *string `json:"department"`
	PhoneExtension *string `json:"phone_extension" validate:"omitempty,max=10"`
}

func (r createUserRequest) redacted() any {
	r.Password = ""
	return r
}

func (r createUserRequest) input() ports.UserInput {
	return ports.UserInput{
		Username:       &r.Username,
		Email:          r.Email,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Password:       r.Password,
		Role:           enumPtr[domain.Role](r.Role),
		Department:     r.Department,
		PhoneExtension: r.PhoneExtension,
	}
}

// updateUserRequest is a partial update. An empty password keeps the stored one.
type updateUserRequest struct {
	Username       *string `json:"username"        validate:"omitempty,min=1,max=150"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Password       string  `json:"password"`
	Role           *string `json:"role"            validate:"omitempty,oneof=Agent Supervisor Admin"`
	Department     *string `json:"department"`
	PhoneExtension *string `json:"phone_extension" validate:"omitempty,max=10"`
}

func (r updateUserRequest) redacted() any {
	r.Password = ""
	return r
}

func (r updateUserRequest) input() ports.UserInput {
	return ports.UserInput{
		Username:       r.Username,
		Email:          r.Email,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Password:       r.Password,
		Role:           enumPtr[domain.Role](r.Role),
		Department:     r.Department,
		PhoneExtension: r.PhoneExtension,
	}
}

// --- Security logs and stats ---

type securityLogQuery struct {
	EventType  string `query:"event_type"  validate:"omitempty,oneof=Login 'Data Access' 'Failed Attempt'"`
	FailedOnly bool   `query:"failed_only"`
}

type statsQuery struct {
	Source string `query:"source" validate:"omitempty,oneof=backend local"`
}
