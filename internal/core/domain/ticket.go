package domain

import (
	"fmt"
	"time"
)

// TicketStatus represents the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusOpen     TicketStatus = "Open"
	StatusPending  TicketStatus = "Pending"
	StatusResolved TicketStatus = "Resolved"
)

// Priority is the ticket priority level.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Category is the ticket issue category.
type Category string

const (
	CategoryGeneral        Category = "General"
	CategoryTechnical      Category = "Technical"
	CategoryBilling        Category = "Billing"
	CategoryFeatureRequest Category = "Feature Request"
)

// validTransitions defines the allowed state machine transitions. Tickets
// may move freely between every state.
var validTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen:     {StatusOpen, StatusPending, StatusResolved},
	StatusPending:  {StatusOpen, StatusPending, StatusResolved},
	StatusResolved: {StatusOpen, StatusPending, StatusResolved},
}

func (s TicketStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryTechnical, CategoryBilling, CategoryFeatureRequest:
		return true
	}
	return false
}

// Ticket is a trackable customer issue.
type Ticket struct {
	ID           int          `json:"ticket_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Customer     int          `json:"customer"`
	CustomerName string       `json:"customer_name,omitempty"`
	Agent        *int         `json:"agent"`
	AgentName    string       `json:"agent_name,omitempty"`
	Priority     Priority     `json:"priority_level"`
	Category     Category     `json:"issue_category"`
	Status       TicketStatus `json:"status"`
	Call         *int         `json:"call"`
	CreatedAt    time.Time    `json:"created_at"`
	ResolvedAt   *time.Time   `json:"resolved_at"`
	CreatedBy    *int         `json:"created_by"`
}

// TicketDraft is a pre-filled ticket form. Every field stays editable before
// submission except Customer and Call when derived from a call.
type TicketDraft struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Customer    int          `json:"customer"`
	Call        *int         `json:"call,omitempty"`
	Agent       *int         `json:"agent,omitempty"`
	Priority    Priority     `json:"priority_level"`
	Category    Category     `json:"issue_category"`
	Status      TicketStatus `json:"status"`
}

// Validate checks the enumerated fields and the customer reference.
func (d TicketDraft) Validate() error {
	if d.Customer <= 0 {
		return ErrMissingCustomer
	}
	return ValidateTicketFields(&d.Status, &d.Priority, &d.Category)
}

// ValidateTicketFields checks the non-nil enum values.
func ValidateTicketFields(status *TicketStatus, priority *Priority, category *Category) error {
	if status != nil && !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *status)
	}
	if priority != nil && !priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *priority)
	}
	if category != nil && !category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, *category)
	}
	return nil
}

// DeriveTicket pre-fills a ticket from a call. The call must reference a
// customer.
func DeriveTicket(c Call) (TicketDraft, error) {
	if c.Customer == nil || *c.Customer <= 0 {
		return TicketDraft{}, fmt.Errorf("derive ticket from call #%d: %w", c.ID, ErrMissingCustomer)
	}

	customerName := c.CustomerName
	if customerName == "" {
		customerName = "Customer"
	}
	notes := c.Notes
	if notes == "" {
		notes = "N/A"
	}

	callID := c.ID
	return TicketDraft{
		Title:       fmt.Sprintf("Ticket for Call #%d", c.ID),
		Description: fmt.Sprintf("Follow-up for %s regarding call #%d.\nCall notes: %s", customerName, c.ID, notes),
		Customer:    *c.Customer,
		Call:        &callID,
		Priority:    PriorityMedium,
		Category:    CategoryGeneral,
		Status:      StatusOpen,
	}, nil
}
