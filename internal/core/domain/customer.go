package domain

import "time"

const (
	AccountActive   = "Active"
	AccountInactive = "Inactive"
)

// Customer is a CRM contact. Campaigns holds the ids of the campaigns the
// customer belongs to.
type Customer struct {
	ID               int       `json:"customer_id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phone_number"`
	Address          string    `json:"address,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
	AccountStatus    string    `json:"account_status"`
	AssignedAgent    *int      `json:"assigned_agent,omitempty"`
	Campaigns        []int     `json:"campaigns,omitempty"`
}
