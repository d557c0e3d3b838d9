package domain

import (
	"fmt"
	"time"
)

// CallType distinguishes inbound from outbound calls.
type CallType string

const (
	CallInbound  CallType = "Inbound"
	CallOutbound CallType = "Outbound"
)

func (t CallType) Valid() bool {
	return t == CallInbound || t == CallOutbound
}

// Call is a single phone interaction. A nil EndTime means the call is still
// in progress.
type Call struct {
	ID            int        `json:"call_id"`
	Type          CallType   `json:"call_type"`
	Customer      *int       `json:"customer"`
	CustomerName  string     `json:"customer_name,omitempty"`
	Agent         *int       `json:"agent"`
	AgentName     string     `json:"agent_name,omitempty"`
	StartTime     time.Time  `json:"call_start_time"`
	EndTime       *time.Time `json:"call_end_time"`
	RecordingPath string     `json:"recording_path,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// IsActive reports whether the call has not ended yet.
func (c Call) IsActive() bool {
	return c.EndTime == nil
}

// DurationLabel renders the call length as "Xm Ys", or "Ongoing".
func (c Call) DurationLabel() string {
	if c.EndTime == nil {
		return "Ongoing"
	}
	secs := int64(c.EndTime.Sub(c.StartTime) / time.Second)
	return fmt.Sprintf("%dm %ds", secs/60, secs%60)
}

// AgentLabel is the agent name, or "System" for calls without one.
func (c Call) AgentLabel() string {
	if c.AgentName == "" {
		return "System"
	}
	return c.AgentName
}

// CustomerLabel is the customer name, or "Customer #<id>".
func (c Call) CustomerLabel() string {
	if c.CustomerName != "" {
		return c.CustomerName
	}
	if c.Customer != nil {
		return fmt.Sprintf("Customer #%d", *c.Customer)
	}
	return "Customer"
}

// ActiveCalls counts calls without an end time.
func ActiveCalls(calls []Call) int {
	n := 0
	for _, c := range calls {
		if c.IsActive() {
			n++
		}
	}
	return n
}
