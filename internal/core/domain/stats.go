package domain

import (
	"sort"
)

// TicketCounts groups tickets by status. Pending is only shown on the
// dashboard.
type TicketCounts struct {
	Total    int `json:"total_tickets"`
	Open     int `json:"open_tickets"`
	Pending  int `json:"pending_tickets"`
	Resolved int `json:"resolved_tickets"`
}

// CountTickets tallies tickets by status.
func CountTickets(tickets []Ticket) TicketCounts {
	counts := TicketCounts{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case StatusOpen:
			counts.Open++
		case StatusPending:
			counts.Pending++
		case StatusResolved:
			counts.Resolved++
		}
	}
	return counts
}

// SystemStats are the system-wide supervisor totals.
type SystemStats struct {
	TotalCalls      int `json:"total_calls"`
	TotalTickets    int `json:"total_tickets"`
	OpenTickets     int `json:"open_tickets"`
	ResolvedTickets int `json:"resolved_tickets"`
}

// AgentPerformance is one row of the supervisor agent table.
type AgentPerformance struct {
	ID              int    `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	CallsCount      int    `json:"calls_count"`
	TicketsAssigned int    `json:"tickets_assigned"`
	TicketsResolved int    `json:"tickets_resolved"`
	ResolutionRate  int    `json:"resolution_rate"`
}

// SupervisorStats is the full supervisor view.
type SupervisorStats struct {
	Stats  SystemStats        `json:"stats"`
	Agents []AgentPerformance `json:"agents"`
}

// ResolutionRate returns round(resolved/assigned*100), rounding halves up,
// or 0 when nothing is assigned.
func ResolutionRate(resolved, assigned int) int {
	if assigned <= 0 {
		return 0
	}
	return (resolved*200 + assigned) / (2 * assigned)
}

// WithRates fills in ResolutionRate for every agent.
func (s SupervisorStats) WithRates() SupervisorStats {
	agents := make([]AgentPerformance, len(s.Agents))
	for i, a := range s.Agents {
		a.ResolutionRate = ResolutionRate(a.TicketsResolved, a.TicketsAssigned)
		agents[i] = a
	}
	s.Agents = agents
	return s
}

// Aggregate derives supervisor statistics from raw collections. Only users
// with the Agent role get a performance row.
func Aggregate(calls []Call, tickets []Ticket, users []User) SupervisorStats {
	callsByAgent := make(map[int]int)
	for _, c := range calls {
		if c.Agent != nil {
			callsByAgent[*c.Agent]++
		}
	}

	assigned := make(map[int]int)
	resolved := make(map[int]int)
	for _, t := range tickets {
		if t.Agent == nil {
			continue
		}
		assigned[*t.Agent]++
		if t.Status == StatusResolved {
			resolved[*t.Agent]++
		}
	}

	agents := make([]AgentPerformance, 0)
	for _, u := range users {
		if u.Role != RoleAgent {
			continue
		}
		agents = append(agents, AgentPerformance{
			ID:              u.ID,
			Username:        u.Username,
			FullName:        u.FullName(),
			CallsCount:      callsByAgent[u.ID],
			TicketsAssigned: assigned[u.ID],
			TicketsResolved: resolved[u.ID],
			ResolutionRate:  ResolutionRate(resolved[u.ID], assigned[u.ID]),
		})
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].ID < agents[j].ID })

	counts := CountTickets(tickets)
	return SupervisorStats{
		Stats: SystemStats{
			TotalCalls:      len(calls),
			TotalTickets:    counts.Total,
			OpenTickets:     counts.Open,
			ResolvedTickets: counts.Resolved,
		},
		Agents: agents,
	}
}

// RecentTickets returns up to n tickets with the highest ids first.
func RecentTickets(tickets []Ticket, n int) []Ticket {
	sorted := make([]Ticket, len(tickets))
	copy(sorted, tickets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
