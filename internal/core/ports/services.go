package ports

import (
	"context"
	"time"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/view"
)

type TicketService interface {
	List(ctx context.Context) ([]domain.Ticket, error)
	Get(ctx context.Context, id int) (*domain.Ticket, error)
	Create(ctx context.Context, in TicketInput) (*domain.Ticket, error)
	Update(ctx context.Context, id int, in TicketInput) (*domain.Ticket, error)
	Delete(ctx context.Context, id int) error
	DraftFromCall(ctx context.Context, callID int) (*domain.TicketDraft, error)
	CreateFromCall(ctx context.Context, callID int, overrides TicketInput) (*domain.Ticket, error)
}

type CallService interface {
	History(ctx context.Context) ([]CallHistoryEntry, error)
	Get(ctx context.Context, id int) (*CallHistoryEntry, error)
	Create(ctx context.Context, in CallInput) (*domain.Call, error)
	Update(ctx context.Context, id int, in CallInput) (*domain.Call, error)
	Delete(ctx context.Context, id int) error
}

type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id int) (*domain.Customer, error)
	Create(ctx context.Context, in CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id int, in CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id int) error
}

type CampaignService interface {
	List(ctx context.Context) ([]domain.Campaign, error)
	Get(ctx context.Context, id int) (*domain.Campaign, error)
	Create(ctx context.Context, in CampaignInput) (*domain.Campaign, error)
	Update(ctx context.Context, id int, in CampaignInput) (*domain.Campaign, error)
	Delete(ctx context.Context, id int) error

	ListMembers(ctx context.Context, campaignID int) (domain.Membership, error)
	AddMember(ctx context.Context, campaignID, customerID int) (domain.Membership, error)
	RemoveMember(ctx context.Context, campaignID, customerID int) (domain.Membership, error)
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, in UserInput) (*domain.User, error)
	Update(ctx context.Context, id int, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, id int) error
	Me(ctx context.Context) (*domain.User, error)
}

type SecurityLogService interface {
	List(ctx context.Context, filter SecurityLogFilter) ([]domain.SecurityLog, error)
}

// StatsSource selects where supervisor stats come from.
type StatsSource string

const (
	StatsFromBackend StatsSource = "backend"
	StatsComputed    StatsSource = "local"
)

type StatsService interface {
	Supervisor(ctx context.Context, source StatsSource) (*domain.SupervisorStats, error)
}

// Dashboard is the general landing view. Each section is fetched on its own
// and reports its own failure.
type Dashboard struct {
	Customers     view.Section[CustomerSummary]     `json:"customers"`
	Tickets       view.Section[domain.TicketCounts] `json:"tickets"`
	RecentTickets view.Section[[]domain.Ticket]     `json:"recent_tickets"`
	ActiveCalls   view.Section[int]                 `json:"active_calls"`
}

// CustomerSummary is the dashboard customer card.
type CustomerSummary struct {
	Total  int               `json:"total"`
	Latest []domain.Customer `json:"latest"`
}

type DashboardService interface {
	// Load fetches the dashboard for viewKey. A newer Load for the same key
	// makes this one return domain.ErrStaleView.
	Load(ctx context.Context, viewKey string) (*Dashboard, error)
	Forget(viewKey string)
}

// SessionInfo is what the console shows about the logged-in user.
type SessionInfo struct {
	User       domain.User      `json:"user"`
	FullName   string           `json:"full_name"`
	Navigation []domain.NavItem `json:"navigation"`
	Actions    domain.Actions   `json:"actions"`
	// ExpiresAt is the access token's exp, when it carries one.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
