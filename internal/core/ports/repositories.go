package ports

import (
	"context"

	"github.com/safecall/crm-console/internal/core/domain"
)

// Every List and Get goes to the backend; nothing is cached between calls.

type CustomerRepository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	// Get makes the backend append a Data Access security log entry.
	Get(ctx context.Context, id int) (*domain.Customer, error)
	Create(ctx context.Context, in CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id int, in CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id int) error
}

type CallRepository interface {
	List(ctx context.Context) ([]domain.Call, error)
	Get(ctx context.Context, id int) (*domain.Call, error)
	Create(ctx context.Context, in CallInput) (*domain.Call, error)
	Update(ctx context.Context, id int, in CallInput) (*domain.Call, error)
	Delete(ctx context.Context, id int) error
}

type TicketRepository interface {
	List(ctx context.Context) ([]domain.Ticket, error)
	Get(ctx context.Context, id int) (*domain.Ticket, error)
	Create(ctx context.Context, in TicketInput) (*domain.Ticket, error)
	Update(ctx context.Context, id int, in TicketInput) (*domain.Ticket, error)
	Delete(ctx context.Context, id int) error
}

// CampaignRepository also exposes the membership endpoints. AddMember and
// RemoveMember carry no idempotency guarantee of their own.
type CampaignRepository interface {
	List(ctx context.Context) ([]domain.Campaign, error)
	Get(ctx context.Context, id int) (*domain.Campaign, error)
	Create(ctx context.Context, in CampaignInput) (*domain.Campaign, error)
	Update(ctx context.Context, id int, in CampaignInput) (*domain.Campaign, error)
	Delete(ctx context.Context, id int) error

	Members(ctx context.Context, campaignID int) ([]domain.Customer, error)
	AddMember(ctx context.Context, campaignID, customerID int) error
	RemoveMember(ctx context.Context, campaignID, customerID int) error
}

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, in UserInput) (*domain.User, error)
	Update(ctx context.Context, id int, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, id int) error
	Me(ctx context.Context) (*domain.User, error)
}

// SecurityLogRepository is read-only; the log is append-only on the backend.
type SecurityLogRepository interface {
	List(ctx context.Context) ([]domain.SecurityLog, error)
	Get(ctx context.Context, id int) (*domain.SecurityLog, error)
}

// StatsRepository returns the backend's pre-aggregated supervisor stats.
type StatsRepository interface {
	Supervisor(ctx context.Context) (*domain.SupervisorStats, error)
}
