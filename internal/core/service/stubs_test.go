package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

type stubTicketRepo struct {
	mu        sync.Mutex
	tickets   map[int]domain.Ticket
	nextID    int
	listErr   error
	createErr error
	created   []ports.TicketInput
	updated   []ports.TicketInput
}

func newStubTicketRepo(tickets ...domain.Ticket) *stubTicketRepo {
	r := &stubTicketRepo{tickets: make(map[int]domain.Ticket), nextID: 100}
	for _, t := range tickets {
		r.tickets[t.ID] = t
	}
	return r
}

func (r *stubTicketRepo) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, t)
	}
	return out, nil
}

func (r *stubTicketRepo) Get(_ context.Context, id int) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *stubTicketRepo) Create(_ context.Context, in ports.TicketInput) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, in)
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	t := domain.Ticket{ID: r.nextID, Agent: in.Agent, Call: in.Call}
	applyTicketInput(&t, in)
	r.tickets[t.ID] = t
	return &t, nil
}

func (r *stubTicketRepo) Update(_ context.Context, id int, in ports.TicketInput) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, in)
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	applyTicketInput(&t, in)
	r.tickets[id] = t
	return &t, nil
}

func (r *stubTicketRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tickets, id)
	return nil
}

func applyTicketInput(t *domain.Ticket, in ports.TicketInput) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Customer != nil {
		t.Customer = *in.Customer
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
}

type stubCallRepo struct {
	calls   map[int]domain.Call
	listErr error
}

func newStubCallRepo(calls ...domain.Call) *stubCallRepo {
	r := &stubCallRepo{calls: make(map[int]domain.Call)}
	for _, c := range calls {
		r.calls[c.ID] = c
	}
	return r
}

func (r *stubCallRepo) List(_ context.Context) ([]domain.Call, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Call, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCallRepo) Get(_ context.Context, id int) (*domain.Call, error) {
	c, ok := r.calls[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *stubCallRepo) Create(_ context.Context, in ports.CallInput) (*domain.Call, error) {
	c := domain.Call{ID: len(r.calls) + 1, Customer: in.Customer}
	if in.Type != nil {
		c.Type = *in.Type
	}
	r.calls[c.ID] = c
	return &c, nil
}

func (r *stubCallRepo) Update(_ context.Context, id int, in ports.CallInput) (*domain.Call, error) {
	c, ok := r.calls[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	if in.EndTime != nil {
		c.EndTime = in.EndTime
	}
	r.calls[id] = c
	return &c, nil
}

func (r *stubCallRepo) Delete(_ context.Context, id int) error {
	delete(r.calls, id)
	return nil
}

type stubCustomerRepo struct {
	customers []domain.Customer
	listErr   error
	gets      int
	created   []ports.CustomerInput
}

func (r *stubCustomerRepo) List(_ context.Context) ([]domain.Customer, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.Customer{}, r.customers...), nil
}

func (r *stubCustomerRepo) Get(_ context.Context, id int) (*domain.Customer, error) {
	r.gets++
	for _, c := range r.customers {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubCustomerRepo) Create(_ context.Context, in ports.CustomerInput) (*domain.Customer, error) {
	r.created = append(r.created, in)
	c := domain.Customer{ID: len(r.customers) + 1}
	if in.FullName != nil {
		c.FullName = *in.FullName
	}
	if in.AccountStatus != nil {
		c.AccountStatus = *in.AccountStatus
	}
	r.customers = append(r.customers, c)
	return &c, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, id int, _ ports.CustomerInput) (*domain.Customer, error) {
	return r.Get(context.Background(), id)
}

func (r *stubCustomerRepo) Delete(_ context.Context, _ int) error { return nil }

// stubCampaignRepo keeps memberships per campaign. AddMember deliberately
// allows duplicates, as the backend contract gives no idempotency guarantee.
type stubCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[int]domain.Campaign
	members   map[int][]domain.Customer
	adds      int
	removes   int
	createErr error
	addErr    error
	created   []ports.CampaignInput
}

func newStubCampaignRepo() *stubCampaignRepo {
	return &stubCampaignRepo{
		campaigns: make(map[int]domain.Campaign),
		members:   make(map[int][]domain.Customer),
	}
}

func (r *stubCampaignRepo) List(_ context.Context) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubCampaignRepo) Get(_ context.Context, id int) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *stubCampaignRepo) Create(_ context.Context, in ports.CampaignInput) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, in)
	if r.createErr != nil {
		return nil, r.createErr
	}
	c := domain.Campaign{ID: len(r.campaigns) + 1}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	r.campaigns[c.ID] = c
	return &c, nil
}

func (r *stubCampaignRepo) Update(_ context.Context, id int, in ports.CampaignInput) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	r.campaigns[id] = c
	return &c, nil
}

func (r *stubCampaignRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.campaigns, id)
	return nil
}

func (r *stubCampaignRepo) Members(_ context.Context, campaignID int) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Customer{}, r.members[campaignID]...), nil
}

func (r *stubCampaignRepo) AddMember(_ context.Context, campaignID, customerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return r.addErr
	}
	r.adds++
	r.members[campaignID] = append(r.members[campaignID], domain.Customer{ID: customerID})
	return nil
}

func (r *stubCampaignRepo) RemoveMember(_ context.Context, campaignID, customerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removes++
	kept := r.members[campaignID][:0]
	for _, c := range r.members[campaignID] {
		if c.ID != customerID {
			kept = append(kept, c)
		}
	}
	r.members[campaignID] = kept
	return nil
}

type stubUserRepo struct {
	users   []domain.User
	listErr error
	created []ports.UserInput
	updated []ports.UserInput
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.User{}, r.users...), nil
}

func (r *stubUserRepo) Get(_ context.Context, id int) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) Me(ctx context.Context) (*domain.User, error) {
	if len(r.users) == 0 {
		return nil, domain.ErrNoSession
	}
	return r.Get(ctx, r.users[0].ID)
}

func (r *stubUserRepo) Create(_ context.Context, in ports.UserInput) (*domain.User, error) {
	r.created = append(r.created, in)
	u := domain.User{ID: len(r.users) + 1}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	r.users = append(r.users, u)
	return &u, nil
}

func (r *stubUserRepo) Update(ctx context.Context, id int, in ports.UserInput) (*domain.User, error) {
	r.updated = append(r.updated, in)
	return r.Get(ctx, id)
}

func (r *stubUserRepo) Delete(_ context.Context, _ int) error { return nil }

type stubSecurityLogRepo struct {
	logs []domain.SecurityLog
}

func (r *stubSecurityLogRepo) List(_ context.Context) ([]domain.SecurityLog, error) {
	return append([]domain.SecurityLog{}, r.logs...), nil
}

func (r *stubSecurityLogRepo) Get(_ context.Context, id int) (*domain.SecurityLog, error) {
	for _, l := range r.logs {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubStatsRepo struct {
	stats domain.SupervisorStats
	err   error
}

func (r *stubStatsRepo) Supervisor(_ context.Context) (*domain.SupervisorStats, error) {
	if r.err != nil {
		return nil, r.err
	}
	s := r.stats
	return &s, nil
}

type stubAuthRepo struct {
	creds      ports.Credentials
	tokenErr   error
	user       *domain.User
	userErr    error
	validPass  string
	tokenCalls int
	userCalls  int
}

func (r *stubAuthRepo) ObtainToken(_ context.Context, _, _ string) (ports.Credentials, error) {
	r.tokenCalls++
	if r.tokenErr != nil {
		return ports.Credentials{}, r.tokenErr
	}
	return r.creds, nil
}

func (r *stubAuthRepo) CurrentUser(_ context.Context) (*domain.User, error) {
	r.userCalls++
	if r.userErr != nil {
		return nil, r.userErr
	}
	u := *r.user
	return &u, nil
}

func (r *stubAuthRepo) VerifyPassword(_ context.Context, password string) (bool, error) {
	return password == r.validPass, nil
}

// ---------------------------------------------------------------------------
// Session and queue fakes
// ---------------------------------------------------------------------------

type fakeSession struct {
	mu        sync.Mutex
	access    string
	refresh   string
	principal *domain.User
	setErr    error
	claims    ports.AccessClaims
}

func (s *fakeSession) SetCredentials(_ context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = access, refresh
	return s.setErr
}

func (s *fakeSession) ClearCredentials(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh, s.principal = "", "", nil
	return nil
}

func (s *fakeSession) AuthorizationHeader(_ context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return "Bearer " + s.access, s.access != ""
}

func (s *fakeSession) RefreshToken(_ context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh, s.refresh != ""
}

func (s *fakeSession) AccessClaims(_ context.Context) (ports.AccessClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.access == "" {
		return ports.AccessClaims{}, domain.ErrNoSession
	}
	return s.claims, nil
}

func (s *fakeSession) SetPrincipal(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = &u
}

func (s *fakeSession) Principal() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.principal == nil {
		return domain.User{}, false
	}
	return *s.principal, true
}

// lockingQueue serializes jobs per key with a mutex, running them on the
// caller's goroutine.
type lockingQueue struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	keys  []string
}

func newLockingQueue() *lockingQueue {
	return &lockingQueue{locks: make(map[string]*sync.Mutex)}
}

func (q *lockingQueue) Submit(ctx context.Context, key string, fn func(context.Context) error) error {
	q.mu.Lock()
	l, ok := q.locks[key]
	if !ok {
		l = &sync.Mutex{}
		q.locks[key] = l
	}
	q.keys = append(q.keys, key)
	q.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn(ctx)
}

func ptr[T any](v T) *T { return &v }
