package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/safecall/crm-console/internal/api/middleware"
	"github.com/safecall/crm-console/internal/core/domain"
	"github.com/safecall/crm-console/internal/core/ports"
)

var errNotStubbed = errors.New("not stubbed")

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, u domain.User) {
	c.Set(middleware.UserKey, u)
}

type stubAuthService struct {
	loginFn   func(ctx context.Context, username, password string) (*ports.SessionInfo, error)
	currentFn func(ctx context.Context) (*ports.SessionInfo, error)
	verifyFn  func(ctx context.Context, password string) (bool, error)
	held      *domain.User
	logouts   int
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.SessionInfo, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(context.Context) (*domain.User, error) {
	s.logouts++
	user := s.held
	s.held = nil
	return user, nil
}

func (s *stubAuthService) Current(ctx context.Context) (*ports.SessionInfo, error) {
	if s.currentFn == nil {
		return nil, domain.ErrNoSession
	}
	return s.currentFn(ctx)
}

func (s *stubAuthService) VerifyPassword(ctx context.Context, password string) (bool, error) {
	return s.verifyFn(ctx, password)
}

type stubDashboardService struct {
	loadFn    func(ctx context.Context, key string) (*ports.Dashboard, error)
	forgotten []string
}

func (s *stubDashboardService) Load(ctx context.Context, key string) (*ports.Dashboard, error) {
	return s.loadFn(ctx, key)
}

func (s *stubDashboardService) Forget(key string) {
	s.forgotten = append(s.forgotten, key)
}

type stubStatsService struct {
	sources []ports.StatsSource
}

func (s *stubStatsService) Supervisor(_ context.Context, source ports.StatsSource) (*domain.SupervisorStats, error) {
	s.sources = append(s.sources, source)
	return &domain.SupervisorStats{Stats: domain.SystemStats{TotalCalls: 4}}, nil
}

type stubTicketService struct {
	created   []ports.TicketInput
	updated   map[int]ports.TicketInput
	overrides []ports.TicketInput
	createErr error
}

func (s *stubTicketService) List(context.Context) ([]domain.Ticket, error) { return nil, nil }

func (s *stubTicketService) Get(_ context.Context, id int) (*domain.Ticket, error) {
	if id == 404 {
		return nil, domain.ErrNotFound
	}
	return &domain.Ticket{ID: id}, nil
}

func (s *stubTicketService) Create(_ context.Context, in ports.TicketInput) (*domain.Ticket, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, in)
	return &domain.Ticket{ID: 1, Title: *in.Title}, nil
}

func (s *stubTicketService) Update(_ context.Context, id int, in ports.TicketInput) (*domain.Ticket, error) {
	if s.updated == nil {
		s.updated = make(map[int]ports.TicketInput)
	}
	s.updated[id] = in
	return &domain.Ticket{ID: id}, nil
}

func (s *stubTicketService) Delete(context.Context, int) error { return nil }

func (s *stubTicketService) DraftFromCall(_ context.Context, callID int) (*domain.TicketDraft, error) {
	call := callID
	return &domain.TicketDraft{Title: "Call Follow-up: Ana", Customer: 8, Call: &call}, nil
}

func (s *stubTicketService) CreateFromCall(_ context.Context, callID int, overrides ports.TicketInput) (*domain.Ticket, error) {
	s.overrides = append(s.overrides, overrides)
	call := callID
	return &domain.Ticket{ID: 2, Customer: 8, Call: &call}, nil
}

type stubCampaignService struct {
	added   [][2]int
	removed [][2]int
}

func (s *stubCampaignService) List(context.Context) ([]domain.Campaign, error) { return nil, errNotStubbed }

func (s *stubCampaignService) Get(context.Context, int) (*domain.Campaign, error) {
	return nil, errNotStubbed
}

func (s *stubCampaignService) Create(_ context.Context, in ports.CampaignInput) (*domain.Campaign, error) {
	return &domain.Campaign{ID: 1, Name: *in.Name}, nil
}

func (s *stubCampaignService) Update(context.Context, int, ports.CampaignInput) (*domain.Campaign, error) {
	return nil, errNotStubbed
}

func (s *stubCampaignService) Delete(context.Context, int) error { return errNotStubbed }

func (s *stubCampaignService) ListMembers(_ context.Context, id int) (domain.Membership, error) {
	return domain.Membership{CampaignID: id}, nil
}

func (s *stubCampaignService) AddMember(_ context.Context, id, customerID int) (domain.Membership, error) {
	s.added = append(s.added, [2]int{id, customerID})
	return domain.Membership{CampaignID: id, Members: []domain.Customer{{ID: customerID}}}, nil
}

func (s *stubCampaignService) RemoveMember(_ context.Context, id, customerID int) (domain.Membership, error) {
	s.removed = append(s.removed, [2]int{id, customerID})
	return domain.Membership{CampaignID: id}, nil
}

type stubUserService struct {
	created []ports.UserInput
	updated []ports.UserInput
}

func (s *stubUserService) List(context.Context) ([]domain.User, error) { return nil, nil }

func (s *stubUserService) Get(_ context.Context, id int) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

func (s *stubUserService) Create(_ context.Context, in ports.UserInput) (*domain.User, error) {
	s.created = append(s.created, in)
	return &domain.User{ID: 9, Username: *in.Username}, nil
}

func (s *stubUserService) Update(_ context.Context, id int, in ports.UserInput) (*domain.User, error) {
	s.updated = append(s.updated, in)
	return &domain.User{ID: id}, nil
}

func (s *stubUserService) Delete(context.Context, int) error { return nil }

func (s *stubUserService) Me(context.Context) (*domain.User, error) { return nil, errNotStubbed }

type stubSecurityLogService struct {
	filters []ports.SecurityLogFilter
}

func (s *stubSecurityLogService) List(_ context.Context, f ports.SecurityLogFilter) ([]domain.SecurityLog, error) {
	s.filters = append(s.filters, f)
	return []domain.SecurityLog{{ID: 1, EventType: domain.EventFailedAttempt}}, nil
}
