package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/communityhub/events-api/internal/api/middleware"
	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

// newContext builds an echo context with the validator installed and, when
// id is non-nil, the identity the Auth middleware would have stored.
func newContext(method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req = httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(middleware.IdentityKey, id)
	}
	return c, rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

var (
	alice = &domain.Identity{UserID: "u-alice", Role: domain.RoleUser, Email: "alice@example.com"}
	olga  = &domain.Identity{UserID: "u-olga", Role: domain.RoleOrganizer, Email: "olga@example.com"}
	root  = &domain.Identity{UserID: "u-root", Role: domain.RoleAdmin, Email: "root@example.com"}
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	logoutFn   func(ctx context.Context, caller *domain.Identity) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, caller *domain.Identity) error {
	return s.logoutFn(ctx, caller)
}

// stubEventService embeds the interface so each test only fills in the
// methods it exercises.
type stubEventService struct {
	ports.EventService
	listApprovedFn func(ctx context.Context) ([]*domain.Event, error)
	getFn          func(ctx context.Context, id string) (*domain.Event, error)
	listAllFn      func(ctx context.Context, caller *domain.Identity, status domain.EventStatus) ([]*domain.Event, error)
	createFn       func(ctx context.Context, in ports.CreateEventInput, caller *domain.Identity) (*domain.Event, error)
	updateFn       func(ctx context.Context, id string, patch domain.EventPatch, caller *domain.Identity) (*domain.Event, error)
	deleteFn       func(ctx context.Context, id string, caller *domain.Identity) error
	approveFn      func(ctx context.Context, id string, caller *domain.Identity) (*domain.Event, error)
	activityFn     func(ctx context.Context, id string, caller *domain.Identity) ([]*domain.Activity, error)
}

func (s *stubEventService) ListApproved(ctx context.Context) ([]*domain.Event, error) {
	return s.listApprovedFn(ctx)
}

func (s *stubEventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.getFn(ctx, id)
}

func (s *stubEventService) ListAll(ctx context.Context, caller *domain.Identity, status domain.EventStatus) ([]*domain.Event, error) {
	return s.listAllFn(ctx, caller, status)
}

func (s *stubEventService) Create(ctx context.Context, in ports.CreateEventInput, caller *domain.Identity) (*domain.Event, error) {
	return s.createFn(ctx, in, caller)
}

func (s *stubEventService) Update(ctx context.Context, id string, patch domain.EventPatch, caller *domain.Identity) (*domain.Event, error) {
	return s.updateFn(ctx, id, patch, caller)
}

func (s *stubEventService) Delete(ctx context.Context, id string, caller *domain.Identity) error {
	return s.deleteFn(ctx, id, caller)
}

func (s *stubEventService) Approve(ctx context.Context, id string, caller *domain.Identity) (*domain.Event, error) {
	return s.approveFn(ctx, id, caller)
}

func (s *stubEventService) Activity(ctx context.Context, id string, caller *domain.Identity) ([]*domain.Activity, error) {
	return s.activityFn(ctx, id, caller)
}

type stubRegistrationService struct {
	ports.RegistrationService
	registerFn func(ctx context.Context, eventID string, caller *domain.Identity) (*domain.Registration, error)
	cancelFn   func(ctx context.Context, eventID string, caller *domain.Identity) error
	listMineFn func(ctx context.Context, caller *domain.Identity) ([]*domain.Registration, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, eventID string, caller *domain.Identity) (*domain.Registration, error) {
	return s.registerFn(ctx, eventID, caller)
}

func (s *stubRegistrationService) Cancel(ctx context.Context, eventID string, caller *domain.Identity) error {
	return s.cancelFn(ctx, eventID, caller)
}

func (s *stubRegistrationService) ListMine(ctx context.Context, caller *domain.Identity) ([]*domain.Registration, error) {
	return s.listMineFn(ctx, caller)
}

type stubUserService struct {
	ports.UserService
	profileFn func(ctx context.Context, caller *domain.Identity) (*domain.User, error)
	updateFn  func(ctx context.Context, caller *domain.Identity, patch domain.ProfilePatch) (*domain.User, error)
	listFn    func(ctx context.Context, caller *domain.Identity) ([]*domain.User, error)
	deleteFn  func(ctx context.Context, id string, caller *domain.Identity) error
	setRoleFn func(ctx context.Context, id string, role domain.Role, caller *domain.Identity) (*domain.User, error)
}

func (s *stubUserService) GetProfile(ctx context.Context, caller *domain.Identity) (*domain.User, error) {
	return s.profileFn(ctx, caller)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, caller *domain.Identity, patch domain.ProfilePatch) (*domain.User, error) {
	return s.updateFn(ctx, caller, patch)
}

func (s *stubUserService) ListAll(ctx context.Context, caller *domain.Identity) ([]*domain.User, error) {
	return s.listFn(ctx, caller)
}

func (s *stubUserService) Delete(ctx context.Context, id string, caller *domain.Identity) error {
	return s.deleteFn(ctx, id, caller)
}

func (s *stubUserService) SetRole(ctx context.Context, id string, role domain.Role, caller *domain.Identity) (*domain.User, error) {
	return s.setRoleFn(ctx, id, role, caller)
}
