package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/communityhub/events-api/internal/core/authz"
	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

type UserService struct {
	users  ports.UserRepository
	events ports.EventRepository
	log    zerolog.Logger
	now    func() time.Time
}

func NewUserService(users ports.UserRepository, events ports.EventRepository, log zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		events: events,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserService) GetProfile(ctx context.Context, caller *domain.Identity) (*domain.User, error) {
	if err := authz.Authorize(caller, authz.AnyRole...); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, caller.UserID)
}

// UpdateProfile changes the caller's name and email. Role and id are never
// touched here.
func (s *UserService) UpdateProfile(ctx context.Context, caller *domain.Identity, patch domain.ProfilePatch) (*domain.User, error) {
	if err := authz.Authorize(caller, authz.AnyRole...); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.ValidationError("no fields to update")
	}

	clean := domain.ProfilePatch{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.ValidationError("name must not be empty")
		}
		clean.Name = &name
	}
	if patch.Email != nil {
		email := domain.NormalizeEmail(*patch.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, domain.ValidationError("email is invalid")
		}
		clean.Email = &email
	}

	u, err := s.users.UpdateProfile(ctx, caller.UserID, clean, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", u.ID).Msg("profile updated")
	return u, nil
}

func (s *UserService) ListAll(ctx context.Context, caller *domain.Identity) ([]*domain.User, error) {
	if err := authz.Authorize(caller, authz.AdminOnly...); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Delete removes a user and their registrations. Admins cannot delete
// themselves, and users who still own events must hand them off first.
func (s *UserService) Delete(ctx context.Context, id string, caller *domain.Identity) error {
	if err := authz.Authorize(caller, authz.AdminOnly...); err != nil {
		return err
	}
	if id == caller.UserID {
		return domain.ErrCannotModifySelf
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.ensureNoEvents(ctx, id); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("admin_id", caller.UserID).Msg("user deleted")
	return nil
}

// SetRole changes a user's role. The holder sees the new role at next login.
func (s *UserService) SetRole(ctx context.Context, id string, role domain.Role, caller *domain.Identity) (*domain.User, error) {
	if err := authz.Authorize(caller, authz.AdminOnly...); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, domain.ValidationError("unknown role %q", role)
	}
	if id == caller.UserID {
		return nil, domain.ErrCannotModifySelf
	}

	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Role.CanOwnEvents() && !role.CanOwnEvents() {
		if err := s.ensureNoEvents(ctx, id); err != nil {
			return nil, err
		}
	}

	u, err := s.users.UpdateRole(ctx, id, role, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Str("role", string(role)).Str("admin_id", caller.UserID).Msg("role changed")
	return u, nil
}

func (s *UserService) ensureNoEvents(ctx context.Context, userID string) error {
	n, err := s.events.CountByOrganizer(ctx, userID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrOwnsEvents
	}
	return nil
}
