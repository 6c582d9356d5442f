package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/communityhub/events-api/internal/core/authz"
	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

type RegistrationService struct {
	events ports.EventRepository
	regs   ports.RegistrationRepository
	pub    ports.ActivityPublisher
	log    zerolog.Logger
	now    func() time.Time
}

func NewRegistrationService(
	events ports.EventRepository,
	regs ports.RegistrationRepository,
	pub ports.ActivityPublisher,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		events: events,
		regs:   regs,
		pub:    pub,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register RSVPs the caller to an approved event with room left.
//
// The checks below give precise reasons for the common case. The repository
// repeats status and capacity under its own lock, and that decision is final.
func (s *RegistrationService) Register(ctx context.Context, eventID string, caller *domain.Identity) (*domain.Registration, error) {
	if err := authz.Authorize(caller, authz.AnyRole...); err != nil {
		return nil, err
	}

	e, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.Status != domain.StatusApproved {
		return nil, domain.ErrEventNotApproved
	}

	exists, err := s.regs.Exists(ctx, caller.UserID, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyRegistered
	}

	if e.Capacity != nil {
		active, err := s.regs.CountActive(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if !e.HasRoom(active) {
			return nil, domain.ErrEventFull
		}
	}

	r := &domain.Registration{
		UserID:    caller.UserID,
		EventID:   eventID,
		Status:    domain.RegistrationRegistered,
		CreatedAt: s.now(),
	}
	if err := s.regs.Create(ctx, r); err != nil {
		return nil, err
	}

	s.publish(domain.ActivityRegistered, eventID, caller)
	s.log.Info().Str("event_id", eventID).Str("user_id", caller.UserID).Msg("registered for event")
	return r, nil
}

// Cancel removes the caller's registration.
func (s *RegistrationService) Cancel(ctx context.Context, eventID string, caller *domain.Identity) error {
	if err := authz.Authorize(caller, authz.AnyRole...); err != nil {
		return err
	}
	if err := s.regs.Delete(ctx, caller.UserID, eventID); err != nil {
		return err
	}

	s.publish(domain.ActivityRegistrationCxl, eventID, caller)
	s.log.Info().Str("event_id", eventID).Str("user_id", caller.UserID).Msg("registration cancelled")
	return nil
}

func (s *RegistrationService) ListMine(ctx context.Context, caller *domain.Identity) ([]*domain.Registration, error) {
	if err := authz.Authorize(caller, authz.AnyRole...); err != nil {
		return nil, err
	}
	return s.regs.ListByUser(ctx, caller.UserID)
}

// ListForEvent returns the attendee list to the event's owner or an admin.
func (s *RegistrationService) ListForEvent(ctx context.Context, eventID string, caller *domain.Identity) ([]*domain.Registration, error) {
	if err := authz.Authorize(caller, authz.EventOwners...); err != nil {
		return nil, err
	}
	e, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageEvent(caller, e); err != nil {
		return nil, err
	}
	return s.regs.ListByEvent(ctx, eventID)
}

func (s *RegistrationService) publish(t domain.ActivityType, eventID string, actor *domain.Identity) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(domain.NewActivity(t, eventID, actor, "", s.now()))
}
