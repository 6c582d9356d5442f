package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/communityhub/events-api/internal/core/authz"
	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type EventService struct {
	events   ports.EventRepository
	activity ports.ActivityRepository
	pub      ports.ActivityPublisher
	log      zerolog.Logger
	now      func() time.Time
}

// NewEventService returns the event lifecycle manager. activity and pub may
// be nil when no trail is kept.
func NewEventService(
	events ports.EventRepository,
	activity ports.ActivityRepository,
	pub ports.ActivityPublisher,
	log zerolog.Logger,
) *EventService {
	return &EventService{
		events:   events,
		activity: activity,
		pub:      pub,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *EventService) Create(ctx context.Context, in ports.CreateEventInput, caller *domain.Identity) (*domain.Event, error) {
	if err := authz.Authorize(caller, authz.EventOwners...); err != nil {
		return nil, err
	}

	e := &domain.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
		Time:        strings.TrimSpace(in.Time),
		Location:    strings.TrimSpace(in.Location),
		Capacity:    in.Capacity,
		ImageURL:    in.ImageURL,
		OrganizerID: caller.UserID,
		Status:      domain.StatusPending,
	}
	if err := validateEvent(e); err != nil {
		return nil, err
	}

	now := s.now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.publish(domain.ActivityEventCreated, e, caller)
	s.log.Info().Str("event_id", e.ID).Str("organizer_id", e.OrganizerID).Msg("event submitted")
	return e, nil
}

func (s *EventService) ListApproved(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx, domain.EventFilter{Status: domain.StatusApproved, ByStartTime: true})
}

func (s *EventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *EventService) ListMine(ctx context.Context, caller *domain.Identity) ([]*domain.Event, error) {
	if err := authz.Authorize(caller, authz.EventOwners...); err != nil {
		return nil, err
	}
	return s.events.List(ctx, domain.EventFilter{OrganizerID: caller.UserID})
}

func (s *EventService) ListAll(ctx context.Context, caller *domain.Identity, status domain.EventStatus) ([]*domain.Event, error) {
	if err := authz.Authorize(caller, authz.AdminOnly...); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, domain.ValidationError("unknown status %q", status)
	}
	return s.events.List(ctx, domain.EventFilter{Status: status})
}

func (s *EventService) Update(ctx context.Context, id string, patch domain.EventPatch, caller *domain.Identity) (*domain.Event, error) {
	if err := authz.Authorize(caller, authz.EventOwners...); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.ValidationError("no fields to update")
	}
	patch = trimPatch(patch)

	current, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageEvent(caller, current); err != nil {
		return nil, err
	}

	if patch.Status != nil {
		if caller.Role != domain.RoleAdmin {
			if *patch.Status == domain.StatusApproved {
				return nil, domain.ErrCannotSelfApprove
			}
			return nil, domain.ErrStatusNotEditable
		}
		if !patch.Status.Valid() {
			return nil, domain.ValidationError("unknown status %q", *patch.Status)
		}
	}

	// Validate the merged result so a patch cannot blank a required field.
	// The write below is unconditional and may land on a newer version than
	// current. That stays valid: organizer_id never changes, so the ownership
	// check holds, and every field the patch sets is validated here, while
	// fields it leaves alone were valid in whatever version is stored.
	preview := *current
	patch.Apply(&preview, current.UpdatedAt)
	if err := validateEvent(&preview); err != nil {
		return nil, err
	}

	updated, err := s.events.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, err
	}

	s.publish(domain.ActivityEventUpdated, updated, caller)
	s.log.Info().Str("event_id", id).Str("actor_id", caller.UserID).Msg("event updated")
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, id string, caller *domain.Identity) error {
	if err := authz.Authorize(caller, authz.EventOwners...); err != nil {
		return err
	}

	current, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanManageEvent(caller, current); err != nil {
		return err
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(domain.ActivityEventDeleted, current, caller)
	s.log.Info().Str("event_id", id).Str("actor_id", caller.UserID).Msg("event deleted")
	return nil
}

func (s *EventService) Approve(ctx context.Context, id string, caller *domain.Identity) (*domain.Event, error) {
	return s.decide(ctx, id, domain.StatusApproved, domain.ActivityEventApproved, caller)
}

func (s *EventService) Reject(ctx context.Context, id string, caller *domain.Identity) (*domain.Event, error) {
	return s.decide(ctx, id, domain.StatusRejected, domain.ActivityEventRejected, caller)
}

// decide moves a pending event to a final status. The repository performs a
// single conditional write, so a concurrent decision yields not_pending.
func (s *EventService) decide(ctx context.Context, id string, to domain.EventStatus, kind domain.ActivityType, caller *domain.Identity) (*domain.Event, error) {
	if err := authz.Authorize(caller, authz.AdminOnly...); err != nil {
		return nil, err
	}
	if !domain.StatusPending.CanTransitionTo(to) {
		return nil, fmt.Errorf("decide: no transition to %s", to)
	}

	e, err := s.events.TransitionStatus(ctx, id, domain.StatusPending, to, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotPending) {
			s.log.Debug().Str("event_id", id).Str("to", string(to)).Msg("decision on non-pending event")
		}
		return nil, err
	}

	s.publish(kind, e, caller)
	s.log.Info().Str("event_id", id).Str("status", string(to)).Str("admin_id", caller.UserID).Msg("event decided")
	return e, nil
}

func (s *EventService) Activity(ctx context.Context, id string, caller *domain.Identity) ([]*domain.Activity, error) {
	if err := authz.Authorize(caller, authz.AdminOnly...); err != nil {
		return nil, err
	}
	if s.activity == nil {
		return []*domain.Activity{}, nil
	}
	return s.activity.ListByEvent(ctx, id)
}

func (s *EventService) publish(t domain.ActivityType, e *domain.Event, actor *domain.Identity) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(domain.NewActivity(t, e.ID, actor, e.Status, s.now()))
}

func trimPatch(p domain.EventPatch) domain.EventPatch {
	for _, f := range []**string{&p.Title, &p.Description, &p.Date, &p.Time, &p.Location} {
		if *f != nil {
			v := strings.TrimSpace(**f)
			*f = &v
		}
	}
	return p
}

func validateEvent(e *domain.Event) error {
	switch {
	case e.Title == "":
		return domain.ValidationError("title is required")
	case e.Location == "":
		return domain.ValidationError("location is required")
	case e.Date == "":
		return domain.ValidationError("date is required")
	case e.Time == "":
		return domain.ValidationError("time is required")
	}
	if _, err := time.Parse(dateLayout, e.Date); err != nil {
		return domain.ValidationError("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(timeLayout, e.Time); err != nil {
		return domain.ValidationError("time must be HH:MM")
	}
	if e.Capacity != nil && *e.Capacity < 0 {
		return domain.ValidationError("capacity must not be negative")
	}
	if !e.Status.Valid() {
		return domain.ValidationError("unknown status %q", e.Status)
	}
	return nil
}
