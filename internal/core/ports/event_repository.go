package ports

import (
	"context"
	"time"

	"github.com/communityhub/events-api/internal/core/domain"
)

// EventRepository handles event persistence and atomic status transitions.
type EventRepository interface {
	// Create inserts the event and sets its ID.
	Create(ctx context.Context, e *domain.Event) error
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error)
	// Update applies the present patch fields and stamps updated_at.
	Update(ctx context.Context, id string, patch domain.EventPatch, at time.Time) (*domain.Event, error)

	// TransitionStatus moves the event from one status to another in a single
	// conditional write. It returns domain.ErrNotPending when the stored
	// status is no longer from, and domain.ErrEventNotFound when the event
	// does not exist.
	TransitionStatus(ctx context.Context, id string, from, to domain.EventStatus, at time.Time) (*domain.Event, error)

	// Delete removes the event together with its registrations.
	Delete(ctx context.Context, id string) error
	CountByOrganizer(ctx context.Context, organizerID string) (int64, error)
}
