package ports

import (
	"context"

	"github.com/communityhub/events-api/internal/core/domain"
)

// RegistrationRepository owns capacity-checked insertion.
type RegistrationRepository interface {
	// Create inserts the registration as one atomic unit with the event's
	// status and capacity check, serialized per event. It returns
	// domain.ErrEventNotFound, domain.ErrEventNotApproved,
	// domain.ErrEventFull or domain.ErrAlreadyRegistered.
	Create(ctx context.Context, r *domain.Registration) error
	// Delete removes the user's registration; domain.ErrNotRegistered if absent.
	Delete(ctx context.Context, userID, eventID string) error
	Exists(ctx context.Context, userID, eventID string) (bool, error)
	CountActive(ctx context.Context, eventID string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
}
