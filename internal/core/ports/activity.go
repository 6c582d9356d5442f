package ports

import (
	"context"

	"github.com/communityhub/events-api/internal/core/domain"
)

// ActivityPublisher accepts activity records for asynchronous delivery.
// Publish must not block the caller.
type ActivityPublisher interface {
	Publish(a domain.Activity)
}

// ActivitySink is one destination for activity records.
type ActivitySink interface {
	Record(ctx context.Context, a *domain.Activity) error
}

// ActivityRepository stores and reads an event's audit trail.
type ActivityRepository interface {
	ActivitySink
	// ListByEvent returns the trail oldest first.
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Activity, error)
}
