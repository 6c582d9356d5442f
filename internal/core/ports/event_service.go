package ports

import (
	"context"

	"github.com/communityhub/events-api/internal/core/domain"
)

// CreateEventInput carries the client-supplied event fields. There is no
// status field: new events always start pending.
type CreateEventInput struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Capacity    *int
	ImageURL    *string
}

// EventService is the event lifecycle manager.
type EventService interface {
	Create(ctx context.Context, in CreateEventInput, caller *domain.Identity) (*domain.Event, error)
	ListApproved(ctx context.Context) ([]*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListMine(ctx context.Context, caller *domain.Identity) ([]*domain.Event, error)
	ListAll(ctx context.Context, caller *domain.Identity, status domain.EventStatus) ([]*domain.Event, error)
	Update(ctx context.Context, id string, patch domain.EventPatch, caller *domain.Identity) (*domain.Event, error)
	Delete(ctx context.Context, id string, caller *domain.Identity) error
	Approve(ctx context.Context, id string, caller *domain.Identity) (*domain.Event, error)
	Reject(ctx context.Context, id string, caller *domain.Identity) (*domain.Event, error)
	Activity(ctx context.Context, id string, caller *domain.Identity) ([]*domain.Activity, error)
}
