package ports

import (
	"context"

	"github.com/communityhub/events-api/internal/core/domain"
)

// RegistrationService is the registration (RSVP) manager.
type RegistrationService interface {
	Register(ctx context.Context, eventID string, caller *domain.Identity) (*domain.Registration, error)
	Cancel(ctx context.Context, eventID string, caller *domain.Identity) error
	ListMine(ctx context.Context, caller *domain.Identity) ([]*domain.Registration, error)
	ListForEvent(ctx context.Context, eventID string, caller *domain.Identity) ([]*domain.Registration, error)
}
