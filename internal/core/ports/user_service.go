package ports

import (
	"context"

	"github.com/communityhub/events-api/internal/core/domain"
)

// UserService is the user profile store.
type UserService interface {
	GetProfile(ctx context.Context, caller *domain.Identity) (*domain.User, error)
	UpdateProfile(ctx context.Context, caller *domain.Identity, patch domain.ProfilePatch) (*domain.User, error)
	ListAll(ctx context.Context, caller *domain.Identity) ([]*domain.User, error)
	Delete(ctx context.Context, id string, caller *domain.Identity) error
	SetRole(ctx context.Context, id string, role domain.Role, caller *domain.Identity) (*domain.User, error)
}
