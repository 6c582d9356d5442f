package ports

import (
	"context"
	"time"

	"github.com/communityhub/events-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Emails arrive
// already normalized; the store enforces their uniqueness.
type UserRepository interface {
	// Create inserts a user and returns it with its assigned ID.
	// Returns domain.ErrEmailTaken when the email is already held.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateProfile applies name/email changes. Returns domain.ErrEmailTaken
	// when the new email belongs to another user.
	UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch, at time.Time) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role, at time.Time) (*domain.User, error)
	// Delete removes the user and their registrations.
	Delete(ctx context.Context, id string) error
}
