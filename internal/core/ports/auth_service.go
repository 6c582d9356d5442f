package ports

import (
	"context"
	"time"

	"github.com/communityhub/events-api/internal/core/domain"
)

// RegisterInput carries the self-service sign-up fields. Role is never
// accepted from the client.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// AuthResult pairs a freshly issued token with the account it identifies.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, caller *domain.Identity) error
}

// TokenVerifier resolves a bearer token to the caller's identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// TokenRevoker records tokens that must no longer be accepted.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
