package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/communityhub/events-api/internal/core/authz"
	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

// RoleBootstrap maps allowlisted emails to elevated roles at sign-up.
// Everyone else starts as a plain user.
type RoleBootstrap struct {
	admins     map[string]struct{}
	organizers map[string]struct{}
}

func NewRoleBootstrap(adminEmails, organizerEmails []string) RoleBootstrap {
	return RoleBootstrap{
		admins:     emailSet(adminEmails),
		organizers: emailSet(organizerEmails),
	}
}

// RoleFor returns the role a new account with email receives.
func (b RoleBootstrap) RoleFor(email string) domain.Role {
	email = domain.NormalizeEmail(email)
	if _, ok := b.admins[email]; ok {
		return domain.RoleAdmin
	}
	if _, ok := b.organizers[email]; ok {
		return domain.RoleOrganizer
	}
	return domain.RoleUser
}

func emailSet(emails []string) map[string]struct{} {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e = domain.NormalizeEmail(e); e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

// AuthService implements registration, login and logout.
type AuthService struct {
	repo      ports.UserRepository
	tokens    *TokenManager
	bootstrap RoleBootstrap
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(repo ports.UserRepository, tokens *TokenManager, bootstrap RoleBootstrap, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		tokens:    tokens,
		bootstrap: bootstrap,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return nil, domain.ValidationError("email, name and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		Role:         s.bootstrap.RoleFor(email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ValidationError("email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Logout revokes the token the caller authenticated with.
func (s *AuthService) Logout(ctx context.Context, caller *domain.Identity) error {
	if err := authz.Authorize(caller, authz.AnyRole...); err != nil {
		return err
	}
	if err := s.tokens.Revoke(ctx, caller); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
