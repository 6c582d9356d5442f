package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

func TestAuthService_Register_Success(t *testing.T) {
	f := newFixture()

	res, err := f.auth.Register(context.Background(), ports.RegisterInput{
		Email:    "  Alice@Example.com ",
		Name:     "Alice",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", res.User.Email)
	}
	if res.User.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", res.User.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	id, err := f.tokens.Verify(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if id.UserID != res.User.ID || id.Role != domain.RoleUser {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestAuthService_Register_BootstrapAllowlist(t *testing.T) {
	db := newMemDB()
	tokens := NewTokenManager("secret", time.Hour, nil)
	svc := NewAuthService(memUsers{db}, tokens,
		NewRoleBootstrap([]string{"Root@Example.com"}, []string{"host@example.com"}), zerolog.Nop())

	cases := map[string]domain.Role{
		"root@example.com":  domain.RoleAdmin,
		"HOST@example.com":  domain.RoleOrganizer,
		"guest@example.com": domain.RoleUser,
	}
	for email, want := range cases {
		res, err := svc.Register(context.Background(), ports.RegisterInput{Email: email, Name: "n", Password: "pw"})
		if err != nil {
			t.Fatalf("Register(%s) returned error: %v", email, err)
		}
		if res.User.Role != want {
			t.Fatalf("Register(%s): expected role %s, got %s", email, want, res.User.Role)
		}
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.auth.Register(context.Background(), ports.RegisterInput{Email: "", Name: "x", Password: "pw"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// Scenario: a second account with an existing email is refused and no row is added.
func TestAuthService_Register_EmailTaken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.auth.Register(ctx, ports.RegisterInput{Email: "bob@example.com", Name: "Bob", Password: "pw"}); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	_, err := f.auth.Register(ctx, ports.RegisterInput{Email: "BOB@example.com", Name: "Imposter", Password: "pw2"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected email_taken, got %v", err)
	}
	if len(f.db.users) != 1 {
		t.Fatalf("expected 1 user row, got %d", len(f.db.users))
	}
	u, _ := memUsers{f.db}.FindByEmail(ctx, "bob@example.com")
	if u.Name != "Bob" {
		t.Fatalf("original owner changed: %+v", u)
	}
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.auth.Register(ctx, ports.RegisterInput{Email: "carol@example.com", Name: "Carol", Password: "right"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	res, err := f.auth.Login(ctx, "Carol@Example.com", "right")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Token == "" || res.User.Email != "carol@example.com" {
		t.Fatalf("unexpected login result: %+v", res)
	}

	if _, err := f.auth.Login(ctx, "carol@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid_credentials for bad password, got %v", err)
	}
	if _, err := f.auth.Login(ctx, "nobody@example.com", "right"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid_credentials for unknown email, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	db := newMemDB()
	tokens := NewTokenManager("secret", time.Hour, newStubRevoker())
	svc := NewAuthService(memUsers{db}, tokens, NewRoleBootstrap(nil, nil), zerolog.Nop())
	ctx := context.Background()

	res, err := svc.Register(ctx, ports.RegisterInput{Email: "dan@example.com", Name: "Dan", Password: "pw"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	id, err := tokens.Verify(ctx, res.Token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}

	if err := svc.Logout(ctx, id); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := tokens.Verify(ctx, res.Token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid_token after logout, got %v", err)
	}

	if err := svc.Logout(ctx, nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated for anonymous logout, got %v", err)
	}
}
