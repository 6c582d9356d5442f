package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Email != "alice@example.com" || in.Name != "Alice" || in.Password != "correct-horse" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				Token: "token123",
				User:  &domain.User{ID: "u1", Email: in.Email, Name: in.Name, Role: domain.RoleUser, PasswordHash: "$2a$hash"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	// A role in the body is ignored.
	c, rec := newContext(http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","name":"Alice","password":"correct-horse","role":"admin"}`, nil)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != "user" {
		t.Fatalf("unexpected role: %v", user["role"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized: %+v", user)
	}
}

func TestAuthHandler_Register_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		stubErr error
		want    error
	}{
		{"invalid payload", "not-json", nil, domain.ErrInvalidPayload},
		{"missing name", `{"email":"a@example.com","password":"correct-horse"}`, nil, domain.ErrValidation},
		{"bad email", `{"email":"nope","name":"A","password":"correct-horse"}`, nil, domain.ErrValidation},
		{"short password", `{"email":"a@example.com","name":"A","password":"short"}`, nil, domain.ErrValidation},
		{"email taken", `{"email":"a@example.com","name":"A","password":"correct-horse"}`, domain.ErrEmailTaken, domain.ErrEmailTaken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{
				registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
					if tc.stubErr == nil {
						t.Fatalf("should not be called")
					}
					return nil, tc.stubErr
				},
			}
			c, _ := newContext(http.MethodPost, "/api/auth/register", tc.body, nil)

			if err := NewAuthHandler(stub).Register(c); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{Token: "token123", User: &domain.User{ID: "u1", Role: domain.RoleAdmin}}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret"}`, nil)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token123" || resp.User == nil || resp.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"bad"}`, nil)

	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid_credentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/login", "{", nil)

	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected invalid_payload, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var got *domain.Identity
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, caller *domain.Identity) error {
			got = caller
			return nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/auth/logout", "", alice)

	if err := NewAuthHandler(stub).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != alice {
		t.Fatalf("logout must receive the verified caller, got %+v", got)
	}
}
