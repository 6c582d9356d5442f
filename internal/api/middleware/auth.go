package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/communityhub/events-api/internal/api/metrics"
	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

// IdentityKey is the echo context key holding the verified *domain.Identity.
const IdentityKey = "identity"

// Auth resolves the bearer token to an identity and stores it under
// IdentityKey. Rejections are returned as domain errors for the central
// error handler.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return reject(err)
			}

			id, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return reject(err)
			}

			c.Set(IdentityKey, id)
			return next(c)
		}
	}
}

// Identity returns the caller stored by Auth, or nil on public routes.
func Identity(c echo.Context) *domain.Identity {
	id, _ := c.Get(IdentityKey).(*domain.Identity)
	return id
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", domain.ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrInvalidToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrMissingToken
	}
	return token, nil
}

// reject counts the failure under its domain code before passing it on.
func reject(err error) error {
	code := "internal"
	var de *domain.Error
	if errors.As(err, &de) {
		code = de.Code
	}
	metrics.AuthFailuresTotal.WithLabelValues(code).Inc()
	return err
}
