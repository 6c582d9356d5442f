package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/communityhub/events-api/internal/api/middleware"
	"github.com/communityhub/events-api/internal/core/domain"
)

// caller returns the identity the Auth middleware verified, nil on public
// routes. Services run their own role checks, so a nil caller on a protected
// operation still fails with unauthenticated.
func caller(c echo.Context) *domain.Identity {
	return middleware.Identity(c)
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.ErrInvalidPayload
	}
	return c.Validate(req)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
