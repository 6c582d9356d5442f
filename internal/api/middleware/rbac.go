package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/communityhub/events-api/internal/core/authz"
	"github.com/communityhub/events-api/internal/core/domain"
)

// RBAC lets the request through only when the caller holds one of roles.
// It must run after Auth.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authz.Authorize(Identity(c), roles...); err != nil {
				return reject(err)
			}
			return next(c)
		}
	}
}
