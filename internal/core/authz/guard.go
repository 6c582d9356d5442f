// Package authz is the single place role checks are decided. Both the HTTP
// middleware and the services call Authorize, so a service invoked outside
// the router is still gated.
package authz

import "github.com/communityhub/events-api/internal/core/domain"

// Authorize accepts the caller when required is empty (public operation) or
// when the caller's role is in required.
func Authorize(id *domain.Identity, required ...domain.Role) error {
	if len(required) == 0 {
		return nil
	}
	if id == nil {
		return domain.ErrUnauthenticated
	}
	if id.Role == "" {
		return domain.ErrNoRole
	}
	for _, r := range required {
		if id.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}

// Role sets used across the API.
var (
	AnyRole     = []domain.Role{domain.RoleUser, domain.RoleOrganizer, domain.RoleAdmin}
	EventOwners = []domain.Role{domain.RoleOrganizer, domain.RoleAdmin}
	AdminOnly   = []domain.Role{domain.RoleAdmin}
)

// CanManageEvent applies the ownership rule: admins manage every event,
// organizers only their own.
func CanManageEvent(id *domain.Identity, e *domain.Event) error {
	if err := Authorize(id, EventOwners...); err != nil {
		return err
	}
	if id.Role == domain.RoleAdmin || e.OwnedBy(id.UserID) {
		return nil
	}
	return domain.ErrNotOwner
}
