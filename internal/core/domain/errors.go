package domain

import "fmt"

// ErrorKind groups rejection reasons by how callers are expected to react.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication"
	KindAuthorization  ErrorKind = "authorization"
	KindValidation     ErrorKind = "validation"
	KindPrecondition   ErrorKind = "precondition"
	KindNotFound       ErrorKind = "not_found"
	KindInternal       ErrorKind = "internal"
)

// Error is a rejection carrying a stable, machine-checkable reason code.
// Two errors match under errors.Is when their codes are equal, so a
// validation error with a custom message still matches ErrValidation.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is a *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newError(kind ErrorKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Authentication.
var (
	ErrMissingToken       = newError(KindAuthentication, "missing_token", "missing authentication token")
	ErrInvalidToken       = newError(KindAuthentication, "invalid_token", "invalid authentication token")
	ErrExpiredToken       = newError(KindAuthentication, "expired_token", "authentication token expired")
	ErrInvalidCredentials = newError(KindAuthentication, "invalid_credentials", "invalid email or password")
)

// Authorization.
var (
	ErrUnauthenticated   = newError(KindAuthorization, "unauthenticated", "authentication required")
	ErrNoRole            = newError(KindAuthorization, "no_role", "caller has no role")
	ErrForbidden         = newError(KindAuthorization, "forbidden", "access forbidden")
	ErrNotOwner          = newError(KindAuthorization, "not_owner", "only the event owner may do this")
	ErrCannotSelfApprove = newError(KindAuthorization, "cannot_self_approve", "organizers cannot approve events")
	ErrStatusNotEditable = newError(KindAuthorization, "status_not_editable", "organizers cannot change event status")
	ErrCannotModifySelf  = newError(KindAuthorization, "cannot_modify_self", "admins cannot delete or re-role themselves")
)

// Validation.
var (
	ErrValidation     = newError(KindValidation, "validation_failed", "validation failed")
	ErrInvalidPayload = newError(KindValidation, "invalid_payload", "invalid payload")
)

// Preconditions.
var (
	ErrNotPending        = newError(KindPrecondition, "not_pending", "event is not pending")
	ErrEventNotApproved  = newError(KindPrecondition, "event_not_approved", "event is not approved")
	ErrEventFull         = newError(KindPrecondition, "event_full", "event is full")
	ErrAlreadyRegistered = newError(KindPrecondition, "already_registered", "already registered for this event")
	ErrNotRegistered     = newError(KindPrecondition, "not_registered", "not registered for this event")
	ErrEmailTaken        = newError(KindPrecondition, "email_taken", "email already in use")
	ErrOwnsEvents        = newError(KindPrecondition, "owns_events", "user still owns events")
)

// Not found.
var (
	ErrEventNotFound = newError(KindNotFound, "event_not_found", "event not found")
	ErrUserNotFound  = newError(KindNotFound, "user_not_found", "user not found")
)

// ValidationError returns a validation rejection with a field-level message.
func ValidationError(format string, args ...any) error {
	return newError(KindValidation, ErrValidation.Code, fmt.Sprintf(format, args...))
}
