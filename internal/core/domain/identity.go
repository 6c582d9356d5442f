package domain

import "time"

// Identity is the verified caller, exactly as embedded in the signed claim
// at issuance. Role is not re-read from storage per request.
type Identity struct {
	UserID string
	Role   Role
	Email  string
	Name   string

	TokenID   string
	ExpiresAt time.Time
}
