package domain

import "time"

// RegistrationStatus is the state of an RSVP. Cancellation removes the row,
// so stored registrations are always active.
type RegistrationStatus string

const RegistrationRegistered RegistrationStatus = "registered"

// Registration joins a user to an approved event.
type Registration struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	EventID   string             `json:"event_id"`
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}
