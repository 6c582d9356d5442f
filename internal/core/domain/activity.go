package domain

import "time"

// ActivityType names a lifecycle or registration change.
type ActivityType string

const (
	ActivityEventCreated    ActivityType = "event.created"
	ActivityEventUpdated    ActivityType = "event.updated"
	ActivityEventApproved   ActivityType = "event.approved"
	ActivityEventRejected   ActivityType = "event.rejected"
	ActivityEventDeleted    ActivityType = "event.deleted"
	ActivityRegistered      ActivityType = "registration.created"
	ActivityRegistrationCxl ActivityType = "registration.cancelled"
)

// Activity is one entry of an event's audit trail.
type Activity struct {
	ID         string       `json:"id"`
	Type       ActivityType `json:"type"`
	EventID    string       `json:"event_id"`
	ActorID    string       `json:"actor_id"`
	ActorRole  Role         `json:"actor_role"`
	Status     EventStatus  `json:"status,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewActivity builds an activity record for the given actor.
func NewActivity(t ActivityType, eventID string, actor *Identity, status EventStatus, at time.Time) Activity {
	a := Activity{Type: t, EventID: eventID, Status: status, OccurredAt: at}
	if actor != nil {
		a.ActorID = actor.UserID
		a.ActorRole = actor.Role
	}
	return a
}
