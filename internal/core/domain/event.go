package domain

import "time"

// EventStatus represents the approval state of an event.
type EventStatus string

const (
	StatusPending  EventStatus = "pending"
	StatusApproved EventStatus = "approved"
	StatusRejected EventStatus = "rejected"
)

// validTransitions defines the approval state machine. Approved and rejected
// are final as far as approve/reject are concerned.
var validTransitions = map[EventStatus][]EventStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether an approval decision may move s to next.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Event is the aggregate root owned by an organizer.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        string      `json:"date"` // YYYY-MM-DD
	Time        string      `json:"time"` // HH:MM
	Location    string      `json:"location"`
	OrganizerID string      `json:"organizer_id"`
	Capacity    *int        `json:"capacity"`
	ImageURL    *string     `json:"image_url"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OwnedBy reports whether userID is the event's organizer.
func (e *Event) OwnedBy(userID string) bool {
	return e.OrganizerID == userID
}

// HasRoom reports whether another registration fits given the active count.
func (e *Event) HasRoom(active int64) bool {
	if e.Capacity == nil {
		return true
	}
	return active < int64(*e.Capacity)
}

// EventPatch is a partial update. Nil fields are left untouched. Capacity
// and ImageURL are nullable on the event, so they distinguish an explicit
// null (back to unlimited, image removed) from an absent key.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Location    *string
	Capacity    Optional[int]
	ImageURL    Optional[string]
	Status      *EventStatus
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil && p.Time == nil &&
		p.Location == nil && !p.Capacity.Set && !p.ImageURL.Set && p.Status == nil
}

// Apply copies every present field onto e and stamps UpdatedAt.
func (p EventPatch) Apply(e *Event, at time.Time) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Capacity.Set {
		e.Capacity = clone(p.Capacity.Value)
	}
	if p.ImageURL.Set {
		e.ImageURL = clone(p.ImageURL.Value)
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	e.UpdatedAt = at
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// EventFilter narrows event listings.
type EventFilter struct {
	Status      EventStatus // empty = any
	OrganizerID string      // empty = any
	// ByStartTime orders by (date, time) ascending; otherwise newest first.
	ByStartTime bool
}
