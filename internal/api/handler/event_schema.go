package handler

import "github.com/communityhub/events-api/internal/core/domain"

// Any status sent on create is ignored; new events are always pending.
type createEventRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Date        string  `json:"date"        validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time"        validate:"required,datetime=15:04"`
	Location    string  `json:"location"    validate:"required,max=200"`
	Capacity    *int    `json:"capacity"    validate:"omitempty,min=0"`
	ImageURL    *string `json:"image_url"   validate:"omitempty,url"`
}

// updateEventRequest is a partial update: only fields present in the body
// are applied, and capacity or image_url sent as null clear the field.
// Status is checked by the service because the rule depends on the caller's
// role.
type updateEventRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Date        *string `json:"date"        validate:"omitempty,datetime=2006-01-02"`
	Time        *string `json:"time"        validate:"omitempty,datetime=15:04"`
	Location    *string `json:"location"    validate:"omitempty,max=200"`
	Capacity    domain.Optional[int]    `json:"capacity"    validate:"omitempty,min=0" swaggertype:"integer"`
	ImageURL    domain.Optional[string] `json:"image_url"   validate:"omitempty,url" swaggertype:"string"`
	Status      *string                 `json:"status"`
}

func (r updateEventRequest) patch() domain.EventPatch {
	p := domain.EventPatch{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		Capacity:    r.Capacity,
		ImageURL:    r.ImageURL,
	}
	if r.Status != nil {
		s := domain.EventStatus(*r.Status)
		p.Status = &s
	}
	return p
}

type eventListResponse struct {
	Events []*domain.Event `json:"events"`
	Count  int             `json:"count"`
}

func newEventList(events []*domain.Event) eventListResponse {
	if events == nil {
		events = []*domain.Event{}
	}
	return eventListResponse{Events: events, Count: len(events)}
}

type activityListResponse struct {
	Activity []*domain.Activity `json:"activity"`
	Count    int                `json:"count"`
}
