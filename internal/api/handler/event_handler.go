package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communityhub/events-api/internal/api/metrics"
	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

// EventHandler serves the event catalogue and its approval workflow.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// ListApproved handles GET /api/events.
//
// @Summary      List approved events
// @Description  Public catalogue ordered by date and time.
// @Tags         events
// @Produce      json
// @Success      200  {object}  eventListResponse
// @Router       /api/events [get]
func (h *EventHandler) ListApproved(c echo.Context) error {
	events, err := h.service.ListApproved(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newEventList(events))
}

// Get handles GET /api/events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// ListMine handles GET /api/events/mine.
//
// @Summary      List the caller's events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eventListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/events/mine [get]
func (h *EventHandler) ListMine(c echo.Context) error {
	events, err := h.service.ListMine(c.Request().Context(), caller(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newEventList(events))
}

// ListAll handles GET /api/admin/events.
//
// @Summary      List every event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, approved or rejected"
// @Success      200     {object}  eventListResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      403     {object}  ErrorResponse
// @Router       /api/admin/events [get]
func (h *EventHandler) ListAll(c echo.Context) error {
	status := domain.EventStatus(c.QueryParam("status"))
	events, err := h.service.ListAll(c.Request().Context(), caller(c), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newEventList(events))
}

// Create handles POST /api/events.
//
// @Summary      Submit an event for approval
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.service.Create(c.Request().Context(), ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Capacity:    req.Capacity,
		ImageURL:    req.ImageURL,
	}, caller(c))
	if err != nil {
		return err
	}

	metrics.EventTransitionsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, event)
}

// Update handles PUT /api/events/:id.
//
// @Summary      Update an event
// @Description  Partial update. Organizers may edit their own events but never their status.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event ID"
// @Param        body  body      updateEventRequest  true  "Fields to change"
// @Success      200   {object}  domain.Event
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req updateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.service.Update(c.Request().Context(), c.Param("id"), req.patch(), caller(c))
	if err != nil {
		return err
	}

	metrics.EventTransitionsTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /api/events/:id.
//
// @Summary      Delete an event and its registrations
// @Tags         events
// @Security     BearerAuth
// @Param        id   path  string  true  "Event ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), caller(c)); err != nil {
		return err
	}
	metrics.EventTransitionsTotal.WithLabelValues("deleted").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Approve handles PUT /api/events/:id/approve.
//
// @Summary      Approve a pending event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /api/events/{id}/approve [put]
func (h *EventHandler) Approve(c echo.Context) error {
	event, err := h.service.Approve(c.Request().Context(), c.Param("id"), caller(c))
	if err != nil {
		return err
	}
	metrics.EventTransitionsTotal.WithLabelValues("approved").Inc()
	return c.JSON(http.StatusOK, event)
}

// Reject handles PUT /api/events/:id/reject.
//
// @Summary      Reject a pending event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /api/events/{id}/reject [put]
func (h *EventHandler) Reject(c echo.Context) error {
	event, err := h.service.Reject(c.Request().Context(), c.Param("id"), caller(c))
	if err != nil {
		return err
	}
	metrics.EventTransitionsTotal.WithLabelValues("rejected").Inc()
	return c.JSON(http.StatusOK, event)
}

// Activity handles GET /api/admin/events/:id/activity.
//
// @Summary      Event audit trail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  activityListResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/admin/events/{id}/activity [get]
func (h *EventHandler) Activity(c echo.Context) error {
	trail, err := h.service.Activity(c.Request().Context(), c.Param("id"), caller(c))
	if err != nil {
		return err
	}
	if trail == nil {
		trail = []*domain.Activity{}
	}
	return c.JSON(http.StatusOK, activityListResponse{Activity: trail, Count: len(trail)})
}
