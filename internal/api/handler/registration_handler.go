package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communityhub/events-api/internal/api/metrics"
	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

type RegistrationHandler struct {
	service ports.RegistrationService
}

func NewRegistrationHandler(service ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// Register handles POST /api/events/:id/register.
//
// @Summary      Register for an approved event
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      201  {object}  domain.Registration
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /api/events/{id}/register [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	reg, err := h.service.Register(c.Request().Context(), c.Param("id"), caller(c))
	countRegistration("registered", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reg)
}

// Cancel handles DELETE /api/events/:id/register.
//
// @Summary      Cancel the caller's registration
// @Tags         registrations
// @Security     BearerAuth
// @Param        id   path  string  true  "Event ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /api/events/{id}/register [delete]
func (h *RegistrationHandler) Cancel(c echo.Context) error {
	err := h.service.Cancel(c.Request().Context(), c.Param("id"), caller(c))
	countRegistration("cancelled", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMine handles GET /api/users/registrations.
//
// @Summary      List the caller's registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  registrationListResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/users/registrations [get]
func (h *RegistrationHandler) ListMine(c echo.Context) error {
	regs, err := h.service.ListMine(c.Request().Context(), caller(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newRegistrationList(regs))
}

// ListForEvent handles GET /api/events/:id/registrations.
//
// @Summary      List an event's attendees
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  registrationListResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/events/{id}/registrations [get]
func (h *RegistrationHandler) ListForEvent(c echo.Context) error {
	regs, err := h.service.ListForEvent(c.Request().Context(), c.Param("id"), caller(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newRegistrationList(regs))
}

// countRegistration records the outcome under its domain code, or
// "error" for failures that are not rejections.
func countRegistration(success string, err error) {
	result := success
	if err != nil {
		result = "error"
		var de *domain.Error
		if errors.As(err, &de) {
			result = de.Code
		}
	}
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
}
