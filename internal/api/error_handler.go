package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/communityhub/events-api/internal/api/handler"
	"github.com/communityhub/events-api/internal/core/domain"
)

var kindStatus = map[domain.ErrorKind]int{
	domain.KindAuthentication: http.StatusUnauthorized,
	domain.KindAuthorization:  http.StatusForbidden,
	domain.KindValidation:     http.StatusBadRequest,
	domain.KindPrecondition:   http.StatusConflict,
	domain.KindNotFound:       http.StatusNotFound,
}

// NewHTTPErrorHandler renders domain rejections with their stable code and
// hides everything else behind a 500. Unexpected errors are logged and sent
// to Sentry when a hub is bound to the request.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	var de *domain.Error
	if errors.As(err, &de) && de.Kind != domain.KindInternal {
		if errors.Is(de, domain.ErrUnauthenticated) {
			return http.StatusUnauthorized, handler.ErrorResponse{Error: de.Message, Code: de.Code}
		}
		if status, ok := kindStatus[de.Kind]; ok {
			return status, handler.ErrorResponse{Error: de.Message, Code: de.Code}
		}
	}

	// Router errors (unknown route, wrong method, oversized body).
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, handler.ErrorResponse{Error: msg, Code: statusCode(he.Code)}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("path", c.Path())
			hub.CaptureException(err)
		})
	}

	return http.StatusInternalServerError, handler.ErrorResponse{Error: "internal server error", Code: "internal"}
}

// statusCode turns "Method Not Allowed" into "method_not_allowed".
func statusCode(status int) string {
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}
