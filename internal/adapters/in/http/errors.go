package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// MutationFailedMessage is the only failure text clients see for writes
// rejected by the queue.
const MutationFailedMessage = "could not update order"

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrInconsistentQueueState):
		return http.StatusInternalServerError
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body: " + err.Error(),
	})
}

// mutationFailed answers validation and not-found errors with their text and
// everything else with MutationFailedMessage.
func (s *Server) mutationFailed(ctx echo.Context, err error) error {
	code := statusOf(err)
	message := MutationFailedMessage
	switch code {
	case http.StatusBadRequest, http.StatusNotFound:
		message = err.Error()
	default:
		s.log(ctx, code, err)
	}

	return ctx.JSON(code, servers.Error{Code: int32(code), Message: message})
}

func (s *Server) readFailed(ctx echo.Context, err error) error {
	code := statusOf(err)
	message := err.Error()
	if code >= http.StatusInternalServerError {
		s.log(ctx, code, err)
		message = http.StatusText(code)
	}

	return ctx.JSON(code, servers.Error{Code: int32(code), Message: message})
}

func (s *Server) log(ctx echo.Context, code int, err error) {
	request := ctx.Request()
	level := s.logger.ErrorContext
	if code < http.StatusInternalServerError || code == http.StatusServiceUnavailable {
		level = s.logger.WarnContext
	}
	level(request.Context(), "Request failed",
		"method", request.Method,
		"path", request.URL.Path,
		"status", code,
		"error", err,
	)
}
