package response

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"usercenter/internal/apperr"
)

// Envelope is the canonical response body for every endpoint, success or not.
type Envelope struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// OK writes a success envelope with HTTP 200.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{
		Code:      apperr.CodeSuccess,
		Message:   "ok",
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Translates typed business errors to their envelope code and HTTP status.
//   - Maps echo's own errors (bind failures, unknown routes) into the envelope.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, msg := resolveError(err, log, c)
		_ = c.JSON(status, Envelope{
			Code:      code,
			Message:   msg,
			Data:      nil,
			Timestamp: time.Now().UnixMilli(),
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (status, code int, msg string) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Code, appErr.Message
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			return he.Code, apperr.CodeNotFound, "resource not found"
		case http.StatusMethodNotAllowed, http.StatusBadRequest, http.StatusUnsupportedMediaType:
			return he.Code, apperr.CodeParamsError, fmt.Sprintf("%v", he.Message)
		case http.StatusUnauthorized:
			return he.Code, apperr.CodeNotLogin, fmt.Sprintf("%v", he.Message)
		case http.StatusForbidden:
			return he.Code, apperr.CodeNoAuth, fmt.Sprintf("%v", he.Message)
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, apperr.CodeSystemError, "internal server error"
}
