// Package respond implements the uniform response envelope. Every body has
// the shape {status, code, message, data} and the HTTP status code always
// equals the envelope code.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dentacare/dentacare/internal/platform/apperr"
)

// Envelope is the uniform response body.
type Envelope struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// JSON writes a success envelope with the given status code.
func JSON(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Envelope{Status: "success", Code: code, Message: message, Data: data})
}

// OK writes a 200 success envelope.
func OK(c echo.Context, message string, data interface{}) error {
	return JSON(c, http.StatusOK, message, data)
}

// Created writes a 201 success envelope.
func Created(c echo.Context, message string, data interface{}) error {
	return JSON(c, http.StatusCreated, message, data)
}

// ErrorHandler returns an echo.HTTPErrorHandler that maps any error onto the
// envelope. Taxonomy errors keep their kind's status and public message;
// everything else (including echo's own routing errors) is passed through
// with its status, and unknown faults become 500 with a stable message.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"

		switch e := err.(type) {
		case *echo.HTTPError:
			code = e.Code
			if s, ok := e.Message.(string); ok {
				message = s
			} else {
				message = http.StatusText(code)
			}
		default:
			kind := apperr.KindOf(err)
			code = kind.Status()
			message = apperr.PublicMessage(err)
		}

		if code >= http.StatusInternalServerError {
			logger.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, Envelope{Status: "error", Code: code, Message: message, Data: nil})
	}
}
