package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorHandler returns an echo.HTTPErrorHandler that maps the error taxonomy
// onto HTTP status categories:
//
//	ValidationError     → 400 {"errors": {field: [messages]}}
//	AuthenticationError → 401 {"detail": msg}
//	NotFoundError       → 404 {"detail": msg}
//	echo.HTTPError      → its status, {"detail": msg}
//	anything else       → 500 {"detail": "internal server error"} (logged)
//
// Errors are never retried; every failure surfaces on the request that
// caused it.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			valErr  *ValidationError
			authErr *AuthenticationError
			nfErr   *NotFoundError
			httpErr *echo.HTTPError
		)

		switch {
		case errors.As(err, &valErr):
			err = c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": valErr.Fields})
		case errors.As(err, &authErr):
			err = c.JSON(http.StatusUnauthorized, map[string]string{"detail": authErr.Detail})
		case errors.As(err, &nfErr):
			err = c.JSON(http.StatusNotFound, map[string]string{"detail": nfErr.Error()})
		case errors.As(err, &httpErr):
			detail, ok := httpErr.Message.(string)
			if !ok {
				detail = http.StatusText(httpErr.Code)
			}
			err = c.JSON(httpErr.Code, map[string]string{"detail": detail})
		default:
			rid, _ := c.Get("request_id").(string)
			logger.Error().Err(err).
				Str("request_id", rid).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
			err = c.JSON(http.StatusInternalServerError, map[string]string{"detail": "internal server error"})
		}

		if err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}
