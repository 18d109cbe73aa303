package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openboard/board-api/internal/core/domain"
)

const errorTimeLayout = "2006-01-02 15:04:05"

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Time       string `json:"time"`
	Status     int    `json:"status"`
	Message    string `json:"message"`
	RequestURI string `json:"requestURI"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope:
//     {"time": ..., "status": ..., "message": ..., "requestURI": ...}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			Time:       time.Now().Format(errorTimeLayout),
			Status:     code,
			Message:    msg,
			RequestURI: c.Request().RequestURI,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (auth middleware rejections, 404 from the router,
	// bind failures, validation wrappers).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrDuplicatedEmail):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrEmailNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrTooManySignInAttempts):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrArticleNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidPermission):
		return http.StatusUnauthorized, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusBadRequest, "unexpected error"
}
