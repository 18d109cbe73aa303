package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openboard/board-api/internal/api/middleware"
	"github.com/openboard/board-api/internal/core/domain"
)

// ctxPrincipal resolves the principal attached by the auth middleware.
// The middleware passes requests without an Authorization header through,
// so routes that need identity enforce it here: no principal means the
// caller never presented a valid token.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return p, nil
}

// bearerToken returns the raw token segment of the Authorization header.
// The auth middleware has already validated the two-segment Bearer shape on
// any request that reaches a protected handler.
func bearerToken(c echo.Context) (string, error) {
	parts := strings.Fields(c.Request().Header.Get("Authorization"))
	if len(parts) != 2 {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
	}
	return parts[1], nil
}
