package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openboard/board-api/internal/api/metrics"
	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
	"github.com/openboard/board-api/internal/pkg/token"
)

// PrincipalKey is the echo context key under which Auth stores the resolved
// principal.
const PrincipalKey = "principal"

const bearerScheme = "Bearer"

// Auth verifies the Authorization header and attaches a domain.Principal to
// the context. A request without the header passes through unauthenticated;
// routes that need identity fail later at principal resolution. A present
// but invalid header or token short-circuits with 401 before the handler.
func Auth(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 {
				return reject(c, "malformed authorization header")
			}
			if parts[0] != bearerScheme {
				return reject(c, "unsupported authorization scheme")
			}

			email, err := codec.ExtractEmail(parts[1])
			if err != nil {
				return reject(c, tokenFailureReason(err))
			}

			user, err := users.FindByEmail(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, domain.ErrEmailNotFound) {
					return reject(c, "unknown token subject")
				}
				return err
			}

			c.Set(PrincipalKey, domain.Principal{
				ID:       user.ID,
				Email:    user.Email,
				Username: user.Username,
				Role:     user.Role,
			})
			return next(c)
		}
	}
}

// Principal returns the principal attached by Auth, if any.
func Principal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	return p, ok
}

func reject(c echo.Context, reason string) error {
	metrics.AuthFailuresTotal.WithLabelValues(metricReason(reason)).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, reason)
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, token.ErrTokenExpired):
		return "token is expired"
	case errors.Is(err, token.ErrSignatureInvalid):
		return "token signature is invalid"
	case errors.Is(err, token.ErrTokenUnsupported):
		return "token is unsupported"
	case errors.Is(err, token.ErrMissingEmailClaim):
		return "token is missing the email claim"
	default:
		return "token is malformed"
	}
}

func metricReason(reason string) string {
	return strings.ReplaceAll(reason, " ", "_")
}
