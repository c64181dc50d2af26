package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/agency-platform/internal/api/metrics"
	"github.com/agencydesk/agency-platform/internal/core/ports"
)

// Auth authenticates the bearer token and injects the resolved user into
// context. Every failure mode (malformed token, bad signature, expiry,
// revocation, deleted subject) collapses into the same 401 so a caller
// cannot probe which check rejected it.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.Authenticate(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user", user)
			c.Set("user_id", user.ID)
			c.Set("role", user.Role)
			c.Set("token", strings.TrimSpace(parts[1]))

			return next(c)
		}
	}
}
