package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/agencydesk/agency-platform/internal/core/domain"
)

// RBAC admits only callers whose role is on the allow list. It must run
// after Auth, which stores the authenticated user on the context; domain
// sentinels flow to the central error handler for the HTTP mapping.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get("user").(*domain.User)
			if !ok {
				return domain.ErrUnauthorized
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
