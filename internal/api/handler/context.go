package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/agency-platform/internal/core/domain"
)

// currentUser extracts the user injected by the Auth middleware. Its absence
// means the route was wired without the middleware; reject with 401 rather
// than acting on an anonymous request.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get("user").(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
