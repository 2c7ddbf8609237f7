package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/clinic-api/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - a user must be present (presence proves the middleware ran).
//   - a specialist account requires a non-empty specialist id; without it the
//     session is structurally valid but operationally unusable — reject with 401.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get("user").(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
	}

	if user.Role == domain.RoleSpecialist && user.SpecialistID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "account missing specialist identity")
	}

	return user, nil
}
