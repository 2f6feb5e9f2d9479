package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalcms/portal/internal/api/middleware"
)

// sessionID returns the id attached by the Session middleware and fails fast
// when the route was registered without it.
func sessionID(c echo.Context) (string, error) {
	sid, _ := c.Get(middleware.ContextKeySessionID).(string)
	if sid == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sid, nil
}
