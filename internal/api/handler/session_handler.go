package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/core/ports"
)

// SessionHandler exposes the role router: page layouts and role transitions.
type SessionHandler struct {
	router   ports.RoleRouter
	sessions ports.SessionStore
}

func NewSessionHandler(router ports.RoleRouter, sessions ports.SessionStore) *SessionHandler {
	return &SessionHandler{router: router, sessions: sessions}
}

// Layout handles GET /v1/layout.
//
// @Summary      Resolve the layout of a page for the current session
// @Description  Visiting the landing page resets the session. A privileged role without a token is reset and a redirect is returned.
// @Tags         session
// @Produce      json
// @Param        path  query     string  false  "Page path, e.g. /admin/adminDashboard"
// @Success      200   {object}  domain.Layout
// @Failure      401   {object}  errorResponse
// @Router       /v1/layout [get]
func (h *SessionHandler) Layout(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	layout, err := h.router.Resolve(c.Request().Context(), sid, c.QueryParam("path"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, layout)
}

// SelectRole handles POST /v1/session/role. A privileged role can only be
// reselected by a session that already holds it with a token.
//
// @Summary      Switch the session to a role
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      selectRoleRequest  true  "Target role"
// @Success      200   {object}  navigationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/session/role [post]
func (h *SessionHandler) SelectRole(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	var req selectRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	target, err := h.router.SelectRole(c.Request().Context(), sid, domain.ParseRole(req.Role), "")
	if err != nil {
		if errors.Is(err, domain.ErrTokenRequired) {
			return echo.NewHTTPError(http.StatusUnauthorized, domain.NoticeSessionExpired)
		}
		return err
	}
	return c.JSON(http.StatusOK, navigationResponse{Target: target})
}

// Logout handles POST /v1/session/logout. A logged-in patient drops back to
// the patient role; everyone else returns to the landing page anonymous.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  navigationResponse
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	role, err := h.sessions.Role(ctx, sid)
	if err != nil {
		return err
	}

	var target string
	if role == domain.RoleLoggedPatient {
		target, err = h.router.LogoutPatient(ctx, sid)
	} else {
		target, err = h.router.Logout(ctx, sid)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, navigationResponse{Target: target})
}

// Home handles GET /v1/session/home.
//
// @Summary      Dashboard of the current role
// @Tags         session
// @Produce      json
// @Success      200  {object}  navigationResponse
// @Router       /v1/session/home [get]
func (h *SessionHandler) Home(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	target, err := h.router.Home(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, navigationResponse{Target: target})
}
