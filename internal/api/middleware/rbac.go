package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalcms/portal/internal/core/domain"
	"github.com/hospitalcms/portal/internal/core/ports"
)

// ContextKeyRole holds the caller's role once RBAC has let the request through.
const ContextKeyRole = "role"

// RBAC admits a request only when the session's role is one of allowedRoles
// and, for privileged roles, a token is present.
func RBAC(sessions ports.SessionStore, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, _ := c.Get(ContextKeySessionID).(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrMissingSessionID.Error())
			}

			sess, err := sessions.Get(c.Request().Context(), sid)
			if err != nil {
				return err
			}
			if !sess.Valid() {
				return domain.ErrSessionExpired
			}
			if _, ok := allowed[sess.Role]; !ok {
				return domain.ErrForbidden
			}

			c.Set(ContextKeyRole, sess.Role)
			return next(c)
		}
	}
}
