package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// ContextKeySessionID is where Session stores the session id on the echo context.
	ContextKeySessionID = "session_id"
	// HeaderSessionID lets non-browser clients carry the session id explicitly.
	HeaderSessionID = "X-Session-ID"
)

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// Session attaches a session id to every request. The id comes from the
// X-Session-ID header, then the session cookie; otherwise a new one is
// issued as an HttpOnly cookie. Ids that are not UUIDs are replaced.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	name := cfg.CookieName
	if name == "" {
		name = "hcms_sid"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sid, ok := validID(c.Request().Header.Get(HeaderSessionID)); ok {
				c.Set(ContextKeySessionID, sid)
				c.Response().Header().Set(HeaderSessionID, sid)
				return next(c)
			}

			if cookie, err := c.Cookie(name); err == nil {
				if sid, ok := validID(cookie.Value); ok {
					c.Set(ContextKeySessionID, sid)
					return next(c)
				}
			}

			sid := uuid.NewString()
			cookie := &http.Cookie{
				Name:     name,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			}
			if cfg.TTL > 0 {
				cookie.MaxAge = int(cfg.TTL.Seconds())
			}
			c.SetCookie(cookie)
			c.Set(ContextKeySessionID, sid)
			return next(c)
		}
	}
}

func validID(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
