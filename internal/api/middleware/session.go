package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
)

// SessionCookie is the cookie carrying the session token. The token is also
// accepted via the X-Session-Token header for non-browser clients.
const (
	SessionCookie = "mandarin_session"
	SessionHeader = "X-Session-Token"
)

// Context keys set by the Session middleware.
const (
	ContextToken  = "session_token"
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// TokenFromRequest extracts the client-presented session token, preferring
// the cookie. Returns "" when the request carries none.
func TokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return c.Request().Header.Get(SessionHeader)
}

// Session resolves the presented token and injects the session identity into
// the echo context. An absent, forged, or expired token is rejected with 401;
// all three are indistinguishable to the client.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			session, err := auth.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if session == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}

			c.Set(ContextToken, token)
			c.Set(ContextUserID, session.UserID)
			c.Set(ContextRole, session.Role)

			return next(c)
		}
	}
}
