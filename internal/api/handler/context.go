package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/Sakura-Echo/nwpu-mandarin/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Session middleware and
// fast-fails before any service call: a non-empty user id proves the
// middleware ran on this route.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(mw.ContextUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	role, _ = c.Get(mw.ContextRole).(string)
	return userID, role, nil
}
