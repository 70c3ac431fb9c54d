package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/api/metrics"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
)

// RequireRole enforces exact-match role-based access control. It must run
// after Session: a request that reaches it without a resolved role is
// rejected as unauthenticated, one with the wrong role as forbidden. Roles
// carry no hierarchy, so the match is strict equality.
func RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if role == "" {
				metrics.AuthzDecisionsTotal.WithLabelValues(ports.DecisionUnauthenticated.String()).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}
			if role != requiredRole {
				metrics.AuthzDecisionsTotal.WithLabelValues(ports.DecisionDeny.String()).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			metrics.AuthzDecisionsTotal.WithLabelValues(ports.DecisionAllow.String()).Inc()
			return next(c)
		}
	}
}
