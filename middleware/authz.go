package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "go.workpoint.io/attend/errors"
	"go.workpoint.io/attend/domain"
)

// RequireRole gates a route group on the role claim. Runs after Authn.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
			}
			if claims.Role != role {
				return c.JSON(http.StatusForbidden, apierr.NewForbidden("Insufficient privileges"))
			}
			return next(c)
		}
	}
}
