package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	attend "go.workpoint.io/attend"
	"go.workpoint.io/attend/domain"
	apierr "go.workpoint.io/attend/errors"
)

// claimsContextKey is where verified access-token claims live in the echo
// context.
const claimsContextKey = "attend_token_claims"

// Authn returns echo middleware that verifies the Bearer access token on
// every request. Verification is stateless: signature and expiry only, no
// store round-trip, and never an automatic refresh.
func Authn(sessions *attend.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
			}

			claims, err := sessions.VerifyAccess(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom retrieves the verified claims placed by Authn.
func ClaimsFrom(c echo.Context) (*domain.TokenClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(*domain.TokenClaims)
	return claims, ok
}
