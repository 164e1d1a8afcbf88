// Package echo exposes the attendance service over HTTP.
package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	attend "go.workpoint.io/attend"
	"go.workpoint.io/attend/domain"
	apierr "go.workpoint.io/attend/errors"
	"go.workpoint.io/attend/internal/audit"
	"go.workpoint.io/attend/middleware"
)

// API holds the HTTP surface's service dependencies.
type API struct {
	sessions   *attend.SessionService
	attendance *attend.AttendanceService
	leaves     *attend.LeaveService
	allowlist  *attend.AllowlistService
	users      *attend.UserService
	allowance  int
}

// NewAPI initializes the HTTP API.
func NewAPI(sessions *attend.SessionService, attendance *attend.AttendanceService,
	leaves *attend.LeaveService, allowlist *attend.AllowlistService,
	users *attend.UserService, annualAllowance int,
) *API {
	return &API{
		sessions:   sessions,
		attendance: attendance,
		leaves:     leaves,
		allowlist:  allowlist,
		users:      users,
		allowance:  annualAllowance,
	}
}

// RegisterRoutes mounts all routes. Everything under /attendance and /leaves
// requires a valid access token; /admin additionally requires the admin
// role.
func (a *API) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", a.HealthHandler)

	e.POST("/auth/login", a.LoginHandler)
	e.POST("/auth/refresh", a.RefreshHandler)
	e.POST("/auth/logout", a.LogoutHandler)

	authed := e.Group("", middleware.Authn(a.sessions))
	authed.POST("/attendance/punch-in", a.PunchInHandler)
	authed.POST("/attendance/punch-out", a.PunchOutHandler)
	authed.GET("/attendance/today", a.TodayHandler)
	authed.GET("/attendance", a.MonthHandler)
	authed.POST("/leaves", a.RequestLeaveHandler)
	authed.GET("/leaves", a.ListLeavesHandler)
	authed.GET("/leaves/balance", a.LeaveBalanceHandler)

	admin := authed.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/leaves/pending", a.PendingLeavesHandler)
	admin.POST("/leaves/:id/decision", a.DecideLeaveHandler)
	admin.POST("/users", a.CreateUserHandler)
	admin.GET("/users/:id", a.GetUserHandler)
	admin.POST("/users/:id/revoke-sessions", a.RevokeSessionsHandler)
	admin.POST("/sessions/sweep", a.SweepSessionsHandler)
	admin.GET("/allowed-ips", a.ListAllowedIPsHandler)
	admin.POST("/allowed-ips", a.AddAllowedIPHandler)
	admin.DELETE("/allowed-ips/:address", a.RemoveAllowedIPHandler)
}

// HealthHandler reports liveness.
func (a *API) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// LoginHandler verifies credentials and returns a fresh token pair.
func (a *API) LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("email and password are required"))
	}

	pair, user, err := a.sessions.Login(c.Request().Context(), req.Email, req.Password,
		c.RealIP(), c.Request().UserAgent())
	if err != nil {
		audit.Log(audit.ActionLogin, req.Email, "", false, err)
		switch {
		case errors.Is(err, attend.ErrInvalidCredentials), errors.Is(err, attend.ErrUserInactive):
			return c.JSON(http.StatusUnauthorized, apierr.NewInvalidCredentials())
		default:
			log.Error().Err(err).Msg("login failed")
			return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Login failed"))
		}
	}

	audit.Log(audit.ActionLogin, user.ID, "", true, nil)
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		UserID:       user.ID,
		Name:         user.Name,
		Role:         string(user.Role),
	})
}

// RefreshHandler rotates a refresh token. Past the daily boundary the
// response is forced_logout, a different code than invalid_token, so the
// client can explain why the session ended.
func (a *API) RefreshHandler(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("refresh_token is required"))
	}

	pair, err := a.sessions.Refresh(c.Request().Context(), req.RefreshToken,
		c.RealIP(), c.Request().UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, attend.ErrForcedLogout):
			audit.Log(audit.ActionForcedLogout, "", "", true, nil)
			return c.JSON(http.StatusUnauthorized, apierr.NewForcedLogout())
		case errors.Is(err, attend.ErrInvalidToken):
			return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
		default:
			// Store trouble is retryable and must not read as a revoked
			// session.
			log.Error().Err(err).Msg("refresh failed")
			return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Refresh failed"))
		}
	}
	return c.JSON(http.StatusOK, pair)
}

// LogoutHandler acknowledges unconditionally; revocation is best effort
// because the client is discarding its tokens either way.
func (a *API) LogoutHandler(c echo.Context) error {
	var req logoutRequest
	_ = c.Bind(&req)
	if req.RefreshToken != "" {
		a.sessions.Logout(c.Request().Context(), req.RefreshToken)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
}

// RevokeSessionsHandler force-logs-out one user everywhere.
func (a *API) RevokeSessionsHandler(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	actor := ""
	if claims != nil {
		actor = claims.UserID
	}

	userID := c.Param("id")
	if err := a.sessions.RevokeUser(c.Request().Context(), userID); err != nil {
		audit.Log(audit.ActionRevokeSessions, actor, userID, false, err)
		log.Error().Err(err).Str("user_id", userID).Msg("session revocation failed")
		return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Revocation failed"))
	}
	audit.Log(audit.ActionRevokeSessions, actor, userID, true, nil)
	return c.JSON(http.StatusOK, map[string]string{"status": "revoked"})
}

// SweepSessionsHandler runs the expired-session cleanup sweep.
func (a *API) SweepSessionsHandler(c echo.Context) error {
	n, err := a.sessions.SweepExpired(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("session sweep failed")
		return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Sweep failed"))
	}
	return c.JSON(http.StatusOK, sweepResponse{Deleted: n})
}
