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

// PunchInHandler opens today's attendance record for the caller.
func (a *API) PunchInHandler(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
	}

	att, err := a.attendance.PunchIn(c.Request().Context(), claims.UserID, c.RealIP())
	if err != nil {
		switch {
		case errors.Is(err, attend.ErrIPNotAllowed):
			return c.JSON(http.StatusForbidden, apierr.NewIPNotAllowed())
		case errors.Is(err, attend.ErrAlreadyPunchedIn), errors.Is(err, domain.ErrDuplicate):
			return c.JSON(http.StatusConflict, apierr.NewConflict("Already punched in today"))
		default:
			log.Error().Err(err).Msg("punch-in failed")
			return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Punch-in failed"))
		}
	}
	return c.JSON(http.StatusCreated, toAttendanceResponse(att))
}

// PunchOutHandler closes today's open record.
func (a *API) PunchOutHandler(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
	}

	att, err := a.attendance.PunchOut(c.Request().Context(), claims.UserID, c.RealIP())
	if err != nil {
		switch {
		case errors.Is(err, attend.ErrIPNotAllowed):
			return c.JSON(http.StatusForbidden, apierr.NewIPNotAllowed())
		case errors.Is(err, attend.ErrNotPunchedIn):
			return c.JSON(http.StatusConflict, apierr.NewConflict("No open punch record today"))
		default:
			log.Error().Err(err).Msg("punch-out failed")
			return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Punch-out failed"))
		}
	}
	return c.JSON(http.StatusOK, toAttendanceResponse(att))
}

// TodayHandler returns today's record, open or closed.
func (a *API) TodayHandler(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
	}

	att, err := a.attendance.Today(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrAttendanceNotFound) {
			return c.JSON(http.StatusNotFound, apierr.NewNotFound("No attendance record today"))
		}
		log.Error().Err(err).Msg("attendance lookup failed")
		return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Lookup failed"))
	}
	return c.JSON(http.StatusOK, toAttendanceResponse(att))
}

// MonthHandler lists the caller's records for ?month=2006-01.
func (a *API) MonthHandler(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
	}
	month := c.QueryParam("month")
	if month == "" {
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("month query parameter is required"))
	}

	records, err := a.attendance.Month(c.Request().Context(), claims.UserID, month)
	if err != nil {
		log.Error().Err(err).Str("month", month).Msg("attendance listing failed")
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("Invalid month"))
	}

	out := make([]attendanceResponse, 0, len(records))
	for _, att := range records {
		out = append(out, toAttendanceResponse(att))
	}
	return c.JSON(http.StatusOK, out)
}

// ListAllowedIPsHandler returns the punch allow-list.
func (a *API) ListAllowedIPsHandler(c echo.Context) error {
	ips, err := a.allowlist.List(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("allow-list listing failed")
		return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Listing failed"))
	}
	return c.JSON(http.StatusOK, ips)
}

// AddAllowedIPHandler adds an address to the allow-list.
func (a *API) AddAllowedIPHandler(c echo.Context) error {
	var body allowedIPBody
	if err := c.Bind(&body); err != nil || body.Address == "" {
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("address is required"))
	}
	claims, _ := middleware.ClaimsFrom(c)
	actor := ""
	if claims != nil {
		actor = claims.UserID
	}
	if err := a.allowlist.Add(c.Request().Context(), body.Address, body.Label); err != nil {
		audit.Log(audit.ActionAllowlistEdit, actor, body.Address, false, err)
		log.Error().Err(err).Str("address", body.Address).Msg("allow-list add failed")
		return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Add failed"))
	}
	audit.Log(audit.ActionAllowlistEdit, actor, body.Address, true, nil)
	return c.JSON(http.StatusCreated, map[string]string{"status": "added"})
}

// RemoveAllowedIPHandler removes an address from the allow-list.
func (a *API) RemoveAllowedIPHandler(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	actor := ""
	if claims != nil {
		actor = claims.UserID
	}
	address := c.Param("address")
	if err := a.allowlist.Remove(c.Request().Context(), address); err != nil {
		audit.Log(audit.ActionAllowlistEdit, actor, address, false, err)
		log.Error().Err(err).Str("address", address).Msg("allow-list remove failed")
		return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Remove failed"))
	}
	audit.Log(audit.ActionAllowlistEdit, actor, address, true, nil)
	return c.JSON(http.StatusOK, map[string]string{"status": "removed"})
}
