package echo

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	attend "go.workpoint.io/attend"
	"go.workpoint.io/attend/domain"
	apierr "go.workpoint.io/attend/errors"
	"go.workpoint.io/attend/internal/audit"
	"go.workpoint.io/attend/middleware"
)

// RequestLeaveHandler files a leave request for the caller.
func (a *API) RequestLeaveHandler(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
	}

	var body leaveRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("malformed body"))
	}
	typ := domain.LeaveType(body.Type)
	if typ != domain.LeaveTypeAnnual && typ != domain.LeaveTypeSick && typ != domain.LeaveTypeUnpaid {
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("unknown leave type"))
	}
	from, err := time.Parse("2006-01-02", body.From)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("invalid from date"))
	}
	to, err := time.Parse("2006-01-02", body.To)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("invalid to date"))
	}

	req, err := a.leaves.Request(c.Request().Context(), claims.UserID, typ, from, to, body.Reason)
	if err != nil {
		switch {
		case errors.Is(err, attend.ErrInsufficientDays):
			return c.JSON(http.StatusUnprocessableEntity, apierr.NewInvalidRequest("Insufficient leave allowance"))
		default:
			log.Error().Err(err).Msg("leave request failed")
			return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Leave request failed"))
		}
	}
	return c.JSON(http.StatusCreated, toLeaveResponse(req))
}

// ListLeavesHandler returns the caller's own requests.
func (a *API) ListLeavesHandler(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
	}

	reqs, err := a.leaves.ListMine(c.Request().Context(), claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("leave listing failed")
		return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Listing failed"))
	}
	out := make([]leaveResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toLeaveResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

// LeaveBalanceHandler returns the caller's remaining annual allowance for
// ?year= (defaults to the current year).
func (a *API) LeaveBalanceHandler(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
	}

	year := time.Now().UTC().Year()
	if y := c.QueryParam("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("invalid year"))
		}
		year = parsed
	}

	remaining, err := a.leaves.Remaining(c.Request().Context(), claims.UserID, year)
	if err != nil {
		log.Error().Err(err).Msg("leave balance failed")
		return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Balance lookup failed"))
	}
	return c.JSON(http.StatusOK, balanceResponse{Year: year, Allowance: a.allowance, Remaining: remaining})
}

// PendingLeavesHandler returns the admin decision queue.
func (a *API) PendingLeavesHandler(c echo.Context) error {
	reqs, err := a.leaves.ListPending(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("pending leave listing failed")
		return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Listing failed"))
	}
	out := make([]leaveResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toLeaveResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

// DecideLeaveHandler approves or rejects a pending request.
func (a *API) DecideLeaveHandler(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apierr.NewInvalidToken())
	}

	var body leaveDecisionBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("malformed body"))
	}

	req, err := a.leaves.Decide(c.Request().Context(), c.Param("id"), claims.UserID, body.Approve)
	if err != nil {
		audit.Log(audit.ActionLeaveDecision, claims.UserID, c.Param("id"), false, err)
		switch {
		case errors.Is(err, domain.ErrLeaveNotFound):
			return c.JSON(http.StatusNotFound, apierr.NewNotFound("Leave request not found"))
		case errors.Is(err, attend.ErrAlreadyDecided):
			return c.JSON(http.StatusConflict, apierr.NewConflict("Leave request already decided"))
		default:
			log.Error().Err(err).Msg("leave decision failed")
			return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Decision failed"))
		}
	}
	audit.Log(audit.ActionLeaveDecision, claims.UserID, req.ID, true, nil)
	return c.JSON(http.StatusOK, toLeaveResponse(req))
}
