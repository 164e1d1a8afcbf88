package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"go.workpoint.io/attend/domain"
	apierr "go.workpoint.io/attend/errors"
	"go.workpoint.io/attend/internal/audit"
	"go.workpoint.io/attend/middleware"
)

// CreateUserHandler provisions an employee or admin account.
func (a *API) CreateUserHandler(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	actor := ""
	if claims != nil {
		actor = claims.UserID
	}

	var body createUserBody
	if err := c.Bind(&body); err != nil || body.Email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest("email and password are required"))
	}
	role := domain.RoleEmployee
	if body.Role != "" {
		role = domain.Role(body.Role)
	}

	user, err := a.users.Register(c.Request().Context(), body.Email, body.Password, body.Name, role)
	if err != nil {
		audit.Log(audit.ActionUserCreate, actor, body.Email, false, err)
		if errors.Is(err, domain.ErrDuplicate) {
			return c.JSON(http.StatusConflict, apierr.NewConflict("Email already registered"))
		}
		log.Error().Err(err).Msg("user creation failed")
		return c.JSON(http.StatusBadRequest, apierr.NewInvalidRequest(err.Error()))
	}

	audit.Log(audit.ActionUserCreate, actor, user.ID, true, nil)
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// GetUserHandler fetches one account.
func (a *API) GetUserHandler(c echo.Context) error {
	user, err := a.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, apierr.NewNotFound("User not found"))
		}
		log.Error().Err(err).Msg("user lookup failed")
		return c.JSON(http.StatusInternalServerError, apierr.NewServerError("Lookup failed"))
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
