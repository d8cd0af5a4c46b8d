package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promarket/marketplace-api/internal/core/domain"
	"github.com/promarket/marketplace-api/internal/core/ports"
)

// MeHandler serves the authenticated caller's own identity and navigation.
type MeHandler struct {
	users ports.UserService
}

func NewMeHandler(users ports.UserService) *MeHandler {
	return &MeHandler{users: users}
}

// Me returns the caller's user record, navigation set, and dashboard root.
//
// @Summary      Current session identity
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/me [get]
func (h *MeHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}

	nav, dashboard, err := domain.NavigationFor(user.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "unknown role")
	}

	return c.JSON(http.StatusOK, sessionResponse{
		User:          user,
		Navigation:    nav,
		DashboardPath: dashboard,
	})
}
