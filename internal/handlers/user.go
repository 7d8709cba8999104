package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JavierAQR/backend-luaspets/internal/service"
)

type UserHandler struct {
	Svc *service.UserService
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req service.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUsers is mounted under the admin group.
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.Svc.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}
