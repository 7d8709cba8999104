package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JavierAQR/backend-luaspets/internal/service"
)

type PetHandler struct {
	Svc *service.PetService
}

func (h *PetHandler) CreatePet(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req service.PetInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pet, err := h.Svc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, pet)
}

func (h *PetHandler) GetMyPets(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}

	pets, err := h.Svc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pets)
}

func (h *PetHandler) GetPet(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}
	petID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	pet, err := h.Svc.GetByID(c.Request().Context(), userID, GetRole(c), petID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pet)
}

func (h *PetHandler) UpdatePet(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}
	petID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req service.PetInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pet, err := h.Svc.Update(c.Request().Context(), userID, petID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pet)
}

func (h *PetHandler) DeletePet(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}
	petID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), userID, GetRole(c), petID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
