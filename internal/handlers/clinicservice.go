package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JavierAQR/backend-luaspets/internal/service"
)

type ClinicServiceHandler struct {
	Svc *service.ClinicServiceCatalog
}

func (h *ClinicServiceHandler) GetServices(c echo.Context) error {
	services, err := h.Svc.ListActive(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, services)
}

func (h *ClinicServiceHandler) GetService(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	svc, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, svc)
}

func (h *ClinicServiceHandler) CreateService(c echo.Context) error {
	var req service.ClinicServiceInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	svc, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, svc)
}

func (h *ClinicServiceHandler) PatchService(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req service.ClinicServiceInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	svc, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, svc)
}

func (h *ClinicServiceHandler) DeleteService(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
