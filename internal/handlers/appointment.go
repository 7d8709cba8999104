package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JavierAQR/backend-luaspets/internal/events"
	"github.com/JavierAQR/backend-luaspets/internal/logging"
	"github.com/JavierAQR/backend-luaspets/internal/service"
)

type AppointmentHandler struct {
	Svc      *service.AppointmentService
	Producer *events.Producer
}

func filterFromQuery(c echo.Context) service.AppointmentFilter {
	f := service.AppointmentFilter{Status: c.QueryParam("status")}
	if v := c.QueryParam("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.DateFrom = &t
		}
	}
	if v := c.QueryParam("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.DateTo = &t
		}
	}
	if v := parseIntDefault(c.QueryParam("user_id"), 0); v > 0 {
		f.UserID = uint(v)
	}
	if v := parseIntDefault(c.QueryParam("pet_id"), 0); v > 0 {
		f.PetID = uint(v)
	}
	return f
}

func (h *AppointmentHandler) CreateAppointment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "appointment.create")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req service.AppointmentInput
	if err := c.Bind(&req); err != nil {
		l.Warn("create_appointment_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	appt, err := h.Svc.Create(ctx, userID, req)
	if err != nil {
		l.Warn("create_appointment_error", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicAppointmentEvents, map[string]any{
		"type":           "appointment_created",
		"user_id":        userID,
		"appointment_id": appt.ID,
	})

	return c.JSON(http.StatusCreated, appt)
}

func (h *AppointmentHandler) GetMyAppointments(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}

	appts, err := h.Svc.ListForUser(c.Request().Context(), userID, filterFromQuery(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

// GetAllAppointments is mounted under the admin group.
func (h *AppointmentHandler) GetAllAppointments(c echo.Context) error {
	appts, err := h.Svc.ListAll(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *AppointmentHandler) GetAppointment(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	appt, err := h.Svc.GetByID(c.Request().Context(), userID, GetRole(c), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) CancelAppointment(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	appt, err := h.Svc.Cancel(c.Request().Context(), userID, GetRole(c), id)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicAppointmentEvents, map[string]any{
		"type":           "appointment_cancelled",
		"user_id":        userID,
		"appointment_id": appt.ID,
	})

	return c.JSON(http.StatusOK, appt)
}

// UpdateStatus is the admin transition endpoint.
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	appt, err := h.Svc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicAppointmentEvents, map[string]any{
		"type":           "appointment_status_updated",
		"appointment_id": appt.ID,
		"status":         appt.Status,
	})

	return c.JSON(http.StatusOK, appt)
}
