package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JavierAQR/backend-luaspets/internal/events"
	"github.com/JavierAQR/backend-luaspets/internal/logging"
	"github.com/JavierAQR/backend-luaspets/internal/service"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var info service.ShippingInfo
	if err := c.Bind(&info); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrderFromCart(ctx, userID, info)
	if err != nil {
		l.Warn("create_order_error", "error", err)
		return httpError(err)
	}

	l.Info("create_order_success", "order_number", order.OrderNumber)
	publish(c, h.Producer, events.TopicOrderEvents, map[string]any{
		"type":         "order_created",
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_cents":  order.TotalCents,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.GetMyOrders(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrderByID(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Svc.GetOrderByID(c.Request().Context(), userID, orderID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

// GetAllOrders is mounted under the admin group.
func (h *OrderHandler) GetAllOrders(c echo.Context) error {
	orders, err := h.Svc.GetAllOrders(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) CompleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.complete_order")

	userID, err := GetID(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		PaypalOrderID string `json:"paypal_order_id"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("complete_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CompleteOrder(ctx, userID, orderID, req.PaypalOrderID)
	if err != nil {
		l.Warn("complete_order_error", "order_id", orderID, "error", err)
		return httpError(err)
	}

	l.Info("complete_order_success", "order_number", order.OrderNumber)
	publish(c, h.Producer, events.TopicOrderEvents, map[string]any{
		"type":         "order_completed",
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})

	return c.JSON(http.StatusOK, order)
}
