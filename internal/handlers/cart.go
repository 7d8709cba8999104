package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JavierAQR/backend-luaspets/internal/events"
	"github.com/JavierAQR/backend-luaspets/internal/logging"
	"github.com/JavierAQR/backend-luaspets/internal/service"
)

type CartHandler struct {
	Svc      *service.CartService
	Producer *events.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.GetMyCart(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.Svc.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		l.Warn("add_item_error", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, map[string]any{
		"type":       "cart_item_added",
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	userID, err := GetID(c)
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.UpdateItem(ctx, userID, itemID, req.Quantity)
	if err != nil {
		l.Warn("update_item_error", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, map[string]any{
		"type":     "cart_item_updated",
		"user_id":  userID,
		"item_id":  itemID,
		"quantity": req.Quantity,
	})

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	cart, err := h.Svc.RemoveItem(c.Request().Context(), userID, itemID)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, map[string]any{
		"type":    "cart_item_removed",
		"user_id": userID,
		"item_id": itemID,
	})

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := GetID(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.ClearCart(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, map[string]any{
		"type":    "cart_cleared",
		"user_id": userID,
	})

	return c.JSON(http.StatusOK, cart)
}
