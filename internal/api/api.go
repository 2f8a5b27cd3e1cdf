package api

import (
	"checkout-service/internal/entity"
	"checkout-service/internal/repository"
	"checkout-service/internal/service"
	"context"
	"errors"

	"github.com/labstack/echo/v4"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *entity.CheckoutRequest) (*entity.CheckoutResult, error)
	GetOrder(ctx context.Context, orderNumber string) (*entity.Order, error)
}

type OrderHandler struct {
	orderService OrderService
}

func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder submits a checkout --> POST /orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	req := entity.CheckoutRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	result, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidItem) {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		// storage details stay in the logs
		return c.JSON(500, map[string]string{"error": service.ErrOrderCreation.Error()})
	}

	return c.JSON(200, result)
}

// GetOrder returns one order with its items --> GET /orders/:order_number
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderService.GetOrder(c.Request().Context(), c.Param("order_number"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Order not found"})
		}
		return c.JSON(500, map[string]string{"error": "Failed to load order"})
	}

	return c.JSON(200, order)
}
