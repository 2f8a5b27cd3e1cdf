package api

import (
	"checkout-service/internal/entity"
	"checkout-service/internal/repository"
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

type OwnerService interface {
	ListOwnerNotifications(ctx context.Context, unreadOnly bool, limit int) ([]entity.OwnerNotification, error)
	SetOwnerNotificationRead(ctx context.Context, id string, read bool) error
}

type OwnerHandler struct {
	ownerService OwnerService
}

func NewOwnerHandler(ownerService OwnerService) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService}
}

// ListNotifications lists ledger entries --> GET /owner/notifications?unread=true&limit=20
func (h *OwnerHandler) ListNotifications(c echo.Context) error {
	unreadOnly := c.QueryParam("unread") == "true"

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(400, map[string]string{"error": "Invalid limit"})
		}
		limit = n
	}

	notifications, err := h.ownerService.ListOwnerNotifications(c.Request().Context(), unreadOnly, limit)
	if err != nil {
		return c.JSON(500, map[string]string{"error": "Failed to list notifications"})
	}

	return c.JSON(200, notifications)
}

// SetRead toggles the read flag --> PUT /owner/notifications/:id/read
func (h *OwnerHandler) SetRead(c echo.Context) error {
	body := struct {
		IsRead *bool `json:"is_read"`
	}{}
	if err := c.Bind(&body); err != nil || body.IsRead == nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	err := h.ownerService.SetOwnerNotificationRead(c.Request().Context(), c.Param("id"), *body.IsRead)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(404, map[string]string{"error": "Notification not found"})
		}
		return c.JSON(500, map[string]string{"error": "Failed to update notification"})
	}

	return c.JSON(200, map[string]interface{}{"id": c.Param("id"), "is_read": *body.IsRead})
}
