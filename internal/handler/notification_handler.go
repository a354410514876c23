package handler

import (
	"go-campus-events/internal/service"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Send broadcasts {title, message, timestamp} to every WebSocket client
// POST /api/notifications/send
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var req service.NotificationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.notificationService.Send(c.UserContext(), &req); err != nil {
		return fail(c, err, "Notification")
	}
	return message(c, "Notification broadcasted successfully.")
}
