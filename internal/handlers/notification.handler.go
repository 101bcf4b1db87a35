package handlers

import (
	"luminaops/internal/app"
	"luminaops/internal/services"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Handler
	notifications *services.NotificationService
}

func NewNotificationHandler(app app.App, router fiber.Router) *NotificationHandler {
	return &NotificationHandler{
		Handler:       newHandler(app, router, "notification_handler"),
		notifications: app.Services.Notifications,
	}
}

func (h *NotificationHandler) Register() {
	h.router.Get("/notifications", h.listNotifications)
}

func (h *NotificationHandler) listNotifications(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"notifications": h.notifications.List()})
}
