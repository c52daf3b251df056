package handler

import (
	"kehadiran-backend/internal/middleware"
	"kehadiran-backend/internal/monitor"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	inbox *monitor.Inbox
}

func NewAlertHandler(inbox *monitor.Inbox) *AlertHandler {
	return &AlertHandler{inbox: inbox}
}

func (h *AlertHandler) Drain(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.inbox.Drain(middleware.CurrentEmail(c))})
}
