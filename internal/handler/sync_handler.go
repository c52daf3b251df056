package handler

import (
	"kehadiran-backend/internal/cloudsync"

	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	syncer *cloudsync.Syncer
}

func NewSyncHandler(syncer *cloudsync.Syncer) *SyncHandler {
	return &SyncHandler{syncer: syncer}
}

// Sync menarik feed pegawai lalu kehadiran saat itu juga.
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	roster, attendance := h.syncer.SyncAll(c.UserContext())
	return c.JSON(fiber.Map{"data": fiber.Map{
		"pegawai":   roster,
		"kehadiran": attendance,
	}})
}
