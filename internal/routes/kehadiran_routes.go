package routes

import (
	"kehadiran-backend/internal/handler"
	"kehadiran-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupKehadiranRoutes(app *fiber.App, deps Dependencies) {
	hdl := handler.NewKehadiranHandler(deps.Attendance)

	api := app.Group("/api/kehadiran", middleware.Auth(deps.Tokens))
	api.Get("/today", hdl.Today)
	api.Post("/submit", hdl.Submit)
	api.Post("/clockout", hdl.ClockOut)
	api.Get("/riwayat", hdl.GetHistory)
	api.Get("/durasi", hdl.Durasi) // SSE
	api.Post("/cek-lokasi", hdl.CekLokasi)
}

func SetupAlertRoutes(app *fiber.App, deps Dependencies) {
	hdl := handler.NewAlertHandler(deps.Inbox)
	app.Get("/api/alerts", middleware.Auth(deps.Tokens), hdl.Drain)
}
