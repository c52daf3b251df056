package routes

import (
	"kehadiran-backend/internal/handler"
	"kehadiran-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, deps Dependencies) {
	hdl := handler.NewDashboardHandler(deps.Dashboard)

	api := app.Group("/api/admin/dashboard", middleware.Auth(deps.Tokens), middleware.AdminOnly)
	api.Get("/", hdl.GetStats)
}

func SetupAdminRoutes(app *fiber.App, deps Dependencies) {
	adminHdl := handler.NewAdminHandler(deps.Staff, deps.Attendance, deps.Settings)
	reportHdl := handler.NewReportHandler(deps.Report)
	syncHdl := handler.NewSyncHandler(deps.Syncer)

	admin := app.Group("/api/admin", middleware.Auth(deps.Tokens), middleware.AdminOnly)
	admin.Get("/riwayat", adminHdl.GetAllHistory)
	admin.Get("/laporan", reportHdl.GetLaporan) // ?format=xlsx untuk Excel
	admin.Put("/pegawai/:email", adminHdl.UpdatePegawai)
	admin.Delete("/pegawai/:email", adminHdl.DeletePegawai)
	admin.Get("/pengaturan", adminHdl.GetPengaturan)
	admin.Put("/pengaturan", adminHdl.SavePengaturan)
	admin.Post("/sync", syncHdl.Sync)
}

func SetupHariLiburRoutes(app *fiber.App, deps Dependencies) {
	hdl := handler.NewHariLiburHandler(deps.Holidays, deps.Location)

	// Semua pegawai boleh melihat hari libur mendatang
	app.Get("/api/hari-libur/upcoming", middleware.Auth(deps.Tokens), hdl.GetUpcoming)

	api := app.Group("/api/admin/hari-libur", middleware.Auth(deps.Tokens), middleware.AdminOnly)
	api.Get("/", hdl.GetAll)
	api.Post("/", hdl.Create)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
}
