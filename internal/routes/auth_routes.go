package routes

import (
	"kehadiran-backend/internal/handler"
	"kehadiran-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, deps Dependencies) {
	hdl := handler.NewAuthHandler(deps.Staff)
	auth := middleware.Auth(deps.Tokens)

	app.Post("/api/auth/register", hdl.Register)
	app.Post("/api/auth/login", hdl.Login)
	app.Post("/api/auth/logout", auth, hdl.Logout)

	app.Get("/api/profile", auth, hdl.GetProfile)
	app.Put("/api/profile", auth, hdl.UpdateProfile)
	app.Get("/api/pegawai", auth, hdl.Directory)
}
