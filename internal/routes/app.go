package routes

import (
	"time"

	"kehadiran-backend/internal/cloudsync"
	"kehadiran-backend/internal/handler"
	"kehadiran-backend/internal/monitor"
	"kehadiran-backend/internal/repository"
	"kehadiran-backend/internal/security"
	"kehadiran-backend/internal/store"
	"kehadiran-backend/internal/usecase"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Dependencies dirakit sekali di main lalu dibagi ke semua kelompok route.
type Dependencies struct {
	Tokens     *security.TokenIssuer
	Staff      *usecase.StaffUsecase
	Attendance *usecase.AttendanceUsecase
	Dashboard  *usecase.DashboardUsecase
	Report     *usecase.ReportUsecase
	Settings   *store.SettingsStore
	Holidays   repository.HariLiburRepository
	Syncer     *cloudsync.Syncer
	Inbox      *monitor.Inbox
	Location   *time.Location
}

// NewApp membuat fiber app dengan sonic sebagai codec JSON.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "kehadiran-backend",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: handler.ErrorHandler,
	})

	// Middleware Global
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())
	return app
}

// Setup mendaftarkan semua route.
func Setup(app *fiber.App, deps Dependencies) {
	SetupAuthRoutes(app, deps)
	SetupKehadiranRoutes(app, deps)
	SetupAlertRoutes(app, deps)
	SetupDashboardRoutes(app, deps)
	SetupAdminRoutes(app, deps)
	SetupHariLiburRoutes(app, deps)
}
