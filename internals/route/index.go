// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	attendanceRoute "edugest_backend/internals/features/attendance/route"
	paymentRoute "edugest_backend/internals/features/finance/billing/route"
	billing "edugest_backend/internals/features/finance/billing/service"
	inventoryRoute "edugest_backend/internals/features/inventory/route"
	inventory "edugest_backend/internals/features/inventory/service"
	menuRoute "edugest_backend/internals/features/menus/route"
	reportRoute "edugest_backend/internals/features/reports/route"
	studentRoute "edugest_backend/internals/features/students/route"
	backup "edugest_backend/internals/features/system/backup/service"
	settingsRoute "edugest_backend/internals/features/system/settings/route"
	authRoute "edugest_backend/internals/features/users/auth/route"
	authService "edugest_backend/internals/features/users/auth/service"
	authMw "edugest_backend/internals/middlewares/auth"
	"edugest_backend/internals/state"
)

var startTime time.Time

// Deps: semua dependency yang dipakai route group
type Deps struct {
	Ctl     *state.Controller
	Auth    *authService.AuthService
	Memo    *billing.Memo
	Scanner *inventory.ScanService
	Backup  *backup.Service
	// Ping dipakai /health; nil = selalu sehat
	Ping func() error
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d.Ping)

	api := app.Group("/api")

	// ===================== AUTH (login publik) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(api, d.Auth)

	// ===================== PRIVATE (JWT + section) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := api.Group("", authMw.AuthMiddleware(d.Auth, d.Ctl))

	log.Println("[INFO] Mounting Dashboard & Report routes...")
	reportRoute.ReportRoutes(private, d.Ctl)

	log.Println("[INFO] Mounting Student routes...")
	studentRoute.StudentRoutes(private, d.Ctl)

	log.Println("[INFO] Mounting Attendance routes...")
	attendanceRoute.AttendanceRoutes(private, d.Ctl)

	log.Println("[INFO] Mounting Payment routes...")
	paymentRoute.PaymentRoutes(private, d.Ctl, d.Memo)

	log.Println("[INFO] Mounting Inventory routes...")
	inventoryRoute.InventoryRoutes(private, d.Ctl, d.Scanner)

	log.Println("[INFO] Mounting Menu routes...")
	menuRoute.MenuRoutes(private, d.Ctl, d.Scanner)

	log.Println("[INFO] Mounting Settings routes...")
	settingsRoute.SettingsRoutes(private, d.Ctl, d.Backup)
}
