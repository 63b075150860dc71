package route

import (
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/constants"
	backupController "edugest_backend/internals/features/system/backup/controller"
	backup "edugest_backend/internals/features/system/backup/service"
	"edugest_backend/internals/features/system/settings/controller"
	authMw "edugest_backend/internals/middlewares/auth"
	"edugest_backend/internals/state"
)

func SettingsRoutes(api fiber.Router, ctl *state.Controller, backupSvc *backup.Service) {
	h := controller.NewSettingsController(ctl)
	bh := backupController.NewBackupController(backupSvc)

	g := api.Group("/settings", authMw.RequireSection(constants.SectionSettings))

	g.Get("/config", h.GetConfig)
	g.Put("/config", h.UpdateConfig)

	g.Post("/groups", h.AddGroup)
	g.Put("/groups/:name", h.RenameGroup)
	g.Delete("/groups/:name", h.DeleteGroup)

	g.Get("/users", h.ListUsers)
	g.Post("/users", h.CreateUser)
	g.Delete("/users/:id", h.DeleteUser)

	g.Get("/backup", bh.Export)
	g.Post("/backup", bh.Import)
	g.Get("/backup/latest", bh.Latest)
	g.Post("/backup/run", bh.Run)
	g.Post("/reset", bh.Reset)
}
