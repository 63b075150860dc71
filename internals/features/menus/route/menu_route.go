package route

import (
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/constants"
	inventory "edugest_backend/internals/features/inventory/service"
	"edugest_backend/internals/features/menus/controller"
	authMw "edugest_backend/internals/middlewares/auth"
	"edugest_backend/internals/state"
)

func MenuRoutes(api fiber.Router, ctl *state.Controller, scanner *inventory.ScanService) {
	h := controller.NewMenuController(ctl, scanner)

	g := api.Group("/menus", authMw.RequireSection(constants.SectionMenu))
	g.Get("/", h.List)
	g.Delete("/", h.Clear)
	g.Get("/:date", h.Get)
	g.Put("/:date", h.Save)
	g.Delete("/:date", h.Delete)
	g.Get("/:date/status", h.Status)
	g.Post("/:date/copy", h.Copy)
	g.Post("/:date/plan", h.Plan)
	g.Post("/:date/consumption", h.Consumption)
	g.Post("/:date/suggest", h.Suggest)
}
