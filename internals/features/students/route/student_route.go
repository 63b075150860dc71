package route

import (
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/constants"
	"edugest_backend/internals/features/students/controller"
	authMw "edugest_backend/internals/middlewares/auth"
	"edugest_backend/internals/state"
)

func StudentRoutes(api fiber.Router, ctl *state.Controller) {
	h := controller.NewStudentController(ctl)

	g := api.Group("/students", authMw.RequireSection(constants.SectionStudents))
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/export", h.Export)
	g.Get("/template", h.Template)
	g.Post("/import", h.Import)
	g.Get("/:id/ledger", h.Ledger)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
