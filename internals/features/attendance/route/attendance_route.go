package route

import (
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/constants"
	"edugest_backend/internals/features/attendance/controller"
	authMw "edugest_backend/internals/middlewares/auth"
	"edugest_backend/internals/state"
)

func AttendanceRoutes(api fiber.Router, ctl *state.Controller) {
	h := controller.NewAttendanceController(ctl)

	g := api.Group("/attendance", authMw.RequireSection(constants.SectionAttendance))
	g.Get("/", h.List)
	g.Get("/export", h.Export)
	g.Post("/", h.Record)
	g.Post("/toggle", h.Toggle)
	g.Post("/mark-all", h.MarkAll)
}
