package route

import (
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/constants"
	"edugest_backend/internals/features/reports/controller"
	authMw "edugest_backend/internals/middlewares/auth"
	"edugest_backend/internals/state"
)

func ReportRoutes(api fiber.Router, ctl *state.Controller) {
	h := controller.NewReportController(ctl)

	api.Get("/dashboard", authMw.RequireSection(constants.SectionDashboard), h.Dashboard)

	g := api.Group("/reports", authMw.RequireSection(constants.SectionReports))
	g.Get("/financial", h.Financial)
	g.Get("/attendance", h.Attendance)
	g.Get("/export/:kind", h.Export)
}
