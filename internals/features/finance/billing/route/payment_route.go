package route

import (
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/constants"
	"edugest_backend/internals/features/finance/billing/controller"
	billing "edugest_backend/internals/features/finance/billing/service"
	authMw "edugest_backend/internals/middlewares/auth"
	"edugest_backend/internals/state"
)

func PaymentRoutes(api fiber.Router, ctl *state.Controller, memo *billing.Memo) {
	h := controller.NewPaymentController(ctl, memo)

	g := api.Group("/payments", authMw.RequireSection(constants.SectionPayments))
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/overview", h.Overview)
	g.Get("/working-days", h.WorkingDays)
	g.Get("/export", h.Export)
	g.Get("/statement/:student_id", h.Statement)
	g.Get("/suggest/:student_id", h.Suggest)
	g.Get("/:id/receipt", h.Receipt)
}
