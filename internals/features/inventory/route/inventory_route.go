package route

import (
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/constants"
	"edugest_backend/internals/features/inventory/controller"
	"edugest_backend/internals/features/inventory/service"
	"edugest_backend/internals/middlewares"
	authMw "edugest_backend/internals/middlewares/auth"
	"edugest_backend/internals/state"
)

func InventoryRoutes(api fiber.Router, ctl *state.Controller, scanner *service.ScanService) {
	h := controller.NewInventoryController(ctl, scanner)

	g := api.Group("/inventory", authMw.RequireSection(constants.SectionInventory))
	g.Get("/", h.List)
	g.Get("/export", h.Export)
	g.Post("/documents", h.CreateDocument)
	g.Get("/documents", h.ListDocuments)
	g.Get("/documents/:ref", h.GetDocument)
	g.Delete("/documents/:ref", h.ReverseDocument)
	g.Delete("/items/:id", h.DeleteItem)
	g.Post("/scan", middlewares.ScanRateLimiter(), h.Scan)
}
