package route

import (
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/features/users/auth/controller"
	"edugest_backend/internals/features/users/auth/service"
	"edugest_backend/internals/middlewares"
	authMw "edugest_backend/internals/middlewares/auth"
)

// AuthRoutes: login publik, sisanya butuh token
func AuthRoutes(api fiber.Router, svc *service.AuthService) {
	ac := controller.NewAuthController(svc)

	auth := api.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ac.Login)

	mw := authMw.AuthMiddleware(svc, svc.Ctl)
	auth.Post("/logout", mw, ac.Logout)
	auth.Get("/me", mw, ac.Me)
	auth.Get("/me/sections", mw, ac.MySections)
}
