// middlewares/cors.go

package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"edugest_backend/internals/configs"
)

// CorsMiddleware membuat middleware CORS; origin dari CORS_ALLOW_ORIGINS
func CorsMiddleware() fiber.Handler {
	origins := configs.AllowedOrigins
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "Content-Disposition, X-Request-ID",
		AllowCredentials: origins != "*", // fiber menolak wildcard + credentials
	})
}
