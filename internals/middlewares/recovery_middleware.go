package middlewares

import (
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware: panic di handler → 500 lewat ErrorHandler app, stack dicatat ke log
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			rid, _ := c.Locals("requestid").(string)
			log.Printf("[PANIC] %s %s rid=%s: %v\n%s", c.Method(), c.OriginalURL(), rid, e, debug.Stack())
		},
	})
}
