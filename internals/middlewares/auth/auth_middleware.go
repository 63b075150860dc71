// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	authService "edugest_backend/internals/features/users/auth/service"
	helper "edugest_backend/internals/helpers"
	"edugest_backend/internals/state"
)

// AuthMiddleware: Bearer/cookie → verifikasi JWT → user masih ada → simpan klaim ke Locals
func AuthMiddleware(svc *authService.AuthService, ctl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token tidak ditemukan")
		}

		claims, err := svc.ParseToken(tokenString)
		switch {
		case errors.Is(err, authService.ErrMissingSecret):
			log.Println("[ERROR] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		case errors.Is(err, authService.ErrTokenRevoked):
			log.Println("[WARNING] Token ditemukan di blacklist")
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		case err != nil:
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token invalid atau expired")
		}

		// user bisa sudah dihapus setelah token terbit
		u, ok := ctl.FindUser(claims.UserID)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
		}

		helper.SetRawAccessToken(c, tokenString)
		c.Locals(helper.LocUserID, u.ID)
		c.Locals(helper.LocUserName, u.Username)
		c.Locals(helper.LocRole, strings.ToUpper(string(u.Role)))
		return c.Next()
	}
}
