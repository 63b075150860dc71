package auth

import (
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/constants"
	"edugest_backend/internals/features/kindergarten/model"
	helper "edugest_backend/internals/helpers"
)

// RequireSection: role di Locals harus punya akses ke section
func RequireSection(section constants.Section) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := model.Role(helper.GetRoleFromToken(c))
		if !constants.CanAccess(role, section) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.SectionForbiddenMessage(role, section))
		}
		return c.Next()
	}
}
