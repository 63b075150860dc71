// helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Simpan raw JWT di Locals dari middleware
const (
	LocRawToken = "raw_token"
	LocUserID   = "user_id"
	LocUserName = "user_name"
	LocRole     = "role"
)

// GetRawAccessToken mengembalikan access token dari:
// 1) Locals("raw_token") yang diset middleware
// 2) Authorization header "Bearer <token>"
// 3) cookie "access_token"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}

// Ambil user_id dari c.Locals("user_id"); 401 kalau belum login.
func GetUserIDFromToken(c *fiber.Ctx) (string, error) {
	v, _ := c.Locals(LocUserID).(string)
	if strings.TrimSpace(v) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	return v, nil
}

func GetRoleFromToken(c *fiber.Ctx) string {
	v, _ := c.Locals(LocRole).(string)
	return v
}
