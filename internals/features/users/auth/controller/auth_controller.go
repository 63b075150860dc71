package controller

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/constants"
	kgModel "edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/features/users/auth/dto"
	"edugest_backend/internals/features/users/auth/service"
	helper "edugest_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	Svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := ac.Svc.Login(c.UserContext(), in.Username, in.Password)
	if err != nil {
		log.Println("[ERROR] login:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	switch out.Result {
	case service.LoginUserNotFound:
		return c.Status(fiber.StatusUnauthorized).JSON(helper.ErrorResponse{
			Success: false, Message: "Utilizatorul nu există", ErrorCode: string(service.LoginUserNotFound),
		})
	case service.LoginWrongPassword:
		return c.Status(fiber.StatusUnauthorized).JSON(helper.ErrorResponse{
			Success: false, Message: "Parolă incorectă", ErrorCode: string(service.LoginWrongPassword),
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    out.AccessToken,
		Expires:  out.ExpiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return helper.JsonOK(c, "Autentificare reușită", dto.LoginResponse{
		User:        out.User,
		AccessToken: out.AccessToken,
		ExpiresAt:   out.ExpiresAt.Format(time.RFC3339),
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Svc.Logout(c.UserContext(), helper.GetRawAccessToken(c)); err != nil {
		log.Println("[WARN] logout:", err)
	}
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Deconectat", nil)
}

func (ac *AuthController) currentUser(c *fiber.Ctx) (kgModel.User, error) {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return kgModel.User{}, err
	}
	u, ok := ac.Svc.Ctl.FindUser(id)
	if !ok {
		return kgModel.User{}, fiber.NewError(fiber.StatusUnauthorized, "User not found")
	}
	return u, nil
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	u, err := ac.currentUser(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.MeResponse{User: u, Sections: sectionNames(u.Role)})
}

// GET /api/auth/me/sections
func (ac *AuthController) MySections(c *fiber.Ctx) error {
	u, err := ac.currentUser(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "OK", sectionNames(u.Role))
}

func sectionNames(role kgModel.Role) []string {
	secs := constants.SectionsFor(role)
	out := make([]string, 0, len(secs))
	for _, s := range secs {
		out = append(out, string(s))
	}
	return out
}
