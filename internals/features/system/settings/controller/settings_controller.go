package controller

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/features/system/settings/dto"
	helper "edugest_backend/internals/helpers"
	"edugest_backend/internals/state"
)

var validate = validator.New()

type SettingsController struct {
	Ctl *state.Controller
}

func NewSettingsController(ctl *state.Controller) *SettingsController {
	return &SettingsController{Ctl: ctl}
}

/* ===================== CONFIG ===================== */

// GET /api/settings/config
func (h *SettingsController) GetConfig(c *fiber.Ctx) error {
	var cfg model.AppConfig
	h.Ctl.View(func(s *state.AppState) {
		cfg = s.Config
		cfg.Groups = append([]string{}, s.Config.Groups...)
	})
	return helper.JsonOK(c, "ok", cfg)
}

// PUT /api/settings/config
func (h *SettingsController) UpdateConfig(c *fiber.Ctx) error {
	var in dto.UpdateConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	cfg, err := h.Ctl.UpdateConfig(c.UserContext(), in.ToModel())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Setările au fost salvate", cfg)
}

/* ===================== GROUPS ===================== */

func groupParam(c *fiber.Ctx) string {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Params("name")
	}
	return name
}

// POST /api/settings/groups
func (h *SettingsController) AddGroup(c *fiber.Ctx) error {
	var in dto.GroupRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := h.Ctl.AddGroup(c.UserContext(), in.Name); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Grupa a fost adăugată", fiber.Map{"name": in.Name})
}

// PUT /api/settings/groups/:name
func (h *SettingsController) RenameGroup(c *fiber.Ctx) error {
	var in dto.RenameGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	old := groupParam(c)
	n, err := h.Ctl.RenameGroup(c.UserContext(), old, in.NewName)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Grupa a fost redenumită", fiber.Map{"oldName": old, "newName": in.NewName, "studentsUpdated": n})
}

// DELETE /api/settings/groups/:name
func (h *SettingsController) DeleteGroup(c *fiber.Ctx) error {
	name := groupParam(c)
	if err := h.Ctl.DeleteGroup(c.UserContext(), name); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Grupa a fost ștearsă", fiber.Map{"name": name})
}

/* ===================== USERS ===================== */

// GET /api/settings/users
func (h *SettingsController) ListUsers(c *fiber.Ctx) error {
	var users []model.User
	h.Ctl.View(func(s *state.AppState) {
		users = make([]model.User, 0, len(s.Users))
		for _, u := range s.Users {
			users = append(users, u.Public())
		}
	})
	return helper.JsonOK(c, "ok", users)
}

// POST /api/settings/users
func (h *SettingsController) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	u, err := h.Ctl.AddUser(c.UserContext(), in.ToModel())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Utilizator creat", u)
}

// DELETE /api/settings/users/:id
func (h *SettingsController) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if me, _ := helper.GetUserIDFromToken(c); me == id {
		return helper.JsonError(c, fiber.StatusForbidden, "Nu vă puteți șterge propriul cont")
	}
	if err := h.Ctl.DeleteUser(c.UserContext(), id); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Utilizator șters", fiber.Map{"id": id})
}
