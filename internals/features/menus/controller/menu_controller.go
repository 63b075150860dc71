package controller

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/features/inventory/ledger"
	inventory "edugest_backend/internals/features/inventory/service"
	"edugest_backend/internals/features/menus/dto"
	"edugest_backend/internals/features/menus/planner"
	helper "edugest_backend/internals/helpers"
	"edugest_backend/internals/state"
)

var validate = validator.New()

type MenuController struct {
	Ctl     *state.Controller
	Scanner *inventory.ScanService
}

func NewMenuController(ctl *state.Controller, scanner *inventory.ScanService) *MenuController {
	return &MenuController{Ctl: ctl, Scanner: scanner}
}

func statusOf(s *state.AppState, date string) planner.Status {
	book := ledger.Book{Items: s.Inventory, Transactions: s.Transactions}
	return planner.MenuStatus(s.Menus, &book, date)
}

// GET /api/menus?from=&to=
func (h *MenuController) List(c *fiber.Ctx) error {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	for _, d := range []string{from, to} {
		if d != "" && !state.ValidDate(d) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Data trebuie să fie YYYY-MM-DD")
		}
	}
	var out []dto.MenuResponse
	h.Ctl.View(func(s *state.AppState) {
		out = make([]dto.MenuResponse, 0, len(s.Menus))
		for _, m := range s.Menus {
			if (from != "" && m.Date < from) || (to != "" && m.Date > to) {
				continue
			}
			out = append(out, dto.MenuResponse{DailyMenu: m, Status: statusOf(s, m.Date)})
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return helper.JsonOK(c, "ok", out)
}

// GET /api/menus/:date
func (h *MenuController) Get(c *fiber.Ctx) error {
	date, err := helper.DateParam(c.Params("date"))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var (
		out dto.MenuResponse
		ok  bool
	)
	h.Ctl.View(func(s *state.AppState) {
		out.DailyMenu, ok = s.FindMenu(date)
		out.Status = statusOf(s, date)
	})
	if !ok {
		return helper.JsonDomainError(c, state.ErrMenuNotFound)
	}
	return helper.JsonOK(c, "ok", out)
}

// PUT /api/menus/:date
func (h *MenuController) Save(c *fiber.Ctx) error {
	date, err := helper.DateParam(c.Params("date"))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var in dto.SaveMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	m := in.ToModel(date)
	m.ItemsUsed = in.ItemsUsed
	saved, err := h.Ctl.SaveMenu(c.UserContext(), m)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Meniul a fost salvat", saved)
}

// DELETE /api/menus/:date
func (h *MenuController) Delete(c *fiber.Ctx) error {
	date, err := helper.DateParam(c.Params("date"))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := h.Ctl.DeleteMenu(c.UserContext(), date); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Meniul a fost șters", fiber.Map{"date": date})
}

// DELETE /api/menus?confirm=true
func (h *MenuController) Clear(c *fiber.Ctx) error {
	if !helper.Confirmed(c) {
		return helper.JsonConfirmationRequired(c, "Ștergeți toate meniurile?", nil)
	}
	if err := h.Ctl.ClearMenus(c.UserContext()); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Toate meniurile au fost șterse", nil)
}

// POST /api/menus/:date/copy
func (h *MenuController) Copy(c *fiber.Ctx) error {
	from, err := helper.DateParam(c.Params("date"))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var in dto.CopyMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	out, err := h.Ctl.CopyMenu(c.UserContext(), from, in.To)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Meniul a fost copiat pe "+in.To, out)
}

// GET /api/menus/:date/status
func (h *MenuController) Status(c *fiber.Ctx) error {
	date, err := helper.DateParam(c.Params("date"))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var (
		st      planner.Status
		present int
	)
	h.Ctl.View(func(s *state.AppState) {
		st = statusOf(s, date)
		present = planner.PresentCount(s.Attendance, s.Students, date)
	})
	return helper.JsonOK(c, "ok", fiber.Map{"date": date, "ref": planner.DocumentRef(date), "status": st, "presentCount": present})
}

// POST /api/menus/:date/plan: pratinjau kebutuhan vs stok, tanpa mutasi
func (h *MenuController) Plan(c *fiber.Ctx) error {
	date, err := helper.DateParam(c.Params("date"))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var in dto.PlanRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	out := dto.PlanResponse{Date: date, Ref: planner.DocumentRef(date)}
	h.Ctl.View(func(s *state.AppState) {
		out.PresentCount = planner.PresentCount(s.Attendance, s.Students, date)
		out.Status = statusOf(s, date)
		out.Lines = planner.Plan(in.ToIngredients(), out.PresentCount, s.Inventory)
	})
	return helper.JsonOK(c, "ok", out)
}

// POST /api/menus/:date/consumption
func (h *MenuController) Consumption(c *fiber.Ctx) error {
	date, err := helper.DateParam(c.Params("date"))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var in dto.ConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	opts := planner.Options{
		ConfirmReplace:    in.ConfirmReplace || helper.Confirmed(c),
		AllowInsufficient: in.AllowInsufficient,
	}

	res, err := h.Ctl.GenerateConsumption(c.UserContext(), state.ConsumptionInput{
		Date:        date,
		Menu:        in.ToModel(date),
		Ingredients: in.ToIngredients(),
	}, opts)

	var short *planner.InsufficientError
	switch {
	case err == nil:
		msg := "Bon de consum generat: " + res.Ref
		if res.Replaced {
			msg = "Bon de consum înlocuit: " + res.Ref
		}
		return helper.JsonCreated(c, msg, res)
	case errors.Is(err, planner.ErrConsumptionExists):
		return helper.JsonConfirmationRequired(c,
			"Există deja un bon de consum pentru această dată. Doriți să îl înlocuiți?",
			fiber.Map{"reason": "CONSUMPTION_EXISTS", "ref": res.Ref, "flag": "confirmReplace"})
	case errors.As(err, &short):
		return helper.JsonConfirmationRequired(c,
			"Stoc insuficient pentru unele produse. Continuați oricum?",
			fiber.Map{"reason": "INSUFFICIENT_STOCK", "lines": short.Lines, "flag": "allowInsufficient"})
	}
	return helper.JsonDomainError(c, err)
}

// POST /api/menus/:date/suggest: rekomendasi bahan (Gemini)
func (h *MenuController) Suggest(c *fiber.Ctx) error {
	date, err := helper.DateParam(c.Params("date"))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var in dto.SuggestRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	snap := h.Ctl.Snapshot()
	out, err := h.Scanner.SuggestIngredients(c.UserContext(), in.ToModel(date), snap.Inventory, in.ToIngredients())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
