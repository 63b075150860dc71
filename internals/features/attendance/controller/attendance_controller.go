package controller

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/features/attendance/dto"
	"edugest_backend/internals/features/kindergarten/model"
	reports "edugest_backend/internals/features/reports/service"
	helper "edugest_backend/internals/helpers"
	"edugest_backend/internals/state"
)

var validate = validator.New()

type AttendanceController struct {
	Ctl *state.Controller
}

func NewAttendanceController(ctl *state.Controller) *AttendanceController {
	return &AttendanceController{Ctl: ctl}
}

// GET /api/attendance?date=YYYY-MM-DD&group=  → daftar harian
// GET /api/attendance?month=YYYY-MM&group=    → grid bulanan
func (h *AttendanceController) List(c *fiber.Ctx) error {
	group := strings.TrimSpace(c.Query("group"))
	if raw := c.Query("date"); raw != "" {
		date, err := helper.DateParam(raw)
		if err != nil {
			return helper.JsonDomainError(c, err)
		}
		return helper.JsonOK(c, "ok", h.day(date, group))
	}

	month, err := helper.MonthQuery(c, h.Ctl.Now())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var grid reports.Grid
	h.Ctl.View(func(s *state.AppState) { grid, err = reports.BuildAttendanceGrid(s, month, group) })
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "ok", grid)
}

func (h *AttendanceController) day(date, group string) []dto.DayRow {
	var rows []dto.DayRow
	h.Ctl.View(func(s *state.AppState) {
		status := map[string]model.AttendanceStatus{}
		for _, a := range s.Attendance {
			if a.Date == date {
				status[a.StudentID] = a.Status
			}
		}
		rows = make([]dto.DayRow, 0, len(s.Students))
		for _, st := range s.ActiveStudents() {
			if group != "" && st.Group != group {
				continue
			}
			v, ok := status[st.ID]
			if !ok {
				v = model.AttendanceNotTaken
			}
			rows = append(rows, dto.DayRow{StudentID: st.ID, Name: st.FullName(), Group: st.Group, Status: v})
		}
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// POST /api/attendance
func (h *AttendanceController) Record(c *fiber.Ctx) error {
	var in dto.RecordAttendanceRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := h.Ctl.RecordAttendance(c.UserContext(), in.Date, in.Marks); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Prezența a fost salvată", fiber.Map{"date": in.Date, "saved": len(in.Marks)})
}

// POST /api/attendance/toggle
func (h *AttendanceController) Toggle(c *fiber.Ctx) error {
	var in dto.ToggleAttendanceRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	next, err := h.Ctl.CycleAttendance(c.UserContext(), in.StudentID, in.Date)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "ok", fiber.Map{"studentId": in.StudentID, "date": in.Date, "status": next})
}

// POST /api/attendance/mark-all
func (h *AttendanceController) MarkAll(c *fiber.Ctx) error {
	var in dto.MarkAllRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	n, err := h.Ctl.MarkAllPresent(c.UserContext(), in.Date, strings.TrimSpace(in.Group))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Toți elevii au fost marcați prezenți", fiber.Map{"date": in.Date, "marked": n})
}

// GET /api/attendance/export?month=&group=
func (h *AttendanceController) Export(c *fiber.Ctx) error {
	month, err := helper.MonthQuery(c, h.Ctl.Now())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	group := strings.TrimSpace(c.Query("group"))
	var data []byte
	h.Ctl.View(func(s *state.AppState) { data, err = reports.AttendanceGridWorkbook(s, month, group) })
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	name := "prezenta_" + month
	if group != "" {
		name += "_" + strings.ReplaceAll(group, " ", "_")
	}
	return helper.SendXLSX(c, name+".xlsx", data)
}
