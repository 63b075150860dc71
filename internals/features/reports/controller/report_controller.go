package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/features/reports/service"
	helper "edugest_backend/internals/helpers"
	"edugest_backend/internals/state"
)

type ReportController struct {
	Ctl *state.Controller
}

func NewReportController(ctl *state.Controller) *ReportController {
	return &ReportController{Ctl: ctl}
}

// GET /api/dashboard
func (h *ReportController) Dashboard(c *fiber.Ctx) error {
	now := h.Ctl.Now()
	var d service.Dashboard
	h.Ctl.View(func(s *state.AppState) { d = service.BuildDashboard(s, now) })
	return helper.JsonOK(c, "ok", d)
}

// GET /api/reports/financial?month=
func (h *ReportController) Financial(c *fiber.Ctx) error {
	month, err := helper.MonthQuery(c, h.Ctl.Now())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var f service.Financial
	h.Ctl.View(func(s *state.AppState) { f = service.BuildFinancial(s, month) })
	return helper.JsonOK(c, "ok", f)
}

// GET /api/reports/attendance?month=&group=
func (h *ReportController) Attendance(c *fiber.Ctx) error {
	month, err := helper.MonthQuery(c, h.Ctl.Now())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	group := strings.TrimSpace(c.Query("group"))
	var rows []service.AttendanceRow
	h.Ctl.View(func(s *state.AppState) { rows = service.BuildAttendanceSummary(s, month, group) })
	return helper.JsonOK(c, "ok", fiber.Map{"month": month, "group": group, "rows": rows})
}

// GET /api/reports/export/:kind?month=
func (h *ReportController) Export(c *fiber.Ctx) error {
	kind := strings.ToLower(c.Params("kind"))
	month, err := helper.MonthQuery(c, h.Ctl.Now())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var data []byte
	h.Ctl.View(func(s *state.AppState) { data, err = service.Workbook(s, kind, month) })
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.SendXLSX(c, service.FileName(kind, month), data)
}
