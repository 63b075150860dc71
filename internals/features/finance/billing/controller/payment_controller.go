package controller

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/features/finance/billing/dto"
	billing "edugest_backend/internals/features/finance/billing/service"
	"edugest_backend/internals/features/kindergarten/model"
	reports "edugest_backend/internals/features/reports/service"
	helper "edugest_backend/internals/helpers"
	"edugest_backend/internals/state"
)

var validate = validator.New()

type PaymentController struct {
	Ctl  *state.Controller
	Memo *billing.Memo
}

func NewPaymentController(ctl *state.Controller, memo *billing.Memo) *PaymentController {
	return &PaymentController{Ctl: ctl, Memo: memo}
}

// GET /api/payments?month=&student_id=  (month kosong = semua)
func (h *PaymentController) List(c *fiber.Ctx) error {
	month := strings.TrimSpace(c.Query("month"))
	if month != "" && !state.ValidMonth(month) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parametrul month trebuie să fie YYYY-MM")
	}
	studentID := strings.TrimSpace(c.Query("student_id"))

	var rows []dto.PaymentResponse
	h.Ctl.View(func(s *state.AppState) {
		rows = make([]dto.PaymentResponse, 0, len(s.Payments))
		for _, p := range s.Payments {
			if month != "" && p.Month != month {
				continue
			}
			if studentID != "" && p.StudentID != studentID {
				continue
			}
			r := dto.PaymentResponse{Payment: p, StudentName: "Elev Șters"}
			if st, ok := s.FindStudent(p.StudentID); ok {
				r.StudentName = st.FullName()
				r.Group = st.Group
			}
			rows = append(rows, r)
		}
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })

	page, pg := helper.Paginate(rows, helper.ResolvePaging(c, 500))
	return helper.JsonList(c, "ok", page, &pg)
}

// POST /api/payments
func (h *PaymentController) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	p, err := h.Ctl.AddPayment(c.UserContext(), in.ToInput())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Plata a fost înregistrată", p)
}

// GET /api/payments/overview?month=
func (h *PaymentController) Overview(c *fiber.Ctx) error {
	month, err := helper.MonthQuery(c, h.Ctl.Now())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	var ov billing.Overview
	h.Ctl.View(func(s *state.AppState) { ov = billing.MonthOverview(s, month) })
	return helper.JsonOK(c, "ok", ov)
}

func (h *PaymentController) student(id string) (model.Student, string, float64, bool) {
	var (
		st  model.Student
		ok  bool
		cur string
		fee float64
	)
	h.Ctl.View(func(s *state.AppState) {
		st, ok = s.FindStudent(id)
		cur = s.Config.Currency
		fee = s.Config.FoodCostPerDay
	})
	return st, cur, fee, ok
}

// GET /api/payments/statement/:student_id?month=
func (h *PaymentController) Statement(c *fiber.Ctx) error {
	month, err := helper.MonthQuery(c, h.Ctl.Now())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	st, cur, _, ok := h.student(c.Params("student_id"))
	if !ok {
		return helper.JsonDomainError(c, state.ErrStudentNotFound)
	}
	stmt := h.Memo.Statement(c.UserContext(), st.ID, month)
	return helper.JsonOK(c, "ok", dto.StatementResponse{Student: st, Statement: stmt, Status: stmt.Status(), Currency: cur})
}

// GET /api/payments/suggest/:student_id?month=&days=
func (h *PaymentController) Suggest(c *fiber.Ctx) error {
	month, err := helper.MonthQuery(c, h.Ctl.Now())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	st, _, fee, ok := h.student(c.Params("student_id"))
	if !ok {
		return helper.JsonDomainError(c, state.ErrStudentNotFound)
	}

	days, _ := billing.WorkingDays(month)
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 0 || d > 31 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Parametrul days trebuie să fie între 0 și 31")
		}
		days = d
	}

	stmt := h.Memo.Statement(c.UserContext(), st.ID, month)
	return helper.JsonOK(c, "ok", dto.SuggestResponse{
		StudentID:    st.ID,
		Month:        month,
		Days:         days,
		Fee:          fee,
		FinalBalance: stmt.FinalBalance,
		Suggested:    billing.SuggestedAmount(stmt, days, fee),
	})
}

// GET /api/payments/working-days?month=
func (h *PaymentController) WorkingDays(c *fiber.Ctx) error {
	month, err := helper.MonthQuery(c, h.Ctl.Now())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	days, err := billing.WorkingDays(month)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonOK(c, "ok", fiber.Map{"month": month, "workingDays": days})
}

// GET /api/payments/export?month=
func (h *PaymentController) Export(c *fiber.Ctx) error {
	month := strings.TrimSpace(c.Query("month"))
	if month != "" && !state.ValidMonth(month) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parametrul month trebuie să fie YYYY-MM")
	}
	var (
		data []byte
		err  error
	)
	h.Ctl.View(func(s *state.AppState) { data, err = reports.Workbook(s, reports.KindPayments, month) })
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.SendXLSX(c, reports.FileName(reports.KindPayments, month), data)
}

// GET /api/payments/:id/receipt
func (h *PaymentController) Receipt(c *fiber.Ctx) error {
	var (
		r   billing.Receipt
		err error
	)
	h.Ctl.View(func(s *state.AppState) { r, err = billing.BuildReceipt(s, c.Params("id")) })
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "ok", r)
}
