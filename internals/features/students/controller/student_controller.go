package controller

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/constants"
	billing "edugest_backend/internals/features/finance/billing/service"
	"edugest_backend/internals/features/students/dto"
	"edugest_backend/internals/features/students/service"
	helper "edugest_backend/internals/helpers"
	"edugest_backend/internals/state"
)

var validate = validator.New()

type StudentController struct {
	Ctl *state.Controller
}

func NewStudentController(ctl *state.Controller) *StudentController {
	return &StudentController{Ctl: ctl}
}

// GET /api/students?group=&active=&q=&page=&per_page=
func (h *StudentController) List(c *fiber.Ctx) error {
	group := strings.TrimSpace(c.Query("group"))
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	var activeFilter *bool
	if v := c.Query("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Parametrul active trebuie să fie true/false")
		}
		activeFilter = &b
	}

	var rows []dto.StudentResponse
	h.Ctl.View(func(s *state.AppState) {
		rows = make([]dto.StudentResponse, 0, len(s.Students))
		for _, st := range s.Students {
			if group != "" && st.Group != group {
				continue
			}
			if activeFilter != nil && st.Active != *activeFilter {
				continue
			}
			if q != "" && !strings.Contains(strings.ToLower(st.FullName()), q) && !strings.Contains(st.CNP, q) {
				continue
			}
			rows = append(rows, dto.ToStudentResponse(st, s.Parents))
		}
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].FullName() < rows[j].FullName() })

	page, pg := helper.Paginate(rows, helper.ResolvePaging(c, 200))
	return helper.JsonList(c, "ok", page, &pg)
}

// POST /api/students
func (h *StudentController) Create(c *fiber.Ctx) error {
	var in dto.CreateStudentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	st, parent := in.ToModel()
	created, err := h.Ctl.AddStudent(c.UserContext(), st, parent)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	snap := h.Ctl.Snapshot()
	return helper.JsonCreated(c, "Elev adăugat", dto.ToStudentResponse(created, snap.Parents))
}

// PATCH /api/students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	var in dto.UpdateStudentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	updated, err := h.Ctl.UpdateStudent(c.UserContext(), c.Params("id"), in.StudentPatch, in.Parent)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	snap := h.Ctl.Snapshot()
	return helper.JsonUpdated(c, "Elev actualizat", dto.ToStudentResponse(updated, snap.Parents))
}

// DELETE /api/students/:id
func (h *StudentController) Delete(c *fiber.Ctx) error {
	removed, err := h.Ctl.DeleteStudent(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Elev șters", fiber.Map{"id": c.Params("id"), "parentRemoved": removed})
}

// GET /api/students/:id/ledger
func (h *StudentController) Ledger(c *fiber.Ctx) error {
	var (
		out billing.Ledger
		err error
	)
	h.Ctl.View(func(s *state.AppState) { out, err = billing.StudentLedger(s, c.Params("id")) })
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// POST /api/students/import (multipart "file", confirm=true untuk menyimpan)
func (h *StudentController) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fișierul lipsește (câmpul file)")
	}
	if constants.DetectFileTypeFromExt(fh.Filename) != constants.FileXLSX {
		return helper.JsonError(c, fiber.StatusBadRequest, "Sunt acceptate doar fișiere .xlsx")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fișierul nu poate fi citit")
	}
	defer f.Close()

	rows, err := service.ParseStudentsXLSX(f)
	if err != nil {
		if errors.Is(err, service.ErrEmptyFile) || errors.Is(err, service.ErrInvalidFile) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.JsonDomainError(c, err)
	}

	if !helper.Confirmed(c) {
		sample := rows
		if len(sample) > 5 {
			sample = sample[:5]
		}
		return helper.JsonConfirmationRequired(c,
			"Se vor importa "+strconv.Itoa(len(rows))+" elevi. Confirmați?",
			dto.ImportPreview{Rows: len(rows), Sample: sample})
	}

	n, err := h.Ctl.ImportStudents(c.UserContext(), rows)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Import reușit", fiber.Map{"imported": n})
}

// GET /api/students/export?group=
func (h *StudentController) Export(c *fiber.Ctx) error {
	group := strings.TrimSpace(c.Query("group"))
	var (
		data []byte
		err  error
	)
	h.Ctl.View(func(s *state.AppState) { data, err = service.ExportStudents(s, group) })
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.SendXLSX(c, service.ExportFileName(group, h.Ctl.Now()), data)
}

// GET /api/students/template
func (h *StudentController) Template(c *fiber.Ctx) error {
	var groups []string
	h.Ctl.View(func(s *state.AppState) { groups = append(groups, s.Config.Groups...) })
	data, err := service.TemplateWorkbook(groups)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.SendXLSX(c, service.TemplateFileName, data)
}
