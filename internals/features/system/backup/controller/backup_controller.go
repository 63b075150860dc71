package controller

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/features/system/backup/service"
	helper "edugest_backend/internals/helpers"
	"edugest_backend/internals/state"
)

const maxBackupBytes = 50 << 20

type BackupController struct {
	Svc *service.Service
}

func NewBackupController(svc *service.Service) *BackupController {
	return &BackupController{Svc: svc}
}

// GET /api/settings/backup → file JSON
func (h *BackupController) Export(c *fiber.Ctx) error {
	b := h.Svc.Ctl.Export()
	data, err := service.Marshal(b)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Attachment(service.FileName(b.ExportDate))
	return c.Send(data)
}

// body: multipart "file" atau JSON mentah
func readBackupBody(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > maxBackupBytes {
			return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "Fișierul de backup este prea mare")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Fișierul nu poate fi citit")
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Lipsește fișierul de backup")
	}
	return append([]byte(nil), body...), nil
}

// POST /api/settings/backup?confirm=true
func (h *BackupController) Import(c *fiber.Ctx) error {
	data, err := readBackupBody(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	b, err := service.Unmarshal(data)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fișier invalid: JSON incorect")
	}
	if err := state.ValidateBackup(b); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fișier invalid: lipsesc datele esențiale (config, students)")
	}
	if !helper.Confirmed(c) {
		return helper.JsonConfirmationRequired(c,
			"Importul va suprascrie datele existente. Confirmați?",
			fiber.Map{"exportDate": b.ExportDate, "appVersion": b.AppVersion, "students": len(b.Students)})
	}
	if err := h.Svc.Ctl.Import(c.UserContext(), b); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Datele au fost restaurate cu succes", fiber.Map{"students": len(b.Students)})
}

// GET /api/settings/backup/latest
func (h *BackupController) Latest(c *fiber.Ctx) error {
	b, ok, err := h.Svc.Latest(c.UserContext())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Nu există încă un backup automat")
	}
	data, err := service.Marshal(b)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Attachment(service.FileName(b.ExportDate))
	return c.Send(data)
}

// POST /api/settings/backup/run
func (h *BackupController) Run(c *fiber.Ctx) error {
	res, err := h.Svc.Run(c.UserContext())
	if errors.Is(err, service.ErrUploadFailed) {
		log.Println("[BACKUP ERROR]", err)
		return c.Status(fiber.StatusBadGateway).JSON(helper.ErrorResponse{
			Success:   false,
			Message:   "Backup salvat local, dar încărcarea în cloud a eșuat",
			ErrorCode: "UPSTREAM_ERROR",
			Data:      res,
		})
	}
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Backup efectuat", res)
}

// POST /api/settings/reset?confirm=true
func (h *BackupController) Reset(c *fiber.Ctx) error {
	if !helper.Confirmed(c) {
		return helper.JsonConfirmationRequired(c, "Toate datele vor fi șterse definitiv. Confirmați resetarea?", nil)
	}
	if err := h.Svc.Ctl.Reset(c.UserContext()); err != nil {
		return helper.JsonDomainError(c, err)
	}
	log.Println("[WARN] settings: aplikasi di-reset ke data awal")
	return helper.JsonOK(c, "Aplicația a fost resetată", nil)
}
