package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	billing "edugest_backend/internals/features/finance/billing/service"
	"edugest_backend/internals/features/inventory/ledger"
	inventory "edugest_backend/internals/features/inventory/service"
	"edugest_backend/internals/features/menus/planner"
	reports "edugest_backend/internals/features/reports/service"
	students "edugest_backend/internals/features/students/service"
	ossHelper "edugest_backend/internals/helpers/oss"
	"edugest_backend/internals/state"
)

// JsonDomainError mengubah error dari state/ledger/planner menjadi response
// JSON konsisten. Error yang tidak dikenal → 500.
func JsonDomainError(c *fiber.Ctx, err error) error {
	var ve *state.ValidationError
	if errors.As(err, &ve) {
		return ErrorWithDetails(c, fiber.StatusBadRequest, ve.Message, map[string][]string{ve.Field: {ve.Message}})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	switch {
	case errors.Is(err, ledger.ErrItemNotSpecified),
		errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrInvalidMovement),
		errors.Is(err, ledger.ErrEmptyDocumentRef),
		errors.Is(err, planner.ErrInvalidDate),
		errors.Is(err, state.ErrInvalidBackup),
		errors.Is(err, billing.ErrInvalidMonth),
		errors.Is(err, inventory.ErrEmptyMenu),
		errors.Is(err, ossHelper.ErrUnsupportedImage),
		errors.Is(err, students.ErrEmptyFile),
		errors.Is(err, students.ErrInvalidFile):
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, state.ErrStudentNotFound),
		errors.Is(err, state.ErrUserNotFound),
		errors.Is(err, state.ErrGroupNotFound),
		errors.Is(err, state.ErrMenuNotFound),
		errors.Is(err, state.ErrDocumentNotFound),
		errors.Is(err, state.ErrItemNotFound),
		errors.Is(err, billing.ErrPaymentNotFound),
		errors.Is(err, reports.ErrUnknownReport):
		return JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, state.ErrProtectedUser):
		return JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, state.ErrDuplicateUsername),
		errors.Is(err, state.ErrGroupExists):
		return JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, inventory.ErrScannerDisabled):
		return JsonError(c, fiber.StatusServiceUnavailable, "Scanarea facturilor nu este configurată (GEMINI_API_KEY)")
	case errors.Is(err, inventory.ErrScanFailed),
		errors.Is(err, inventory.ErrBadModelAnswer):
		// layanan eksternal gagal; state tidak berubah
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		return JsonError(c, fiber.StatusBadGateway, "Serviciul AI nu a putut procesa cererea. Încercați din nou.")
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
