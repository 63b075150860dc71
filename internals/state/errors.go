package state

import (
	"errors"

	"edugest_backend/internals/features/inventory/ledger"
	"edugest_backend/internals/features/menus/planner"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrStudentNotFound   = errors.New("student not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrProtectedUser     = errors.New("the default administrator cannot be deleted")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrGroupExists       = errors.New("group already exists")
	ErrGroupNotFound     = errors.New("group not found")
	ErrMenuNotFound      = errors.New("menu not found")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrInvalidBackup     = errors.New("backup must contain config and students")

	// diteruskan dari ledger/planner supaya caller cukup import state
	ErrItemNotFound      = ledger.ErrItemNotFound
	ErrConsumptionExists = planner.ErrConsumptionExists
	ErrInsufficientStock = planner.ErrInsufficientStock
)

// ValidationError: input ditolak, state tidak berubah
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
