package state

import (
	"context"
	"strings"

	"edugest_backend/internals/features/kindergarten/model"
)

type PaymentInput struct {
	StudentID     string
	Amount        float64
	Method        model.PaymentMethod
	Month         string
	InvoiceNumber string
}

// AddPayment: parentId disalin dari student, date := sekarang.
func (c *Controller) AddPayment(ctx context.Context, in PaymentInput) (model.Payment, error) {
	var created model.Payment
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		st, ok := s.FindStudent(in.StudentID)
		if !ok {
			return nil, ErrStudentNotFound
		}
		if in.Amount <= 0 {
			return nil, invalid("amount", "suma trebuie să fie pozitivă")
		}
		if !ValidMonth(in.Month) {
			return nil, invalid("month", "format YYYY-MM")
		}
		method := in.Method
		if method == "" {
			method = model.PaymentCash
		}
		if method != model.PaymentCash && method != model.PaymentCard && method != model.PaymentTransfer {
			return nil, invalid("method", "CASH, CARD sau TRANSFER")
		}
		invoice := strings.TrimSpace(in.InvoiceNumber)
		if invoice == "" {
			invoice = "F" + c.lastDigits()
		}

		p := model.Payment{
			ID:            c.ids("pay"),
			StudentID:     st.ID,
			ParentID:      st.ParentID,
			InvoiceNumber: invoice,
			Date:          c.clock(),
			Amount:        in.Amount,
			Method:        method,
			Month:         in.Month,
		}
		s.Payments = append([]model.Payment{p}, s.Payments...)
		created = p
		return []string{KeyPayments}, nil
	})
	return created, err
}
