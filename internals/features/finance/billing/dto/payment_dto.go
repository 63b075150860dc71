package dto

import (
	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/state"
)

type CreatePaymentRequest struct {
	StudentID     string              `json:"studentId" validate:"required"`
	Amount        float64             `json:"amount" validate:"required,gt=0"`
	Method        model.PaymentMethod `json:"method" validate:"required,oneof=CASH CARD TRANSFER"`
	Month         string              `json:"month" validate:"required,datetime=2006-01"`
	InvoiceNumber string              `json:"invoiceNumber" validate:"omitempty,max=32"`
}

func (r CreatePaymentRequest) ToInput() state.PaymentInput {
	return state.PaymentInput{
		StudentID:     r.StudentID,
		Amount:        r.Amount,
		Method:        r.Method,
		Month:         r.Month,
		InvoiceNumber: r.InvoiceNumber,
	}
}

type PaymentResponse struct {
	model.Payment
	StudentName string `json:"studentName"`
	Group       string `json:"group"`
}

type StatementResponse struct {
	Student   model.Student `json:"student"`
	Statement any           `json:"statement"`
	Status    string        `json:"status"`
	Currency  string        `json:"currency"`
}

type SuggestResponse struct {
	StudentID    string  `json:"studentId"`
	Month        string  `json:"month"`
	Days         int     `json:"days"`
	Fee          float64 `json:"fee"`
	FinalBalance float64 `json:"finalBalance"`
	Suggested    float64 `json:"suggestedAmount"`
}
