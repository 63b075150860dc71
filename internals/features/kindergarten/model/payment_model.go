// file: internals/features/kindergarten/model/payment_model.go
package model

import "time"

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// Payment: Month adalah periode alokasi (YYYY-MM), bebas dari Date.
type Payment struct {
	ID            string        `json:"id"`
	StudentID     string        `json:"studentId"`
	ParentID      string        `json:"parentId"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Date          time.Time     `json:"date"`
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `json:"method"`
	Month         string        `json:"month"`
}
