package dto

import (
	"strings"

	"edugest_backend/internals/features/inventory/service"
	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/state"
)

type DocumentRowRequest struct {
	ItemID       string     `json:"itemId"`
	Name         string     `json:"name" validate:"required_without=ItemID,max=120"`
	Unit         model.Unit `json:"unit" validate:"omitempty,oneof=kg litru buc g"`
	MinStock     float64    `json:"minStock" validate:"gte=0"`
	Quantity     float64    `json:"quantity" validate:"gt=0"`
	PricePerUnit *float64   `json:"pricePerUnit" validate:"omitempty,gte=0"`
}

// CreateDocumentRequest: Rows diisi langsung, atau Draft hasil scan yang sudah dikoreksi
type CreateDocumentRequest struct {
	Type        model.MovementType   `json:"type" validate:"required,oneof=ENTRY EXIT"`
	Ref         string               `json:"ref" validate:"omitempty,max=64"`
	Supplier    string               `json:"supplier" validate:"omitempty,max=120"`
	Destination string               `json:"destination" validate:"omitempty,max=120"`
	Rows        []DocumentRowRequest `json:"rows" validate:"required_without=Draft,dive"`
	Draft       *service.Draft       `json:"draft,omitempty"`
}

func (r CreateDocumentRequest) ToInput() state.DocumentInput {
	in := state.DocumentInput{
		Type:        r.Type,
		Ref:         strings.TrimSpace(r.Ref),
		Supplier:    strings.TrimSpace(r.Supplier),
		Destination: strings.TrimSpace(r.Destination),
	}
	if r.Draft != nil {
		in.Rows = r.Draft.DocumentRows()
		if in.Ref == "" {
			in.Ref = strings.TrimSpace(r.Draft.DocNumber)
		}
		if in.Supplier == "" {
			in.Supplier = strings.TrimSpace(r.Draft.Supplier)
		}
		return in
	}
	for _, row := range r.Rows {
		in.Rows = append(in.Rows, state.DocumentRow{
			ItemID:       strings.TrimSpace(row.ItemID),
			Name:         strings.TrimSpace(row.Name),
			Unit:         row.Unit,
			MinStock:     row.MinStock,
			Quantity:     row.Quantity,
			PricePerUnit: row.PricePerUnit,
		})
	}
	return in
}

type ItemResponse struct {
	model.FoodItem
	IsLow bool    `json:"isLow"`
	Value float64 `json:"value"`
}

type InventoryResponse struct {
	Items      []ItemResponse `json:"items"`
	LowStock   int            `json:"lowStockCount"`
	StockValue float64        `json:"stockValue"`
	Currency   string         `json:"currency"`
}
