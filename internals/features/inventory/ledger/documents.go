// file: internals/features/inventory/ledger/documents.go
package ledger

import (
	"sort"
	"time"

	"edugest_backend/internals/features/kindergarten/model"
)

type DocumentSummary struct {
	Ref        string             `json:"ref"`
	Date       time.Time          `json:"date"`
	Type       model.MovementType `json:"type"`
	ItemsCount int                `json:"itemsCount"`
	TotalValue float64            `json:"totalValue"`
	Supplier   string             `json:"supplier"`
}

type DocumentLine struct {
	model.InventoryTransaction
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

type DocumentDetail struct {
	Ref      string             `json:"ref"`
	Type     model.MovementType `json:"type"`
	Date     time.Time          `json:"date"`
	Supplier string             `json:"supplier"`
	Lines    []DocumentLine     `json:"items"`
	Total    float64            `json:"total"`
}

// unitPrice: pricePerUnit transaksi, fallback lastPrice item, fallback 0
func (b *Book) unitPrice(tx model.InventoryTransaction) float64 {
	if tx.PricePerUnit != nil && *tx.PricePerUnit > 0 {
		return *tx.PricePerUnit
	}
	if item, ok := b.FindItem(tx.FoodItemID); ok {
		return item.LastPrice
	}
	return 0
}

func supplierOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Documents merekonstruksi dokumen dari log transaksi (tidak disimpan sebagai entitas).
// Header dokumen diambil dari transaksi pertama yang ditemui (yang terbaru).
func (b *Book) Documents() []DocumentSummary {
	index := map[string]int{}
	var out []DocumentSummary
	for _, tx := range b.Transactions {
		i, ok := index[tx.DocumentRef]
		if !ok {
			out = append(out, DocumentSummary{
				Ref:      tx.DocumentRef,
				Date:     tx.Date,
				Type:     tx.Type,
				Supplier: supplierOrDash(tx.Supplier),
			})
			i = len(out) - 1
			index[tx.DocumentRef] = i
		}
		out[i].ItemsCount++
		out[i].TotalValue += tx.Quantity * b.unitPrice(tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (b *Book) Document(ref string) (DocumentDetail, bool) {
	var d DocumentDetail
	for _, tx := range b.Transactions {
		if tx.DocumentRef != ref {
			continue
		}
		if len(d.Lines) == 0 {
			d.Ref = ref
			d.Type = tx.Type
			d.Date = tx.Date
			d.Supplier = supplierOrDash(tx.Supplier)
		}
		line := DocumentLine{InventoryTransaction: tx, Name: model.DeletedItemLabel, Unit: "-"}
		if item, ok := b.FindItem(tx.FoodItemID); ok {
			line.Name = item.Name
			line.Unit = string(item.Unit)
		}
		line.Value = tx.Quantity * b.unitPrice(tx)
		d.Total += line.Value
		d.Lines = append(d.Lines, line)
	}
	return d, len(d.Lines) > 0
}

// LowStock: item dengan quantity <= minStock
func (b *Book) LowStock() []model.FoodItem {
	var out []model.FoodItem
	for _, it := range b.Items {
		if it.IsLow() {
			out = append(out, it)
		}
	}
	return out
}

func (b *Book) StockValue() float64 {
	total := 0.0
	for _, it := range b.Items {
		total += it.Quantity * it.LastPrice
	}
	return total
}
