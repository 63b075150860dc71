// file: internals/features/kindergarten/model/inventory_model.go
package model

import "time"

type Unit string

const (
	UnitKg    Unit = "kg"
	UnitLitre Unit = "litru"
	UnitPiece Unit = "buc"
	UnitGram  Unit = "g"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitKg, UnitLitre, UnitPiece, UnitGram:
		return true
	}
	return false
}

type FoodItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Unit      Unit    `json:"unit"`
	Quantity  float64 `json:"quantity"`
	MinStock  float64 `json:"minStock"`
	LastPrice float64 `json:"lastPrice"`
}

func (f FoodItem) IsLow() bool { return f.Quantity <= f.MinStock }

type MovementType string

const (
	MovementEntry MovementType = "ENTRY"
	MovementExit  MovementType = "EXIT"
)

func (t MovementType) Valid() bool {
	return t == MovementEntry || t == MovementExit
}

// InventoryTransaction: satu baris mutasi stok; DocumentRef mengelompokkan
// beberapa baris menjadi satu dokumen (NIR / BC).
type InventoryTransaction struct {
	ID           string       `json:"id"`
	FoodItemID   string       `json:"foodItemId"`
	Type         MovementType `json:"type"`
	Quantity     float64      `json:"quantity"`
	PricePerUnit *float64     `json:"pricePerUnit,omitempty"`
	Date         time.Time    `json:"date"`
	DocumentRef  string       `json:"documentRef"`
	Supplier     string       `json:"supplier,omitempty"`
	Destination  string       `json:"destination,omitempty"`
}

// Label untuk produk yang sudah dihapus tapi masih direferensikan transaksi
const DeletedItemLabel = "Produs șters"
