// file: internals/features/inventory/ledger/ledger.go
//
// Package ledger menyimpan stok per bahan makanan dan log transaksi
// (ENTRY/EXIT) yang dikelompokkan per DocumentRef. Dokumen bisa dibatalkan
// dengan memutar balik semua transaksinya.
//
// Catatan clamping: EXIT yang melebihi stok memotong quantity ke 0, tetapi
// transaksi tetap mencatat quantity yang diminta. Log dan stok bisa berbeda
// setelah clamping; Movement.Shortfall melaporkan selisihnya.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"edugest_backend/internals/features/kindergarten/model"
)

var (
	ErrItemNotFound     = errors.New("food item not found")
	ErrItemNotSpecified = errors.New("item id or new item name required")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidMovement  = errors.New("movement type must be ENTRY or EXIT")
	ErrEmptyDocumentRef = errors.New("document reference required")
)

type Book struct {
	Items        []model.FoodItem
	Transactions []model.InventoryTransaction // terbaru di depan

	Now   func() time.Time
	NewID func(prefix string) string
}

type MovementInput struct {
	ItemID       string
	Quantity     float64
	Type         model.MovementType
	DocumentRef  string
	PricePerUnit *float64
	Supplier     string
	Destination  string
}

type Movement struct {
	Transaction model.InventoryTransaction
	Before      float64
	After       float64
	Shortfall   float64 // EXIT: bagian qty yang tidak tertutup stok
}

type EntryInput struct {
	ItemID       string
	Name         string
	Unit         model.Unit
	MinStock     float64
	Quantity     float64
	PricePerUnit *float64
	DocumentRef  string
	Supplier     string
}

func (b *Book) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now().UTC()
}

func (b *Book) newID(prefix string) string {
	if b.NewID != nil {
		return b.NewID(prefix)
	}
	return prefix + "-" + uuid.NewString()
}

func (b *Book) itemIndex(id string) int {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Book) FindItem(id string) (model.FoodItem, bool) {
	if i := b.itemIndex(id); i >= 0 {
		return b.Items[i], true
	}
	return model.FoodItem{}, false
}

func (b *Book) prepend(tx model.InventoryTransaction) {
	b.Transactions = append([]model.InventoryTransaction{tx}, b.Transactions...)
}

func clonePrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ApplyMovement mengubah stok satu item dan mencatat satu transaksi.
//   - ENTRY: quantity += qty; lastPrice := price kalau price > 0
//   - EXIT : quantity := max(0, quantity-qty); transaksi tetap mencatat qty penuh
func (b *Book) ApplyMovement(in MovementInput) (Movement, error) {
	if !in.Type.Valid() {
		return Movement{}, ErrInvalidMovement
	}
	if in.Quantity <= 0 {
		return Movement{}, ErrInvalidQuantity
	}
	ref := strings.TrimSpace(in.DocumentRef)
	if ref == "" {
		return Movement{}, ErrEmptyDocumentRef
	}
	idx := b.itemIndex(in.ItemID)
	if idx < 0 {
		return Movement{}, fmt.Errorf("%w: %s", ErrItemNotFound, in.ItemID)
	}

	item := &b.Items[idx]
	mv := Movement{Before: item.Quantity}

	tx := model.InventoryTransaction{
		ID:          b.newID("tx"),
		FoodItemID:  item.ID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Date:        b.now(),
		DocumentRef: ref,
		Supplier:    in.Supplier,
		Destination: in.Destination,
	}

	switch in.Type {
	case model.MovementEntry:
		item.Quantity += in.Quantity
		if in.PricePerUnit != nil && *in.PricePerUnit > 0 {
			item.LastPrice = *in.PricePerUnit
		}
		tx.PricePerUnit = clonePrice(in.PricePerUnit)
	case model.MovementExit:
		next := item.Quantity - in.Quantity
		if next < 0 {
			mv.Shortfall = -next
			next = 0
		}
		item.Quantity = next
	}

	mv.After = item.Quantity
	mv.Transaction = tx
	b.prepend(tx)
	return mv, nil
}

// RegisterEntry: kalau ItemID kosong tapi Name ada → buat FoodItem baru
// dengan quantity awal = qty; selain itu delegasi ke ApplyMovement(ENTRY).
func (b *Book) RegisterEntry(in EntryInput) (Movement, bool, error) {
	name := strings.TrimSpace(in.Name)
	if in.ItemID == "" && name == "" {
		return Movement{}, false, ErrItemNotSpecified
	}
	if in.ItemID != "" {
		mv, err := b.ApplyMovement(MovementInput{
			ItemID:       in.ItemID,
			Quantity:     in.Quantity,
			Type:         model.MovementEntry,
			DocumentRef:  in.DocumentRef,
			PricePerUnit: in.PricePerUnit,
			Supplier:     in.Supplier,
		})
		return mv, false, err
	}

	if in.Quantity <= 0 {
		return Movement{}, false, ErrInvalidQuantity
	}
	ref := strings.TrimSpace(in.DocumentRef)
	if ref == "" {
		return Movement{}, false, ErrEmptyDocumentRef
	}
	unit := in.Unit
	if !unit.Valid() {
		unit = model.UnitKg
	}
	price := 0.0
	if in.PricePerUnit != nil {
		price = *in.PricePerUnit
	}

	item := model.FoodItem{
		ID:        b.newID("f"),
		Name:      name,
		Unit:      unit,
		Quantity:  in.Quantity,
		MinStock:  in.MinStock,
		LastPrice: price,
	}
	b.Items = append(b.Items, item)

	tx := model.InventoryTransaction{
		ID:           b.newID("tx"),
		FoodItemID:   item.ID,
		Type:         model.MovementEntry,
		Quantity:     in.Quantity,
		PricePerUnit: clonePrice(in.PricePerUnit),
		Date:         b.now(),
		DocumentRef:  ref,
		Supplier:     in.Supplier,
	}
	b.prepend(tx)
	return Movement{Transaction: tx, Before: 0, After: item.Quantity}, true, nil
}

// ReverseDocument memutar balik efek semua transaksi dengan ref tsb lalu
// menghapusnya. ENTRY dibalik = kurangi (clamp 0), EXIT dibalik = tambah.
// lastPrice tidak dipulihkan. Mengembalikan jumlah transaksi yang dibalik.
func (b *Book) ReverseDocument(ref string) int {
	reversed := 0
	kept := b.Transactions[:0:0]
	for _, tx := range b.Transactions {
		if tx.DocumentRef != ref {
			kept = append(kept, tx)
			continue
		}
		reversed++
		idx := b.itemIndex(tx.FoodItemID)
		if idx < 0 {
			continue
		}
		item := &b.Items[idx]
		switch tx.Type {
		case model.MovementEntry:
			item.Quantity -= tx.Quantity
			if item.Quantity < 0 {
				item.Quantity = 0
			}
		case model.MovementExit:
			item.Quantity += tx.Quantity
		}
	}
	if reversed == 0 {
		return 0
	}
	b.Transactions = kept
	return reversed
}

// DeleteItem menghapus item; transaksi historis dibiarkan (dibaca dengan placeholder).
func (b *Book) DeleteItem(id string) error {
	idx := b.itemIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	b.Items = append(b.Items[:idx], b.Items[idx+1:]...)
	return nil
}

func (b *Book) Exists(ref string) bool {
	for _, tx := range b.Transactions {
		if tx.DocumentRef == ref {
			return true
		}
	}
	return false
}

// Clone: deep copy supaya simulasi tidak menyentuh state asli
func (b Book) Clone() Book {
	out := Book{Now: b.Now, NewID: b.NewID}
	out.Items = append([]model.FoodItem(nil), b.Items...)
	out.Transactions = make([]model.InventoryTransaction, len(b.Transactions))
	for i, tx := range b.Transactions {
		tx.PricePerUnit = clonePrice(tx.PricePerUnit)
		out.Transactions[i] = tx
	}
	return out
}
