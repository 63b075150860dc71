package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"edugest_backend/internals/features/kindergarten/model"
)

func newTestBook(items ...model.FoodItem) *Book {
	n := 0
	base := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	return &Book{
		Items: items,
		Now: func() time.Time {
			n++
			return base.Add(time.Duration(n) * time.Minute)
		},
		NewID: func(prefix string) string {
			return fmt.Sprintf("%s-%d", prefix, n)
		},
	}
}

func price(v float64) *float64 { return &v }

func lapte() model.FoodItem {
	return model.FoodItem{ID: "f1", Name: "Lapte 3.5%", Unit: model.UnitLitre, Quantity: 45, MinStock: 10, LastPrice: 6.5}
}

func TestLapteScenario(t *testing.T) {
	b := newTestBook(lapte())

	if _, err := b.ApplyMovement(MovementInput{ItemID: "f1", Quantity: 10, Type: model.MovementEntry, DocumentRef: "NIR-1", PricePerUnit: price(7)}); err != nil {
		t.Fatalf("entry: %v", err)
	}
	it, _ := b.FindItem("f1")
	if it.Quantity != 55 || it.LastPrice != 7 {
		t.Fatalf("after entry: qty=%v lastPrice=%v", it.Quantity, it.LastPrice)
	}

	mv, err := b.ApplyMovement(MovementInput{ItemID: "f1", Quantity: 60, Type: model.MovementExit, DocumentRef: "BC-1"})
	if err != nil {
		t.Fatalf("exit: %v", err)
	}
	it, _ = b.FindItem("f1")
	if it.Quantity != 0 {
		t.Fatalf("exit must clamp to 0, got %v", it.Quantity)
	}
	if mv.Transaction.Quantity != 60 {
		t.Fatalf("logged quantity must be the requested 60, got %v", mv.Transaction.Quantity)
	}
	if mv.Shortfall != 5 {
		t.Fatalf("shortfall want 5, got %v", mv.Shortfall)
	}

	if n := b.ReverseDocument("BC-1"); n != 1 {
		t.Fatalf("reverse count want 1, got %d", n)
	}
	it, _ = b.FindItem("f1")
	if it.Quantity != 60 {
		t.Fatalf("reversal adds back logged qty; want 60, got %v", it.Quantity)
	}
	if it.LastPrice != 7 {
		t.Fatalf("reversal must not touch lastPrice, got %v", it.LastPrice)
	}
}

func TestReverseIsIdempotent(t *testing.T) {
	b := newTestBook(lapte(), model.FoodItem{ID: "f2", Name: "Pâine", Unit: model.UnitPiece, Quantity: 12})

	for _, in := range []MovementInput{
		{ItemID: "f1", Quantity: 5, Type: model.MovementExit, DocumentRef: "BC-2"},
		{ItemID: "f2", Quantity: 3, Type: model.MovementExit, DocumentRef: "BC-2"},
		{ItemID: "f2", Quantity: 4, Type: model.MovementEntry, DocumentRef: "NIR-9"},
	} {
		if _, err := b.ApplyMovement(in); err != nil {
			t.Fatalf("apply %+v: %v", in, err)
		}
	}

	if n := b.ReverseDocument("BC-2"); n != 2 {
		t.Fatalf("first reverse want 2, got %d", n)
	}
	f1, _ := b.FindItem("f1")
	f2, _ := b.FindItem("f2")
	if f1.Quantity != 45 || f2.Quantity != 16 {
		t.Fatalf("unclamped reverse must restore: f1=%v f2=%v", f1.Quantity, f2.Quantity)
	}

	if n := b.ReverseDocument("BC-2"); n != 0 {
		t.Fatalf("second reverse must be a no-op, got %d", n)
	}
	f1b, _ := b.FindItem("f1")
	f2b, _ := b.FindItem("f2")
	if f1b.Quantity != f1.Quantity || f2b.Quantity != f2.Quantity {
		t.Fatal("second reverse changed quantities")
	}
	if len(b.Transactions) != 1 || b.Transactions[0].DocumentRef != "NIR-9" {
		t.Fatalf("unrelated transactions must survive: %+v", b.Transactions)
	}
}

func TestReverseEntryClampsAtZero(t *testing.T) {
	b := newTestBook(model.FoodItem{ID: "f3", Name: "Mere", Unit: model.UnitKg, Quantity: 2})
	_, _ = b.ApplyMovement(MovementInput{ItemID: "f3", Quantity: 10, Type: model.MovementEntry, DocumentRef: "NIR-1"})
	_, _ = b.ApplyMovement(MovementInput{ItemID: "f3", Quantity: 11, Type: model.MovementExit, DocumentRef: "BC-1"})

	b.ReverseDocument("NIR-1")
	it, _ := b.FindItem("f3")
	if it.Quantity != 0 {
		t.Fatalf("want clamp to 0, got %v", it.Quantity)
	}
}

func TestApplyMovementValidation(t *testing.T) {
	cases := []struct {
		name string
		in   MovementInput
		want error
	}{
		{"zero qty", MovementInput{ItemID: "f1", Quantity: 0, Type: model.MovementExit, DocumentRef: "X"}, ErrInvalidQuantity},
		{"bad type", MovementInput{ItemID: "f1", Quantity: 1, Type: "MOVE", DocumentRef: "X"}, ErrInvalidMovement},
		{"no ref", MovementInput{ItemID: "f1", Quantity: 1, Type: model.MovementExit, DocumentRef: "  "}, ErrEmptyDocumentRef},
		{"unknown item", MovementInput{ItemID: "nope", Quantity: 1, Type: model.MovementExit, DocumentRef: "X"}, ErrItemNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBook(lapte())
			if _, err := b.ApplyMovement(tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			if len(b.Transactions) != 0 {
				t.Fatal("failed movement must not log")
			}
		})
	}
}

func TestEntryWithoutPriceKeepsLastPrice(t *testing.T) {
	b := newTestBook(lapte())
	_, _ = b.ApplyMovement(MovementInput{ItemID: "f1", Quantity: 1, Type: model.MovementEntry, DocumentRef: "NIR-1"})
	_, _ = b.ApplyMovement(MovementInput{ItemID: "f1", Quantity: 1, Type: model.MovementEntry, DocumentRef: "NIR-2", PricePerUnit: price(0)})
	it, _ := b.FindItem("f1")
	if it.LastPrice != 6.5 {
		t.Fatalf("lastPrice changed to %v", it.LastPrice)
	}
}

func TestRegisterEntryCreatesItem(t *testing.T) {
	b := newTestBook(lapte())
	mv, created, err := b.RegisterEntry(EntryInput{Name: "Orez", Unit: model.UnitKg, MinStock: 2, Quantity: 8, PricePerUnit: price(6), DocumentRef: "NIR-5", Supplier: "Metro"})
	if err != nil || !created {
		t.Fatalf("register: created=%v err=%v", created, err)
	}
	it, ok := b.FindItem(mv.Transaction.FoodItemID)
	if !ok || it.Name != "Orez" || it.Quantity != 8 || it.LastPrice != 6 {
		t.Fatalf("unexpected item %+v", it)
	}
	if len(b.Transactions) != 1 || b.Transactions[0].Supplier != "Metro" {
		t.Fatalf("want one ENTRY with supplier, got %+v", b.Transactions)
	}

	_, created, err = b.RegisterEntry(EntryInput{ItemID: "f1", Quantity: 5, DocumentRef: "NIR-5", Supplier: "Metro"})
	if err != nil || created {
		t.Fatalf("existing item: created=%v err=%v", created, err)
	}
	f1, _ := b.FindItem("f1")
	if f1.Quantity != 50 {
		t.Fatalf("want 50, got %v", f1.Quantity)
	}

	if _, _, err := b.RegisterEntry(EntryInput{Quantity: 1, DocumentRef: "NIR-5"}); !errors.Is(err, ErrItemNotSpecified) {
		t.Fatalf("want ErrItemNotSpecified, got %v", err)
	}
}

func TestDocumentsGrouping(t *testing.T) {
	b := newTestBook(lapte(), model.FoodItem{ID: "f4", Name: "Piept de pui", Unit: model.UnitKg, Quantity: 20, LastPrice: 28})
	_, _ = b.ApplyMovement(MovementInput{ItemID: "f1", Quantity: 10, Type: model.MovementEntry, DocumentRef: "NIR-1", PricePerUnit: price(7), Supplier: "Agro"})
	_, _ = b.ApplyMovement(MovementInput{ItemID: "f4", Quantity: 2, Type: model.MovementEntry, DocumentRef: "NIR-1", Supplier: "Agro"})
	_, _ = b.ApplyMovement(MovementInput{ItemID: "f4", Quantity: 1.5, Type: model.MovementExit, DocumentRef: "BC-20240304"})

	docs := b.Documents()
	if len(docs) != 2 {
		t.Fatalf("want 2 documents, got %d", len(docs))
	}
	if docs[0].Ref != "BC-20240304" || docs[0].Supplier != "-" {
		t.Fatalf("newest first, supplier dash: %+v", docs[0])
	}
	nir := docs[1]
	if nir.ItemsCount != 2 || nir.TotalValue != 10*7+2*28 || nir.Type != model.MovementEntry {
		t.Fatalf("unexpected NIR summary %+v", nir)
	}

	if err := b.DeleteItem("f4"); err != nil {
		t.Fatal(err)
	}
	d, ok := b.Document("NIR-1")
	if !ok || len(d.Lines) != 2 {
		t.Fatalf("document lookup failed: %+v", d)
	}
	var placeholder bool
	for _, l := range d.Lines {
		if l.Name == model.DeletedItemLabel {
			placeholder = true
			if l.Value != 0 {
				t.Fatalf("deleted item without price is valued at 0, got %v", l.Value)
			}
		}
	}
	if !placeholder {
		t.Fatal("deleted item must render with placeholder label")
	}
	if _, ok := b.Document("NIR-404"); ok {
		t.Fatal("unknown ref must not be found")
	}
}

func TestLowStockAndValue(t *testing.T) {
	b := newTestBook(
		model.FoodItem{ID: "a", Quantity: 5, MinStock: 5, LastPrice: 2},
		model.FoodItem{ID: "b", Quantity: 6, MinStock: 5, LastPrice: 1},
	)
	low := b.LowStock()
	if len(low) != 1 || low[0].ID != "a" {
		t.Fatalf("low stock uses <=, got %+v", low)
	}
	if v := b.StockValue(); v != 16 {
		t.Fatalf("stock value want 16, got %v", v)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := newTestBook(lapte())
	_, _ = b.ApplyMovement(MovementInput{ItemID: "f1", Quantity: 1, Type: model.MovementEntry, DocumentRef: "NIR-1", PricePerUnit: price(7)})
	c := b.Clone()
	c.Items[0].Quantity = 0
	*c.Transactions[0].PricePerUnit = 99
	if b.Items[0].Quantity != 46 || *b.Transactions[0].PricePerUnit != 7 {
		t.Fatal("clone shares memory with original")
	}
}

func TestEntryPriceIsCopied(t *testing.T) {
	b := newTestBook(lapte())
	p := price(7)
	if _, err := b.ApplyMovement(MovementInput{ItemID: "f1", Quantity: 1, Type: model.MovementEntry, DocumentRef: "NIR-1", PricePerUnit: p}); err != nil {
		t.Fatal(err)
	}
	*p = 99
	if got := *b.Transactions[0].PricePerUnit; got != 7 {
		t.Fatalf("transaction price follows caller pointer: %v", got)
	}

	c := b.Clone()
	*c.Transactions[0].PricePerUnit = 1
	if got := *b.Transactions[0].PricePerUnit; got != 7 {
		t.Fatalf("clone shares price pointer: %v", got)
	}
}
