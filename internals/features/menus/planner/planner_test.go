package planner

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"edugest_backend/internals/features/inventory/ledger"
	"edugest_backend/internals/features/kindergarten/model"
)

func activeStudents(n int) []model.Student {
	out := make([]model.Student, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, model.Student{ID: fmt.Sprintf("s%d", i), Active: true})
	}
	// inactive never counts
	out = append(out, model.Student{ID: "gone", Active: false})
	return out
}

func testBook(items ...model.FoodItem) *ledger.Book {
	n := 0
	return &ledger.Book{
		Items: items,
		Now:   func() time.Time { return time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC) },
		NewID: func(p string) string { n++; return fmt.Sprintf("%s-%d", p, n) },
	}
}

func pui() model.FoodItem {
	return model.FoodItem{ID: "f4", Name: "Piept de pui", Unit: model.UnitKg, Quantity: 20, MinStock: 5, LastPrice: 28}
}

func TestDocumentRef(t *testing.T) {
	if got := DocumentRef("2024-03-04"); got != "BC-20240304" {
		t.Fatalf("got %s", got)
	}
}

func TestPresentCountFallback(t *testing.T) {
	students := activeStudents(20)
	if n := PresentCount(nil, students, "2024-03-04"); n != 20 {
		t.Fatalf("fallback to active students: want 20, got %d", n)
	}
	att := []model.AttendanceRecord{
		{StudentID: "s0", Date: "2024-03-04", Status: model.AttendancePresent},
		{StudentID: "s1", Date: "2024-03-04", Status: model.AttendanceAbsent},
		{StudentID: "s2", Date: "2024-03-04", Status: model.AttendancePresent},
		{StudentID: "s3", Date: "2024-03-05", Status: model.AttendancePresent},
	}
	if n := PresentCount(att, students, "2024-03-04"); n != 2 {
		t.Fatalf("want 2, got %d", n)
	}
}

func TestConsumeTwentyChildren(t *testing.T) {
	book := testBook(pui())
	present := PresentCount(nil, activeStudents(20), "2024-03-04")

	res, err := Consume(book, "2024-03-04", []Ingredient{{ItemID: "f4", QtyPerChild: 0.1}}, present, Options{})
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if res.Ref != "BC-20240304" {
		t.Fatalf("ref %s", res.Ref)
	}
	if len(res.Lines) != 1 || res.Lines[0].TotalQty != 2.0 {
		t.Fatalf("want totalQty 2.0, got %+v", res.Lines)
	}
	if len(book.Transactions) != 1 {
		t.Fatalf("want one EXIT, got %d", len(book.Transactions))
	}
	tx := book.Transactions[0]
	if tx.Type != model.MovementExit || tx.Quantity != 2.0 || tx.DocumentRef != "BC-20240304" {
		t.Fatalf("unexpected tx %+v", tx)
	}
	it, _ := book.FindItem("f4")
	if it.Quantity != 18 {
		t.Fatalf("stock want 18, got %v", it.Quantity)
	}
	if len(res.ItemsUsed) != 1 || res.ItemsUsed[0].Quantity != 2.0 {
		t.Fatalf("itemsUsed holds totals: %+v", res.ItemsUsed)
	}
}

func TestConsumeReplaceRequiresConfirmation(t *testing.T) {
	book := testBook(pui())
	ing := []Ingredient{{ItemID: "f4", QtyPerChild: 0.1}}
	if _, err := Consume(book, "2024-03-04", ing, 20, Options{}); err != nil {
		t.Fatal(err)
	}

	if _, err := Consume(book, "2024-03-04", ing, 10, Options{}); !errors.Is(err, ErrConsumptionExists) {
		t.Fatalf("want ErrConsumptionExists, got %v", err)
	}
	it, _ := book.FindItem("f4")
	if it.Quantity != 18 {
		t.Fatalf("refused regeneration must not touch stock, got %v", it.Quantity)
	}

	res, err := Consume(book, "2024-03-04", ing, 10, Options{ConfirmReplace: true})
	if err != nil || !res.Replaced {
		t.Fatalf("replace: replaced=%v err=%v", res.Replaced, err)
	}
	it, _ = book.FindItem("f4")
	if it.Quantity != 19 {
		t.Fatalf("reverse-then-reapply: want 19, got %v", it.Quantity)
	}
	if len(book.Transactions) != 1 || book.Transactions[0].Quantity != 1 {
		t.Fatalf("old BC lines must be gone: %+v", book.Transactions)
	}
}

func TestConsumeInsufficientGate(t *testing.T) {
	item := pui()
	item.Quantity = 1
	book := testBook(item)
	ing := []Ingredient{{ItemID: "f4", QtyPerChild: 0.1}}

	_, err := Consume(book, "2024-03-04", ing, 20, Options{})
	var ie *InsufficientError
	if !errors.As(err, &ie) || !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want InsufficientError, got %v", err)
	}
	if len(ie.Lines) != 1 || ie.Lines[0].ItemID != "f4" {
		t.Fatalf("lines %+v", ie.Lines)
	}
	if len(book.Transactions) != 0 {
		t.Fatal("gate must not mutate")
	}

	if _, err := Consume(book, "2024-03-04", ing, 20, Options{AllowInsufficient: true}); err != nil {
		t.Fatal(err)
	}
	it, _ := book.FindItem("f4")
	if it.Quantity != 0 || book.Transactions[0].Quantity != 2 {
		t.Fatalf("clamped stock, requested qty logged: qty=%v tx=%v", it.Quantity, book.Transactions[0].Quantity)
	}
}

func TestConsumeSkipsZeroLines(t *testing.T) {
	book := testBook(pui(), model.FoodItem{ID: "f1", Name: "Lapte", Unit: model.UnitLitre, Quantity: 45})
	res, err := Consume(book, "2024-03-04", []Ingredient{{ItemID: "f4", QtyPerChild: 0.1}, {ItemID: "f1", QtyPerChild: 0}}, 20, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Movements) != 1 || len(res.ItemsUsed) != 2 {
		t.Fatalf("movements=%d itemsUsed=%d", len(res.Movements), len(res.ItemsUsed))
	}
}

func TestConsumeRejectsBadDate(t *testing.T) {
	if _, err := Consume(testBook(), "04.03.2024", nil, 1, Options{}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("got %v", err)
	}
}

func TestMenuStatus(t *testing.T) {
	book := testBook(pui())
	menus := []model.DailyMenu{{ID: model.MenuID("2024-03-05"), Date: "2024-03-05"}}

	if s := MenuStatus(menus, book, "2024-03-04"); s != StatusUnplanned {
		t.Fatalf("got %s", s)
	}
	if s := MenuStatus(menus, book, "2024-03-05"); s != StatusDrafted {
		t.Fatalf("got %s", s)
	}
	_, _ = Consume(book, "2024-03-05", []Ingredient{{ItemID: "f4", QtyPerChild: 0.1}}, 3, Options{})
	if s := MenuStatus(menus, book, "2024-03-05"); s != StatusConsumed {
		t.Fatalf("got %s", s)
	}
}
