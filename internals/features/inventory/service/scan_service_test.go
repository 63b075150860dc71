package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"

	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/features/menus/planner"
)

type fakeModel struct {
	answer string
	err    error
	parts  []genai.Part
}

func (f *fakeModel) GenerateText(_ context.Context, parts ...genai.Part) (string, error) {
	f.parts = parts
	return f.answer, f.err
}

var stock = []model.FoodItem{
	{ID: "f1", Name: "Lapte de vacă", Unit: model.UnitLitre, MinStock: 10},
	{ID: "f2", Name: "Făină albă", Unit: model.UnitKg, MinStock: 5},
	{ID: "f3", Name: "Ouă", Unit: model.UnitPiece, MinStock: 30},
}

func TestParseScanStripsFence(t *testing.T) {
	answer := "```json\n{\"docNumber\":\"F123\",\"supplier\":\"METRO\",\"date\":\"2024-03-01\",\"items\":[{\"name\":\"Lapte\",\"unit\":\"litru\",\"qty\":\"12,5\",\"price\":4.2}]}\n```"
	res, err := ParseScan(answer)
	if err != nil {
		t.Fatal(err)
	}
	if res.DocNumber != "F123" || len(res.Items) != 1 || res.Items[0].Qty != 12.5 || res.Items[0].Price != 4.2 {
		t.Fatalf("parsed: %+v", res)
	}
	if _, err := ParseScan("nu pot citi factura"); !errors.Is(err, ErrBadModelAnswer) {
		t.Fatalf("garbage answer: %v", err)
	}
}

func TestMatchItemFolds(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"LAPTE", "f1"},
		{"faina", "f2"},
		{"Făină albă tip 000 1kg", "f2"},
		{"oua", "f3"},
		{"Zahăr", ""},
		{"  ", ""},
	}
	for _, tc := range cases {
		it, ok := MatchItem(tc.name, stock)
		if tc.want == "" {
			if ok {
				t.Errorf("%q: unexpected match %s", tc.name, it.ID)
			}
			continue
		}
		if !ok || it.ID != tc.want {
			t.Errorf("%q: got %v %s, want %s", tc.name, ok, it.ID, tc.want)
		}
	}
}

func TestDraftFromScan(t *testing.T) {
	scan := ScanResult{
		DocNumber: " F9 ",
		Supplier:  "LIDL",
		Date:      "01.03.2024",
		Items: []ScanItem{
			{Name: "faina", Unit: "", Qty: 10, Price: 3},
			{Name: "Zahăr", Unit: "KG", Qty: 2, Price: 5},
			{Name: "Sare", Unit: "pachet", Qty: 1},
		},
	}
	today := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	d := DraftFromScan(scan, stock, today)
	if d.DocNumber != "F9" || d.Date != "2024-03-04" {
		t.Fatalf("header: %+v", d)
	}
	if r := d.Rows[0]; r.IsNew || r.ItemID != "f2" || r.Name != "Făină albă" || r.Unit != model.UnitKg || r.MinStock != 5 {
		t.Fatalf("matched row: %+v", r)
	}
	if r := d.Rows[1]; !r.IsNew || r.Unit != model.UnitKg || r.Name != "Zahăr" {
		t.Fatalf("new row: %+v", r)
	}
	if d.Rows[2].Unit != model.UnitKg {
		t.Fatalf("invalid unit should default to kg: %+v", d.Rows[2])
	}

	rows := d.DocumentRows()
	if rows[0].ItemID != "f2" || rows[0].Name != "" || *rows[0].PricePerUnit != 3 {
		t.Fatalf("existing doc row: %+v", rows[0])
	}
	if rows[1].ItemID != "" || rows[1].Name != "Zahăr" {
		t.Fatalf("new doc row: %+v", rows[1])
	}
	if rows[2].PricePerUnit != nil {
		t.Fatal("zero price should stay unset")
	}
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestScanSendsWebP(t *testing.T) {
	fm := &fakeModel{answer: `{"docNumber":"F1","items":[]}`}
	svc := NewScanService(fm)
	res, err := svc.Scan(context.Background(), pngImage(t), "f.png", "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if res.DocNumber != "F1" {
		t.Fatalf("result: %+v", res)
	}
	blob, ok := fm.parts[1].(genai.Blob)
	if !ok || blob.MIMEType != "image/webp" {
		t.Fatalf("second part should be a webp blob: %#v", fm.parts[1])
	}

	fm.err = errors.New("quota")
	if _, err := svc.Scan(context.Background(), pngImage(t), "f.png", "image/png"); !errors.Is(err, ErrScanFailed) {
		t.Fatalf("model failure: %v", err)
	}
	if _, err := (&ScanService{}).Scan(context.Background(), nil, "", ""); !errors.Is(err, ErrScannerDisabled) {
		t.Fatalf("disabled: %v", err)
	}
}

func TestSuggestIngredients(t *testing.T) {
	fm := &fakeModel{answer: "```json\n[{\"id\":\"f1\",\"qtyPerChild\":0.1},{\"id\":\"f2\",\"qtyPerChild\":0.05},{\"id\":\"zz\",\"qtyPerChild\":1},{\"id\":\"f3\",\"qtyPerChild\":0}]\n```"}
	svc := NewScanService(fm)
	menu := model.DailyMenu{Breakfast: "Lapte cu cereale", Lunch: "Clătite"}
	got, err := svc.SuggestIngredients(context.Background(), menu, stock, []planner.Ingredient{{ItemID: "f2", QtyPerChild: 0.02}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ItemID != "f1" || got[0].QtyPerChild != 0.1 {
		t.Fatalf("suggestions: %+v", got)
	}
	if _, err := svc.SuggestIngredients(context.Background(), model.DailyMenu{Snack1: "Măr"}, stock, nil); !errors.Is(err, ErrEmptyMenu) {
		t.Fatalf("empty menu: %v", err)
	}
}
