// file: internals/features/inventory/service/scan_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/bytedance/sonic"
	"github.com/google/generative-ai-go/genai"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"edugest_backend/internals/features/kindergarten/model"
	ossHelper "edugest_backend/internals/helpers/oss"
	"edugest_backend/internals/state"
)

var (
	ErrScannerDisabled = errors.New("invoice scanning is not configured")
	ErrScanFailed      = errors.New("invoice scan failed")
	ErrBadModelAnswer  = errors.New("model answer is not valid JSON")
	ErrEmptyMenu       = errors.New("menu has no breakfast or lunch")
)

const scanPrompt = `Analizează imaginea acestei facturi de alimente și extrage datele într-un format JSON structurat.
Avem nevoie de:
- docNumber: numărul facturii (ex: "F123")
- supplier: numele furnizorului (ex: "METRO", "LIDL")
- date: data facturii în format YYYY-MM-DD
- items: un array cu obiecte: {name: string, unit: "kg" | "litru" | "buc" | "g", qty: number, price: number}

Reguli importante:
1. Încearcă să standardizezi unitatea de măsură (ex: kg, litru, buc, g).
2. Returnează EXCLUSIV obiectul JSON, fără text explicativ.
3. Dacă nu ești sigur de un produs, pune cel mai apropiat nume citit.`

// number menerima angka JSON maupun string ("12,5" juga)
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = number(v)
	return nil
}

type ScanItem struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Qty   number `json:"qty"`
	Price number `json:"price"`
}

type ScanResult struct {
	DocNumber string     `json:"docNumber"`
	Supplier  string     `json:"supplier"`
	Date      string     `json:"date"`
	Items     []ScanItem `json:"items"`
}

func ParseScan(answer string) (ScanResult, error) {
	var out ScanResult
	if err := sonic.UnmarshalString(stripCodeFence(answer), &out); err != nil {
		return ScanResult{}, fmt.Errorf("%w: %v", ErrBadModelAnswer, err)
	}
	return out, nil
}

type ScanService struct {
	Model TextModel // nil = fitur mati
	WebP  ossHelper.WebPOptions
}

func NewScanService(m TextModel) *ScanService {
	return &ScanService{Model: m, WebP: ossHelper.DefaultWebPOptionsFromEnv()}
}

func (s *ScanService) Enabled() bool { return s != nil && s.Model != nil }

// Scan: gambar di-downscale + webp sebelum dikirim; PDF dikirim apa adanya.
func (s *ScanService) Scan(ctx context.Context, data []byte, filename, mimeType string) (ScanResult, error) {
	if !s.Enabled() {
		return ScanResult{}, ErrScannerDisabled
	}
	blob := genai.Blob{MIMEType: mimeType, Data: data}
	if mimeType != "application/pdf" {
		webpData, err := ossHelper.ConvertToWebP(data, filename, s.WebP)
		if err != nil {
			return ScanResult{}, err
		}
		blob = genai.Blob{MIMEType: "image/webp", Data: webpData}
	}

	answer, err := s.Model.GenerateText(ctx, genai.Text(scanPrompt), blob)
	if err != nil {
		return ScanResult{}, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}
	return ParseScan(answer)
}

type DraftRow struct {
	ItemID   string     `json:"itemId,omitempty"`
	Name     string     `json:"name"`
	Unit     model.Unit `json:"unit"`
	Qty      float64    `json:"qty"`
	Price    float64    `json:"price"`
	MinStock float64    `json:"minStock"`
	IsNew    bool       `json:"isNew"`
}

type Draft struct {
	DocNumber string     `json:"docNumber"`
	Supplier  string     `json:"supplier"`
	Date      string     `json:"date"`
	Rows      []DraftRow `json:"rows"`
}

// fold: lowercase tanpa diakritik ("Făină" → "faina")
func fold(s string) string {
	out, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// MatchItem: item pertama yang namanya memuat nama scan, atau sebaliknya
func MatchItem(name string, items []model.FoodItem) (model.FoodItem, bool) {
	n := fold(name)
	if n == "" {
		return model.FoodItem{}, false
	}
	for _, it := range items {
		in := fold(it.Name)
		if in == "" {
			continue
		}
		if strings.Contains(in, n) || strings.Contains(n, in) {
			return it, true
		}
	}
	return model.FoodItem{}, false
}

// DraftFromScan: hasil scan → draft NIR. Tidak menyentuh state.
func DraftFromScan(scan ScanResult, items []model.FoodItem, today time.Time) Draft {
	d := Draft{
		DocNumber: strings.TrimSpace(scan.DocNumber),
		Supplier:  strings.TrimSpace(scan.Supplier),
		Date:      strings.TrimSpace(scan.Date),
		Rows:      make([]DraftRow, 0, len(scan.Items)),
	}
	if !state.ValidDate(d.Date) {
		d.Date = today.Format(state.DateLayout)
	}
	for _, it := range scan.Items {
		row := DraftRow{Name: strings.TrimSpace(it.Name), Qty: float64(it.Qty), Price: float64(it.Price), IsNew: true}
		unit := model.Unit(strings.ToLower(strings.TrimSpace(it.Unit)))
		if existing, ok := MatchItem(it.Name, items); ok {
			row.ItemID = existing.ID
			row.Name = existing.Name
			row.MinStock = existing.MinStock
			row.IsNew = false
			if !unit.Valid() {
				unit = existing.Unit
			}
		}
		if !unit.Valid() {
			unit = model.UnitKg
		}
		row.Unit = unit
		d.Rows = append(d.Rows, row)
	}
	return d
}

// DocumentRows: draft yang sudah dikoreksi user → baris NIR
func (d Draft) DocumentRows() []state.DocumentRow {
	rows := make([]state.DocumentRow, 0, len(d.Rows))
	for _, r := range d.Rows {
		row := state.DocumentRow{Quantity: r.Qty}
		if r.Price > 0 {
			p := r.Price
			row.PricePerUnit = &p
		}
		if r.IsNew {
			row.Name, row.Unit, row.MinStock = r.Name, r.Unit, r.MinStock
		} else {
			row.ItemID = r.ItemID
		}
		rows = append(rows, row)
	}
	return rows
}
