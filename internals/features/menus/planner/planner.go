// file: internals/features/menus/planner/planner.go
//
// Planner mengikat menu harian dengan resep (item + qty per anak) dan
// mengubahnya menjadi Bon de Consum: satu EXIT per bahan, diskalakan dengan
// jumlah anak hadir.
package planner

import (
	"errors"
	"math"
	"strings"

	"edugest_backend/internals/features/inventory/ledger"
	"edugest_backend/internals/features/kindergarten/model"
)

var (
	ErrConsumptionExists = errors.New("consumption document already exists for this date")
	ErrInsufficientStock = errors.New("insufficient stock for one or more ingredients")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
)

type Status string

const (
	StatusUnplanned Status = "UNPLANNED"
	StatusDrafted   Status = "DRAFTED"
	StatusConsumed  Status = "CONSUMED"
)

type Ingredient struct {
	ItemID      string  `json:"itemId"`
	QtyPerChild float64 `json:"qtyPerChild"`
}

type Line struct {
	ItemID         string  `json:"itemId"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	QtyPerChild    float64 `json:"qtyPerChild"`
	TotalQty       float64 `json:"totalQty"`
	AvailableStock float64 `json:"availableStock"`
	Insufficient   bool    `json:"insufficient"`
	Missing        bool    `json:"missing,omitempty"`
}

type Options struct {
	ConfirmReplace    bool
	AllowInsufficient bool
}

// InsufficientError membawa baris-baris yang stoknya kurang.
type InsufficientError struct {
	Lines []Line
}

func (e *InsufficientError) Error() string {
	names := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		names = append(names, l.Name)
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(names, ", ")
}

func (e *InsufficientError) Is(target error) bool { return target == ErrInsufficientStock }

type Consumption struct {
	Ref          string              `json:"ref"`
	Date         string              `json:"date"`
	PresentCount int                 `json:"presentCount"`
	Replaced     bool                `json:"replaced"`
	Lines        []Line              `json:"lines"`
	ItemsUsed    []model.MenuItemUse `json:"itemsUsed"`
	Movements    []ledger.Movement   `json:"movements"`
}

// DocumentRef: BC-YYYYMMDD
func DocumentRef(date string) string {
	return "BC-" + strings.ReplaceAll(date, "-", "")
}

// PresentCount = jumlah PREZENT di tanggal tsb; kalau belum ada satupun,
// dianggap semua anak aktif hadir.
func PresentCount(attendance []model.AttendanceRecord, students []model.Student, date string) int {
	n := 0
	for _, a := range attendance {
		if a.Date == date && a.Status == model.AttendancePresent {
			n++
		}
	}
	if n > 0 {
		return n
	}
	for _, s := range students {
		if s.Active {
			n++
		}
	}
	return n
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Plan menghitung totalQty per bahan terhadap stok yang ada di items.
func Plan(ingredients []Ingredient, presentCount int, items []model.FoodItem) []Line {
	byID := make(map[string]model.FoodItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	lines := make([]Line, 0, len(ingredients))
	for _, ing := range ingredients {
		l := Line{
			ItemID:      ing.ItemID,
			QtyPerChild: ing.QtyPerChild,
			TotalQty:    round3(ing.QtyPerChild * float64(presentCount)),
		}
		if it, ok := byID[ing.ItemID]; ok {
			l.Name = it.Name
			l.Unit = string(it.Unit)
			l.AvailableStock = it.Quantity
		} else {
			l.Name = model.DeletedItemLabel
			l.Unit = "-"
			l.Missing = true
		}
		l.Insufficient = l.TotalQty > l.AvailableStock
		lines = append(lines, l)
	}
	return lines
}

func MenuStatus(menus []model.DailyMenu, book *ledger.Book, date string) Status {
	if book != nil && book.Exists(DocumentRef(date)) {
		return StatusConsumed
	}
	for _, m := range menus {
		if m.Date == date {
			return StatusDrafted
		}
	}
	return StatusUnplanned
}

// Consume menjalankan reverse-then-reapply di atas salinan book. Kedua gate
// (dokumen sudah ada, stok kurang) dicek sebelum book asli disentuh; kalau
// lolos, book diganti dengan salinan yang sudah dimutasi.
func Consume(book *ledger.Book, date string, ingredients []Ingredient, presentCount int, opts Options) (Consumption, error) {
	if !validDate(date) {
		return Consumption{}, ErrInvalidDate
	}
	ref := DocumentRef(date)
	out := Consumption{Ref: ref, Date: date, PresentCount: presentCount}

	exists := book.Exists(ref)
	if exists && !opts.ConfirmReplace {
		return out, ErrConsumptionExists
	}

	work := book.Clone()
	if exists {
		work.ReverseDocument(ref)
		out.Replaced = true
	}

	out.Lines = Plan(ingredients, presentCount, work.Items)

	var short []Line
	for _, l := range out.Lines {
		if l.Missing && l.TotalQty > 0 {
			return out, ledger.ErrItemNotFound
		}
		if l.Insufficient && l.TotalQty > 0 {
			short = append(short, l)
		}
	}
	if len(short) > 0 && !opts.AllowInsufficient {
		return out, &InsufficientError{Lines: short}
	}

	out.ItemsUsed = make([]model.MenuItemUse, 0, len(out.Lines))
	for _, l := range out.Lines {
		out.ItemsUsed = append(out.ItemsUsed, model.MenuItemUse{ItemID: l.ItemID, Quantity: l.TotalQty})
		if l.TotalQty <= 0 {
			continue
		}
		mv, err := work.ApplyMovement(ledger.MovementInput{
			ItemID:      l.ItemID,
			Quantity:    l.TotalQty,
			Type:        model.MovementExit,
			DocumentRef: ref,
			Destination: "Bucătărie",
		})
		if err != nil {
			return out, err
		}
		out.Movements = append(out.Movements, mv)
	}

	*book = work
	return out, nil
}

func validDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
