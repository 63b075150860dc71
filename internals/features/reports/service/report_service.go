// file: internals/features/reports/service/report_service.go
package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"edugest_backend/internals/features/inventory/ledger"
	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/features/menus/planner"
	"edugest_backend/internals/state"
)

type Dashboard struct {
	TotalStudents   int              `json:"totalStudents"`
	ActiveStudents  int              `json:"activeStudents"`
	CriticalItems   []model.FoodItem `json:"criticalItems"`
	CriticalCount   int              `json:"criticalStockCount"`
	PresentToday    int              `json:"presentToday"`
	AttendanceRate  int              `json:"attendanceRate"` // persen, dibulatkan
	MonthlyRevenue  float64          `json:"monthlyRevenue"`
	Currency        string           `json:"currency"`
	Today           string           `json:"today"`
	CurrentMonth    string           `json:"currentMonth"`
	StockValue      float64          `json:"stockValue"`
	PendingMenuDate string           `json:"pendingMenuDate,omitempty"`
}

func BuildDashboard(s *state.AppState, now time.Time) Dashboard {
	today := now.Format(state.DateLayout)
	month := now.Format(state.MonthLayout)
	book := ledger.Book{Items: s.Inventory, Transactions: s.Transactions}

	d := Dashboard{
		TotalStudents: len(s.Students),
		CriticalItems: book.LowStock(),
		Currency:      s.Config.Currency,
		Today:         today,
		CurrentMonth:  month,
		StockValue:    book.StockValue(),
	}
	if d.CriticalItems == nil {
		d.CriticalItems = []model.FoodItem{}
	}
	d.CriticalCount = len(d.CriticalItems)
	for _, st := range s.Students {
		if st.Active {
			d.ActiveStudents++
		}
	}
	for _, a := range s.Attendance {
		if a.Date == today && a.Status == model.AttendancePresent {
			d.PresentToday++
		}
	}
	if d.TotalStudents > 0 {
		d.AttendanceRate = int(math.Round(float64(d.PresentToday) / float64(d.TotalStudents) * 100))
	}
	for _, p := range s.Payments {
		if p.Month == month {
			d.MonthlyRevenue += p.Amount
		}
	}
	// menu hari ini sudah ada tapi BC belum dibuat
	if m, ok := s.FindMenu(today); ok && len(m.ItemsUsed) > 0 && !book.Exists(planner.DocumentRef(today)) {
		d.PendingMenuDate = today
	}
	return d
}

type Expenditure struct {
	Date  string  `json:"date"`
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Unit  string  `json:"unit"`
	Price float64 `json:"price"`
	Total float64 `json:"total"`
	Ref   string  `json:"ref"`
}

type Financial struct {
	Month            string          `json:"month"`
	Payments         []model.Payment `json:"payments"`
	TotalRevenue     float64         `json:"totalRevenue"`
	Expenditures     []Expenditure   `json:"expenditures"`
	TotalExpenditure float64         `json:"totalExpenditure"`
	Balance          float64         `json:"balance"`
}

// BuildFinancial: pendapatan = payment dengan month == M; pengeluaran = EXIT
// bertanggal di bulan M, dinilai dengan lastPrice item saat ini.
func BuildFinancial(s *state.AppState, month string) Financial {
	f := Financial{Month: month, Payments: []model.Payment{}, Expenditures: []Expenditure{}}
	for _, p := range s.Payments {
		if p.Month == month {
			f.Payments = append(f.Payments, p)
			f.TotalRevenue += p.Amount
		}
	}
	for _, tx := range s.Transactions {
		if tx.Type != model.MovementExit || tx.Date.Format(state.MonthLayout) != month {
			continue
		}
		e := Expenditure{
			Date: tx.Date.Format(state.DateLayout),
			Name: model.DeletedItemLabel,
			Qty:  tx.Quantity,
			Unit: "-",
			Ref:  tx.DocumentRef,
		}
		if it, ok := s.FindItem(tx.FoodItemID); ok {
			e.Name = it.Name
			e.Unit = string(it.Unit)
			e.Price = it.LastPrice
		}
		e.Total = e.Qty * e.Price
		f.TotalExpenditure += e.Total
		f.Expenditures = append(f.Expenditures, e)
	}
	f.Balance = f.TotalRevenue - f.TotalExpenditure
	return f
}

type AttendanceRow struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	Present   int    `json:"present"`
	Absent    int    `json:"absent"`
	Motivated int    `json:"motivated"`
}

// BuildAttendanceSummary: hitungan per anak untuk satu bulan; group kosong = semua
func BuildAttendanceSummary(s *state.AppState, month, group string) []AttendanceRow {
	prefix := month + "-"
	rows := make([]AttendanceRow, 0, len(s.Students))
	index := map[string]int{}
	for _, st := range s.Students {
		if group != "" && st.Group != group {
			continue
		}
		index[st.ID] = len(rows)
		rows = append(rows, AttendanceRow{StudentID: st.ID, Name: st.FullName(), Group: st.Group})
	}
	for _, a := range s.Attendance {
		i, ok := index[a.StudentID]
		if !ok || !strings.HasPrefix(a.Date, prefix) {
			continue
		}
		switch a.Status {
		case model.AttendancePresent:
			rows[i].Present++
		case model.AttendanceAbsent:
			rows[i].Absent++
		case model.AttendanceExcused:
			rows[i].Motivated++
		}
	}
	return rows
}

type GridRow struct {
	Student model.Student            `json:"student"`
	Days    []model.AttendanceStatus `json:"days"` // index 0 = tanggal 1
	AttendanceRow
}

type Grid struct {
	Month string    `json:"month"`
	Group string    `json:"group"`
	Days  int       `json:"days"`
	Rows  []GridRow `json:"rows"`
}

// BuildAttendanceGrid: grid bulanan untuk anak aktif di satu grup
func BuildAttendanceGrid(s *state.AppState, month, group string) (Grid, error) {
	first, err := time.Parse(state.MonthLayout, month)
	if err != nil {
		return Grid{}, fmt.Errorf("month: %w", err)
	}
	days := first.AddDate(0, 1, -1).Day()
	g := Grid{Month: month, Group: group, Days: days, Rows: []GridRow{}}

	status := map[string]model.AttendanceStatus{}
	for _, a := range s.Attendance {
		status[a.StudentID+"|"+a.Date] = a.Status
	}
	for _, st := range s.Students {
		if !st.Active || (group != "" && st.Group != group) {
			continue
		}
		row := GridRow{Student: st, Days: make([]model.AttendanceStatus, days)}
		row.AttendanceRow = AttendanceRow{StudentID: st.ID, Name: st.FullName(), Group: st.Group}
		for d := 1; d <= days; d++ {
			date := fmt.Sprintf("%s-%02d", month, d)
			v, ok := status[st.ID+"|"+date]
			if !ok {
				v = model.AttendanceNotTaken
			}
			row.Days[d-1] = v
			switch v {
			case model.AttendancePresent:
				row.Present++
			case model.AttendanceAbsent:
				row.Absent++
			case model.AttendanceExcused:
				row.Motivated++
			}
		}
		g.Rows = append(g.Rows, row)
	}
	sort.SliceStable(g.Rows, func(i, j int) bool { return g.Rows[i].Name < g.Rows[j].Name })
	return g, nil
}
