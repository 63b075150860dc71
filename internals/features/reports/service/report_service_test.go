package service

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/state"
)

func day(s string) time.Time {
	t, _ := time.Parse(state.DateLayout, s)
	return t
}

func sampleState() *state.AppState {
	return &state.AppState{
		Config: model.AppConfig{FoodCostPerDay: 25, Currency: "RON", Groups: []string{"Mica", "Mare"}},
		Parents: []model.Parent{
			{ID: "p1", Name: "Ion Popescu", Phone: "0722", Email: "ion@x.ro"},
		},
		Students: []model.Student{
			{ID: "s1", FirstName: "Ana", LastName: "Popescu", Group: "Mica", ParentID: "p1", Active: true},
			{ID: "s2", FirstName: "Bogdan", LastName: "Albu", Group: "Mica", ParentID: "p1", Active: true},
			{ID: "s3", FirstName: "Cezar", LastName: "Dinu", Group: "Mare", ParentID: "p1", Active: false},
		},
		Attendance: []model.AttendanceRecord{
			{ID: "2024-03-04-s1", StudentID: "s1", Date: "2024-03-04", Status: model.AttendancePresent},
			{ID: "2024-03-05-s1", StudentID: "s1", Date: "2024-03-05", Status: model.AttendanceExcused},
			{ID: "2024-03-04-s2", StudentID: "s2", Date: "2024-03-04", Status: model.AttendanceAbsent},
			{ID: "2024-02-28-s2", StudentID: "s2", Date: "2024-02-28", Status: model.AttendancePresent},
		},
		Payments: []model.Payment{
			{ID: "pay1", StudentID: "s1", Amount: 100, Month: "2024-03", Method: model.PaymentCash, InvoiceNumber: "F1", Date: day("2024-03-02")},
			{ID: "pay2", StudentID: "s2", Amount: 40, Month: "2024-02", Method: model.PaymentCard, InvoiceNumber: "F2", Date: day("2024-02-10")},
			{ID: "pay3", StudentID: "gone", Amount: 10, Month: "2024-03", Method: model.PaymentTransfer, InvoiceNumber: "F3", Date: day("2024-03-03")},
		},
		Inventory: []model.FoodItem{
			{ID: "f1", Name: "Lapte", Unit: model.UnitLitre, Quantity: 4, MinStock: 5, LastPrice: 6},
			{ID: "f2", Name: "Paine", Unit: model.UnitPiece, Quantity: 20, MinStock: 2, LastPrice: 3},
		},
		Transactions: []model.InventoryTransaction{
			{ID: "t1", FoodItemID: "f1", Type: model.MovementExit, Quantity: 2, Date: day("2024-03-04"), DocumentRef: "BC-20240304"},
			{ID: "t2", FoodItemID: "zz", Type: model.MovementExit, Quantity: 1, Date: day("2024-03-04"), DocumentRef: "BC-20240304"},
			{ID: "t3", FoodItemID: "f2", Type: model.MovementExit, Quantity: 5, Date: day("2024-02-20"), DocumentRef: "BC-20240220"},
			{ID: "t4", FoodItemID: "f2", Type: model.MovementEntry, Quantity: 10, Date: day("2024-03-01"), DocumentRef: "NIR-1"},
		},
		Menus: []model.DailyMenu{
			{ID: "menu-2024-03-05", Date: "2024-03-05", ItemsUsed: []model.MenuItemUse{{ItemID: "f1", Quantity: 1}}},
		},
	}
}

func TestDashboard(t *testing.T) {
	s := sampleState()
	d := BuildDashboard(s, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	if d.TotalStudents != 3 || d.ActiveStudents != 2 {
		t.Fatalf("students: %+v", d)
	}
	if d.PresentToday != 1 || d.AttendanceRate != 33 {
		t.Fatalf("presence: present=%d rate=%d", d.PresentToday, d.AttendanceRate)
	}
	if d.MonthlyRevenue != 110 {
		t.Fatalf("revenue: %v", d.MonthlyRevenue)
	}
	if d.CriticalCount != 1 || d.CriticalItems[0].ID != "f1" {
		t.Fatalf("critical: %+v", d.CriticalItems)
	}
	if d.StockValue != 4*6+20*3 {
		t.Fatalf("stock value: %v", d.StockValue)
	}
	if d.PendingMenuDate != "" {
		t.Fatalf("no menu today, got pending %q", d.PendingMenuDate)
	}

	d = BuildDashboard(s, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	if d.PendingMenuDate != "2024-03-05" {
		t.Fatalf("menu without BC should be pending, got %q", d.PendingMenuDate)
	}
}

func TestDashboardEmpty(t *testing.T) {
	d := BuildDashboard(&state.AppState{}, time.Now())
	if d.AttendanceRate != 0 || d.CriticalItems == nil {
		t.Fatalf("empty dashboard: %+v", d)
	}
}

func TestFinancial(t *testing.T) {
	f := BuildFinancial(sampleState(), "2024-03")
	if f.TotalRevenue != 110 || len(f.Payments) != 2 {
		t.Fatalf("revenue: %v (%d)", f.TotalRevenue, len(f.Payments))
	}
	if len(f.Expenditures) != 2 {
		t.Fatalf("expected 2 exits in march, got %d", len(f.Expenditures))
	}
	if f.TotalExpenditure != 12 {
		t.Fatalf("expenditure: %v", f.TotalExpenditure)
	}
	if f.Expenditures[1].Name != model.DeletedItemLabel || f.Expenditures[1].Total != 0 {
		t.Fatalf("deleted item row: %+v", f.Expenditures[1])
	}
	if math.Abs(f.Balance-98) > 1e-9 {
		t.Fatalf("balance: %v", f.Balance)
	}
}

func TestAttendanceSummaryAndGrid(t *testing.T) {
	s := sampleState()
	rows := BuildAttendanceSummary(s, "2024-03", "Mica")
	if len(rows) != 2 {
		t.Fatalf("rows: %d", len(rows))
	}
	if rows[0].Present != 1 || rows[0].Motivated != 1 || rows[1].Absent != 1 || rows[1].Present != 0 {
		t.Fatalf("counts: %+v", rows)
	}

	g, err := BuildAttendanceGrid(s, "2024-02", "")
	if err != nil {
		t.Fatal(err)
	}
	if g.Days != 29 || len(g.Rows) != 2 {
		t.Fatalf("grid: days=%d rows=%d", g.Days, len(g.Rows))
	}
	// urut nama: Albu sebelum Popescu
	if g.Rows[0].StudentID != "s2" || g.Rows[0].Days[27] != model.AttendancePresent || g.Rows[0].Days[0] != model.AttendanceNotTaken {
		t.Fatalf("grid row: %+v", g.Rows[0])
	}
	if _, err := BuildAttendanceGrid(s, "2024/02", ""); err == nil {
		t.Fatal("expected month error")
	}
}

func sheetRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("rows %s: %v", sheet, err)
	}
	return rows
}

func TestWorkbooks(t *testing.T) {
	s := sampleState()

	data, err := Workbook(s, KindStudents, "")
	if err != nil {
		t.Fatal(err)
	}
	rows := sheetRows(t, data, "Listă Elevi")
	if len(rows) != 4 || rows[0][0] != "Nume" || rows[3][7] != "Inactiv" {
		t.Fatalf("students sheet: %v", rows)
	}

	data, err = Workbook(s, KindPayments, "2024-03")
	if err != nil {
		t.Fatal(err)
	}
	rows = sheetRows(t, data, "Registru Încasări")
	if len(rows) != 3 || rows[2][2] != "Elev Șters" {
		t.Fatalf("payments sheet: %v", rows)
	}

	data, err = Workbook(s, KindFinancial, "2024-03")
	if err != nil {
		t.Fatal(err)
	}
	rows = sheetRows(t, data, "Rezumat Financiar")
	if len(rows) != 4 || rows[3][0] != "Balanță Netă" || rows[3][1] != "98" {
		t.Fatalf("financial summary: %v", rows)
	}
	if got := sheetRows(t, data, "Detalii Cheltuieli"); len(got) != 3 {
		t.Fatalf("expenditure details: %v", got)
	}

	data, err = Workbook(s, KindAll, "2024-03")
	if err != nil {
		t.Fatal(err)
	}
	f, _ := excelize.OpenReader(bytes.NewReader(data))
	if n := len(f.GetSheetList()); n != 7 {
		t.Fatalf("all workbook sheets: %d %v", n, f.GetSheetList())
	}
	f.Close()

	if _, err := Workbook(s, "foo", ""); !errors.Is(err, ErrUnknownReport) {
		t.Fatalf("unknown kind: %v", err)
	}
}

func TestAttendanceGridWorkbook(t *testing.T) {
	data, err := AttendanceGridWorkbook(sampleState(), "2024-03", "Mica")
	if err != nil {
		t.Fatal(err)
	}
	rows := sheetRows(t, data, "Prezență Lunară")
	if len(rows) != 3 {
		t.Fatalf("rows: %d", len(rows))
	}
	// Nume + 31 hari + 3 total
	if len(rows[0]) != 35 || rows[0][34] != "TOTAL MOTIVAT" {
		t.Fatalf("header: %v", rows[0])
	}
	if rows[2][4] != "PREZENT" || rows[2][1] != "-" {
		t.Fatalf("popescu row: %v", rows[2])
	}
}
