// file: internals/features/reports/service/excel_service.go
package service

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	billing "edugest_backend/internals/features/finance/billing/service"
	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/state"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrUnknownReport = errors.New("unknown report kind")

// Jenis export yang didukung GET /reports/export/:kind
const (
	KindStudents   = "students"
	KindInventory  = "inventory"
	KindPayments   = "payments"
	KindStatements = "statements"
	KindAttendance = "attendance"
	KindFinancial  = "financial"
	KindAll        = "all"
)

// workbook: pembungkus kecil di atas excelize; sheet pertama menggantikan "Sheet1"
type workbook struct {
	f      *excelize.File
	sheets int
}

func newWorkbook() *workbook {
	return &workbook{f: excelize.NewFile()}
}

func (w *workbook) sheet(name string, headers []string, rows [][]any) error {
	if w.sheets == 0 {
		if err := w.f.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	} else if _, err := w.f.NewSheet(name); err != nil {
		return err
	}
	w.sheets++

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := w.f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := w.f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
	}
	last, _ := excelize.ColumnNumberToName(max(len(headers), 1))
	return w.f.SetColWidth(name, "A", last, 18)
}

func (w *workbook) bytes() ([]byte, error) {
	defer w.f.Close()
	var buf bytes.Buffer
	if err := w.f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func studentsSheet(w *workbook, s *state.AppState) error {
	rows := make([][]any, 0, len(s.Students))
	for _, st := range s.Students {
		p, _ := s.FindParent(st.ParentID)
		status := "Inactiv"
		if st.Active {
			status = "Activ"
		}
		rows = append(rows, []any{st.LastName, st.FirstName, st.Group, dashIfEmpty(st.CNP), dashIfEmpty(p.Name), dashIfEmpty(p.Phone), dashIfEmpty(p.Email), status})
	}
	return w.sheet("Listă Elevi", []string{"Nume", "Prenume", "Grupă", "CNP", "Părinte", "Telefon", "Email", "Status"}, rows)
}

func inventorySheet(w *workbook, s *state.AppState) error {
	rows := make([][]any, 0, len(s.Inventory))
	for _, it := range s.Inventory {
		rows = append(rows, []any{it.Name, it.Quantity, string(it.Unit), it.MinStock, it.LastPrice, billing.Round2(it.Quantity * it.LastPrice)})
	}
	cur := s.Config.Currency
	return w.sheet("Situație Magazie", []string{"Produs", "Stoc Curent", "Unitate", "Stoc Minim", "Ultim Preț (" + cur + ")", "Valoare Stoc (" + cur + ")"}, rows)
}

// month kosong = semua pembayaran
func paymentsSheet(w *workbook, s *state.AppState, month string) error {
	var rows [][]any
	for _, p := range s.Payments {
		if month != "" && p.Month != month {
			continue
		}
		name, group := "Elev Șters", "---"
		if st, ok := s.FindStudent(p.StudentID); ok {
			name, group = st.FullName(), st.Group
		}
		rows = append(rows, []any{p.Date.Format(state.DateLayout), p.InvoiceNumber, name, group, p.Amount, string(p.Method), p.Month})
	}
	return w.sheet("Registru Încasări", []string{"Dată Încasare", "Număr Factură", "Nume Elev", "Grupă", "Sumă (" + s.Config.Currency + ")", "Metodă", "Lună Alocată"}, rows)
}

func statementsSheet(w *workbook, s *state.AppState, month string) error {
	ov := billing.MonthOverview(s, month)
	rows := make([][]any, 0, len(ov.Rows))
	for _, r := range ov.Rows {
		st := r.Statement
		rows = append(rows, []any{r.Student.FullName(), r.Student.Group, st.CurrentMonthAttendance, st.CurrentMonthCost, st.CurrentMonthPayments, billing.Round2(st.CarryOver), billing.Round2(st.FinalBalance), r.Status})
	}
	return w.sheet("Situație Plăți", []string{"Nume Elev", "Grupă", "Zile Prezent", "Cost Masă", "Plătit Lună", "Sold Anterior", "Balanță Finală", "Status"}, rows)
}

func attendanceSheet(w *workbook, s *state.AppState, month string) error {
	sum := BuildAttendanceSummary(s, month, "")
	rows := make([][]any, 0, len(sum))
	for _, r := range sum {
		rows = append(rows, []any{r.Name, r.Group, month, r.Present, r.Absent, r.Motivated})
	}
	return w.sheet("Raport Prezență", []string{"Elev", "Grupă", "Lună Raportată", "Prezențe", "Absențe", "Motivate"}, rows)
}

func financialSheets(w *workbook, s *state.AppState, month string) error {
	fin := BuildFinancial(s, month)
	summary := [][]any{
		{"Venituri Totale (Încasări Părinți)", billing.Round2(fin.TotalRevenue)},
		{"Cheltuieli Totale (Alimente Consumate)", billing.Round2(fin.TotalExpenditure)},
		{"Balanță Netă", billing.Round2(fin.Balance)},
	}
	if err := w.sheet("Rezumat Financiar", []string{"Categorie", "Suma"}, summary); err != nil {
		return err
	}

	rev := make([][]any, 0, len(fin.Payments))
	for _, p := range fin.Payments {
		name := "-"
		if st, ok := s.FindStudent(p.StudentID); ok {
			name = st.FullName()
		}
		rev = append(rev, []any{p.Date.Format(state.DateLayout), name, p.InvoiceNumber, string(p.Method), p.Amount})
	}
	if err := w.sheet("Detalii Venituri", []string{"Data", "Elev", "Factura", "Metoda", "Suma"}, rev); err != nil {
		return err
	}

	exp := make([][]any, 0, len(fin.Expenditures))
	for _, e := range fin.Expenditures {
		exp = append(exp, []any{e.Date, e.Name, e.Qty, e.Unit, e.Price, billing.Round2(e.Total), e.Ref})
	}
	return w.sheet("Detalii Cheltuieli", []string{"Data", "Produs", "Cantitate", "UM", "Pret Unitar", "Valoare", "Referinta"}, exp)
}

// AttendanceGridWorkbook: grid bulanan per grup (satu kolom per hari)
func AttendanceGridWorkbook(s *state.AppState, month, group string) ([]byte, error) {
	g, err := BuildAttendanceGrid(s, month, group)
	if err != nil {
		return nil, err
	}
	headers := []string{"Nume Elev"}
	for d := 1; d <= g.Days; d++ {
		headers = append(headers, fmt.Sprint(d))
	}
	headers = append(headers, "TOTAL PREZENT", "TOTAL ABSENT", "TOTAL MOTIVAT")

	rows := make([][]any, 0, len(g.Rows))
	for _, r := range g.Rows {
		row := []any{r.Name}
		for _, st := range r.Days {
			if st == model.AttendanceNotTaken {
				row = append(row, "-")
			} else {
				row = append(row, string(st))
			}
		}
		row = append(row, r.Present, r.Absent, r.Motivated)
		rows = append(rows, row)
	}
	w := newWorkbook()
	if err := w.sheet("Prezență Lunară", headers, rows); err != nil {
		return nil, err
	}
	return w.bytes()
}

// Workbook membangun file xlsx untuk satu jenis laporan.
func Workbook(s *state.AppState, kind, month string) ([]byte, error) {
	w := newWorkbook()
	var err error
	switch kind {
	case KindStudents:
		err = studentsSheet(w, s)
	case KindInventory:
		err = inventorySheet(w, s)
	case KindPayments:
		err = paymentsSheet(w, s, month)
	case KindStatements:
		err = statementsSheet(w, s, month)
	case KindAttendance:
		err = attendanceSheet(w, s, month)
	case KindFinancial:
		err = financialSheets(w, s, month)
	case KindAll:
		for _, step := range []func() error{
			func() error { return studentsSheet(w, s) },
			func() error { return inventorySheet(w, s) },
			func() error { return paymentsSheet(w, s, month) },
			func() error { return attendanceSheet(w, s, month) },
			func() error { return financialSheets(w, s, month) },
		} {
			if err = step(); err != nil {
				break
			}
		}
	default:
		w.f.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, kind)
	}
	if err != nil {
		w.f.Close()
		return nil, err
	}
	return w.bytes()
}

func FileName(kind, month string) string {
	if month == "" {
		return fmt.Sprintf("raport_%s.xlsx", kind)
	}
	return fmt.Sprintf("raport_%s_%s.xlsx", kind, month)
}
