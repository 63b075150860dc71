// file: internals/features/finance/billing/service/statement_service.go
//
// Rekonsiliasi tagihan makan per anak per bulan. Tidak ada field saldo yang
// disimpan; semuanya diturunkan ulang dari absensi, pembayaran dan tarif.
package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/state"
)

var ErrInvalidMonth = errors.New("month must be YYYY-MM")

type Statement struct {
	StudentID              string  `json:"studentId"`
	Month                  string  `json:"month"`
	CarryOver              float64 `json:"carryOver"`
	CurrentMonthAttendance int     `json:"currentMonthAttendance"`
	CurrentMonthCost       float64 `json:"currentMonthCost"`
	CurrentMonthPayments   float64 `json:"currentMonthPayments"`
	FinalBalance           float64 `json:"finalBalance"`
}

// Status: Datorie (<0), Credit (>0), Achitat (0)
func (s Statement) Status() string {
	switch {
	case s.FinalBalance < 0:
		return "Datorie"
	case s.FinalBalance > 0:
		return "Credit"
	}
	return "Achitat"
}

// ComputeStatement: month "YYYY-MM".
//
//	carryOver    = Σ payment(month < M) − PREZENT(date < M-01) × fee
//	currentCost  = PREZENT(date in M) × fee
//	currentPaid  = Σ payment(month == M)
//	finalBalance = carryOver + currentPaid − currentCost
//
// Perbandingan string; "YYYY-MM" dan "YYYY-MM-DD" urut secara leksikografis.
func ComputeStatement(s *state.AppState, studentID, month string) Statement {
	fee := s.Config.FoodCostPerDay
	firstDay := month + "-01"
	prefix := month + "-"

	var prevPaid, curPaid float64
	for _, p := range s.Payments {
		if p.StudentID != studentID {
			continue
		}
		switch {
		case p.Month < month:
			prevPaid += p.Amount
		case p.Month == month:
			curPaid += p.Amount
		}
	}

	prevDays, curDays := 0, 0
	for _, a := range s.Attendance {
		if a.StudentID != studentID || a.Status != model.AttendancePresent {
			continue
		}
		if a.Date < firstDay {
			prevDays++
		} else if strings.HasPrefix(a.Date, prefix) {
			curDays++
		}
	}

	carry := prevPaid - float64(prevDays)*fee
	cost := float64(curDays) * fee
	return Statement{
		StudentID:              studentID,
		Month:                  month,
		CarryOver:              carry,
		CurrentMonthAttendance: curDays,
		CurrentMonthCost:       cost,
		CurrentMonthPayments:   curPaid,
		FinalBalance:           carry + curPaid - cost,
	}
}

type OverviewRow struct {
	Student   model.Student `json:"student"`
	Statement Statement     `json:"statement"`
	Status    string        `json:"status"`
}

type Totals struct {
	TotalCost    float64 `json:"totalCost"`
	TotalPaid    float64 `json:"totalPaid"`
	TotalArrears float64 `json:"totalArrears"`
	TotalCredits float64 `json:"totalCredits"`
}

type Overview struct {
	Month    string        `json:"month"`
	Currency string        `json:"currency"`
	Rows     []OverviewRow `json:"rows"`
	Totals   Totals        `json:"totals"`
}

// MonthOverview: satu baris per student (termasuk yang nonaktif)
func MonthOverview(s *state.AppState, month string) Overview {
	out := Overview{Month: month, Currency: s.Config.Currency, Rows: make([]OverviewRow, 0, len(s.Students))}
	for _, st := range s.Students {
		stmt := ComputeStatement(s, st.ID, month)
		out.Rows = append(out.Rows, OverviewRow{Student: st, Statement: stmt, Status: stmt.Status()})
		out.Totals.TotalCost += stmt.CurrentMonthCost
		out.Totals.TotalPaid += stmt.CurrentMonthPayments
		if stmt.FinalBalance < 0 {
			out.Totals.TotalArrears += -stmt.FinalBalance
		}
		if stmt.FinalBalance > 0 {
			out.Totals.TotalCredits += stmt.FinalBalance
		}
	}
	return out
}

// WorkingDays: jumlah Senin-Jumat dalam bulan
func WorkingDays(month string) (int, error) {
	first, err := time.Parse(state.MonthLayout, month)
	if err != nil {
		return 0, ErrInvalidMonth
	}
	n := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n, nil
}

// SuggestedAmount = max(0, days × fee − finalBalance), dibulatkan 2 desimal
func SuggestedAmount(stmt Statement, days int, fee float64) float64 {
	theoretical := decimal.NewFromInt(int64(days)).Mul(decimal.NewFromFloat(fee))
	v := theoretical.Sub(decimal.NewFromFloat(stmt.FinalBalance))
	if v.IsNegative() {
		return 0
	}
	f, _ := v.Round(2).Float64()
	return f
}

// Round2: pembulatan tampilan (toFixed(2))
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

type AttendanceCounts struct {
	Present   int `json:"present"`
	Absent    int `json:"absent"`
	Motivated int `json:"motivated"`
}

type Ledger struct {
	Student    model.Student            `json:"student"`
	Parent     *model.Parent            `json:"parent,omitempty"`
	Payments   []model.Payment          `json:"payments"`
	Attendance []model.AttendanceRecord `json:"attendance"`
	TotalPaid  float64                  `json:"totalPaid"`
	Stats      AttendanceCounts         `json:"stats"`
}

// StudentLedger: riwayat lengkap satu anak, terbaru di depan
func StudentLedger(s *state.AppState, studentID string) (Ledger, error) {
	st, ok := s.FindStudent(studentID)
	if !ok {
		return Ledger{}, state.ErrStudentNotFound
	}
	out := Ledger{Student: st, Payments: []model.Payment{}, Attendance: []model.AttendanceRecord{}}
	if p, ok := s.FindParent(st.ParentID); ok {
		out.Parent = &p
	}
	for _, p := range s.Payments {
		if p.StudentID == studentID {
			out.Payments = append(out.Payments, p)
			out.TotalPaid += p.Amount
		}
	}
	for _, a := range s.Attendance {
		if a.StudentID != studentID {
			continue
		}
		out.Attendance = append(out.Attendance, a)
		switch a.Status {
		case model.AttendancePresent:
			out.Stats.Present++
		case model.AttendanceAbsent:
			out.Stats.Absent++
		case model.AttendanceExcused:
			out.Stats.Motivated++
		}
	}
	sort.SliceStable(out.Payments, func(i, j int) bool { return out.Payments[i].Date.After(out.Payments[j].Date) })
	sort.SliceStable(out.Attendance, func(i, j int) bool { return out.Attendance[i].Date > out.Attendance[j].Date })
	return out, nil
}

// Receipt: data chitanță untuk dicetak
type Receipt struct {
	Institution string              `json:"institution"`
	Address     string              `json:"address"`
	Phone       string              `json:"phone"`
	Number      string              `json:"number"`
	Date        string              `json:"date"`
	StudentName string              `json:"studentName"`
	ParentName  string              `json:"parentName"`
	Amount      float64             `json:"amount"`
	Method      model.PaymentMethod `json:"method"`
	Month       string              `json:"month"`
	Currency    string              `json:"currency"`
}

var ErrPaymentNotFound = errors.New("payment not found")

func BuildReceipt(s *state.AppState, paymentID string) (Receipt, error) {
	for _, p := range s.Payments {
		if p.ID != paymentID {
			continue
		}
		r := Receipt{
			Institution: s.Config.InstitutionName,
			Address:     s.Config.Address,
			Phone:       s.Config.Phone,
			Number:      p.InvoiceNumber,
			Date:        p.Date.Format("02.01.2006"),
			StudentName: "---",
			ParentName:  "---",
			Amount:      p.Amount,
			Method:      p.Method,
			Month:       p.Month,
			Currency:    s.Config.Currency,
		}
		if st, ok := s.FindStudent(p.StudentID); ok {
			r.StudentName = st.FullName()
			if par, ok := s.FindParent(st.ParentID); ok {
				r.ParentName = par.Name
			}
		}
		return r, nil
	}
	return Receipt{}, ErrPaymentNotFound
}
