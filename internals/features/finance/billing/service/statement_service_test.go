package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/features/system/kvstore/repository"
	"edugest_backend/internals/state"
)

func present(studentID string, month string, days int) []model.AttendanceRecord {
	out := make([]model.AttendanceRecord, 0, days)
	for d := 1; d <= days; d++ {
		date := fmt.Sprintf("%s-%02d", month, d)
		out = append(out, model.AttendanceRecord{ID: model.AttendanceID(date, studentID), StudentID: studentID, Date: date, Status: model.AttendancePresent})
	}
	return out
}

func baseState() *state.AppState {
	return &state.AppState{
		Students: []model.Student{
			{ID: "S", FirstName: "Luca", LastName: "Popescu", ParentID: "p1", Active: true},
			{ID: "Z", FirstName: "Zero", LastName: "Zero", ParentID: "p1", Active: true},
		},
		Parents: []model.Parent{{ID: "p1", Name: "Andrei Popescu"}},
		Config:  state.DefaultConfig(25),
	}
}

func TestStatementCarryOverScenario(t *testing.T) {
	s := baseState()
	s.Attendance = append(present("S", "2024-02", 10), present("S", "2024-03", 5)...)
	// ABSENT & MOTIVAT tidak pernah dihitung
	s.Attendance = append(s.Attendance,
		model.AttendanceRecord{StudentID: "S", Date: "2024-03-20", Status: model.AttendanceAbsent},
		model.AttendanceRecord{StudentID: "S", Date: "2024-02-20", Status: model.AttendanceExcused},
	)
	s.Payments = []model.Payment{{ID: "pay1", StudentID: "S", Amount: 300, Month: "2024-02", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)}}

	st := ComputeStatement(s, "S", "2024-03")
	if st.CarryOver != 50 {
		t.Fatalf("carryOver want 50, got %v", st.CarryOver)
	}
	if st.CurrentMonthAttendance != 5 || st.CurrentMonthCost != 125 || st.CurrentMonthPayments != 0 {
		t.Fatalf("current month %+v", st)
	}
	if st.FinalBalance != -75 || st.Status() != "Datorie" {
		t.Fatalf("finalBalance want -75, got %v (%s)", st.FinalBalance, st.Status())
	}

	// month payment dipercaya apa adanya, bukan tanggal bayar
	feb := ComputeStatement(s, "S", "2024-02")
	if feb.CurrentMonthPayments != 300 || feb.FinalBalance != 50 {
		t.Fatalf("feb %+v", feb)
	}
}

func TestZeroActivityIsSettled(t *testing.T) {
	s := baseState()
	s.Attendance = present("S", "2024-03", 3)
	s.Payments = []model.Payment{{StudentID: "S", Amount: 10, Month: "2024-01"}}
	for _, month := range []string{"2023-09", "2024-01", "2024-03", "2025-12"} {
		st := ComputeStatement(s, "Z", month)
		if st.FinalBalance != 0 || st.CarryOver != 0 || st.Status() != "Achitat" {
			t.Fatalf("%s: %+v", month, st)
		}
	}
	if st := ComputeStatement(s, "missing", "2024-03"); st.FinalBalance != 0 {
		t.Fatalf("unknown student must yield zero statement, got %+v", st)
	}
}

func TestMonthOverviewTotals(t *testing.T) {
	s := baseState()
	s.Attendance = present("S", "2024-03", 4)
	s.Payments = []model.Payment{
		{StudentID: "S", Amount: 50, Month: "2024-03"},
		{StudentID: "Z", Amount: 30, Month: "2024-03"},
	}
	ov := MonthOverview(s, "2024-03")
	if len(ov.Rows) != 2 {
		t.Fatalf("rows %d", len(ov.Rows))
	}
	want := Totals{TotalCost: 100, TotalPaid: 80, TotalArrears: 50, TotalCredits: 30}
	if ov.Totals != want {
		t.Fatalf("totals %+v", ov.Totals)
	}
}

func TestWorkingDays(t *testing.T) {
	cases := map[string]int{"2024-02": 21, "2024-03": 21, "2024-06": 20}
	for month, want := range cases {
		got, err := WorkingDays(month)
		if err != nil || got != want {
			t.Errorf("%s: want %d got %d (%v)", month, want, got, err)
		}
	}
	if _, err := WorkingDays("2024-13"); err != ErrInvalidMonth {
		t.Fatalf("got %v", err)
	}
}

func TestSuggestedAmount(t *testing.T) {
	cases := []struct {
		balance float64
		days    int
		want    float64
	}{
		{-75, 20, 575},
		{600, 20, 0},
		{0.333, 1, 24.67},
	}
	for _, tc := range cases {
		got := SuggestedAmount(Statement{FinalBalance: tc.balance}, tc.days, 25)
		if got != tc.want {
			t.Errorf("balance %v days %d: want %v got %v", tc.balance, tc.days, tc.want, got)
		}
	}
}

func TestStudentLedgerAndReceipt(t *testing.T) {
	s := baseState()
	s.Attendance = []model.AttendanceRecord{
		{StudentID: "S", Date: "2024-03-01", Status: model.AttendancePresent},
		{StudentID: "S", Date: "2024-03-04", Status: model.AttendanceAbsent},
		{StudentID: "S", Date: "2024-03-05", Status: model.AttendanceExcused},
	}
	s.Payments = []model.Payment{
		{ID: "a", StudentID: "S", Amount: 10, InvoiceNumber: "F1", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Method: model.PaymentCash},
		{ID: "b", StudentID: "S", Amount: 20, InvoiceNumber: "F2", Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), Method: model.PaymentCard},
	}
	l, err := StudentLedger(s, "S")
	if err != nil {
		t.Fatal(err)
	}
	if l.TotalPaid != 30 || l.Payments[0].ID != "b" || l.Attendance[0].Date != "2024-03-05" {
		t.Fatalf("ledger order/total wrong: %+v", l)
	}
	if l.Stats != (AttendanceCounts{Present: 1, Absent: 1, Motivated: 1}) {
		t.Fatalf("stats %+v", l.Stats)
	}
	if _, err := StudentLedger(s, "nope"); err != state.ErrStudentNotFound {
		t.Fatalf("got %v", err)
	}

	r, err := BuildReceipt(s, "b")
	if err != nil || r.StudentName != "Popescu Luca" || r.ParentName != "Andrei Popescu" || r.Date != "09.03.2024" {
		t.Fatalf("receipt %+v %v", r, err)
	}
}

func TestMemoFlushesOnPayment(t *testing.T) {
	ctx := context.Background()
	ctl := state.New(repository.NewMemoryStore())
	if err := ctl.Load(ctx); err != nil {
		t.Fatal(err)
	}
	cache := NewMemoryCache()
	memo := NewMemo(ctl, cache)

	if st := memo.Statement(ctx, "s1", "2024-03"); st.FinalBalance != 0 {
		t.Fatalf("seed student starts settled, got %+v", st)
	}
	if cache.Len() != 1 {
		t.Fatalf("want 1 cached statement, got %d", cache.Len())
	}

	if _, err := ctl.AddPayment(ctx, state.PaymentInput{StudentID: "s1", Amount: 40, Month: "2024-03"}); err != nil {
		t.Fatal(err)
	}
	if cache.Len() != 0 {
		t.Fatal("payment must flush the cache")
	}
	if st := memo.Statement(ctx, "s1", "2024-03"); st.FinalBalance != 40 {
		t.Fatalf("stale statement %+v", st)
	}

	// menu tidak mempengaruhi tagihan
	if _, err := ctl.SaveMenu(ctx, model.DailyMenu{Date: "2024-03-04"}); err != nil {
		t.Fatal(err)
	}
	if cache.Len() != 1 {
		t.Fatal("unrelated change flushed the cache")
	}
}

// gatedCache menahan Set sampai gate dibuka
type gatedCache struct {
	*MemoryCache
	entered chan struct{}
	gate    chan struct{}
}

func (g *gatedCache) Set(ctx context.Context, key string, st Statement) error {
	close(g.entered)
	<-g.gate
	return g.MemoryCache.Set(ctx, key, st)
}

func TestMemoLateSetAfterFlushIsNotServed(t *testing.T) {
	ctx := context.Background()
	ctl := state.New(repository.NewMemoryStore())
	if err := ctl.Load(ctx); err != nil {
		t.Fatal(err)
	}
	cache := &gatedCache{MemoryCache: NewMemoryCache(), entered: make(chan struct{}), gate: make(chan struct{})}
	memo := NewMemo(ctl, cache)

	done := make(chan Statement)
	go func() { done <- memo.Statement(ctx, "s1", "2024-03") }()

	// reader sudah menghitung dari state lama dan tertahan di Set
	<-cache.entered
	if _, err := ctl.AddPayment(ctx, state.PaymentInput{StudentID: "s1", Amount: 40, Month: "2024-03"}); err != nil {
		t.Fatal(err)
	}
	close(cache.gate)
	if old := <-done; old.FinalBalance != 0 {
		t.Fatalf("reader computed before payment, got %+v", old)
	}

	// Set berikutnya tidak lagi ditahan
	cache.entered = make(chan struct{})
	if st := memo.Statement(ctx, "s1", "2024-03"); st.FinalBalance != 40 {
		t.Fatalf("stale statement served after flush: %+v", st)
	}
}
