// file: internals/features/finance/billing/service/statement_memo.go
package service

import (
	"context"
	"log"
	"strconv"
	"sync/atomic"

	"edugest_backend/internals/state"
)

// Memo: cache Statement per (student, month), di-flush setiap kali
// attendance/payments/students/config berubah. Key memuat generasi; generasi
// naik setelah mutasi commit, jadi hasil hitungan dari state lama yang masih
// sempat di-Set sesudah flush jatuh ke key generasi lama dan tidak pernah dibaca.
type Memo struct {
	ctl     *state.Controller
	cache   StatementCache
	version atomic.Uint64
}

func NewMemo(ctl *state.Controller, cache StatementCache) *Memo {
	if cache == nil {
		cache = NewMemoryCache()
	}
	m := &Memo{ctl: ctl, cache: cache}
	// generasi mulai dari 0 lagi tiap proses, sisa key proses lama dibuang
	if err := cache.Flush(context.Background()); err != nil {
		log.Printf("[WARN] billing: flush statement cache: %v", err)
	}
	ctl.OnChange(func(keys []string) {
		if !state.Touches(keys, state.KeyAttendance, state.KeyPayments, state.KeyStudents, state.KeyConfig) {
			return
		}
		m.version.Add(1)
		if err := m.cache.Flush(context.Background()); err != nil {
			log.Printf("[WARN] billing: flush statement cache: %v", err)
		}
	})
	return m
}

func memoKey(gen uint64, studentID, month string) string {
	return "g" + strconv.FormatUint(gen, 10) + "|" + studentID + "|" + month
}

func (m *Memo) Statement(ctx context.Context, studentID, month string) Statement {
	// generasi wajib dibaca sebelum state
	key := memoKey(m.version.Load(), studentID, month)
	if st, ok, err := m.cache.Get(ctx, key); err != nil {
		log.Printf("[WARN] billing: cache get %s: %v", key, err)
	} else if ok {
		return st
	}

	var st Statement
	m.ctl.View(func(s *state.AppState) {
		st = ComputeStatement(s, studentID, month)
	})
	if err := m.cache.Set(ctx, key, st); err != nil {
		log.Printf("[WARN] billing: cache set %s: %v", key, err)
	}
	return st
}
