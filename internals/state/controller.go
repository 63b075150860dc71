// Package state memegang AppState aplikasi. Controller adalah satu-satunya
// jalur tulis: setiap mutasi memvalidasi input, mengubah koleksi di memori,
// lalu menulis ulang hanya kunci yang disentuh ke store.
//
// Kalau penulisan ke store gagal, memori tetap menjadi acuan; error dicatat
// dan dikembalikan ke caller.
package state

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"edugest_backend/internals/features/inventory/ledger"
	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/features/system/kvstore/repository"
	authHelper "edugest_backend/internals/features/users/auth/helper"
)

type Clock func() time.Time

type IDGen func(prefix string) string

type ChangeListener func(keys []string)

type Option func(*Controller)

func WithClock(c Clock) Option { return func(ct *Controller) { ct.clock = c } }

func WithIDGen(g IDGen) Option { return func(ct *Controller) { ct.ids = g } }

// WithFoodCost: tarif default saat config belum ada di store
func WithFoodCost(v float64) Option { return func(ct *Controller) { ct.foodCost = v } }

type Controller struct {
	mu        sync.RWMutex
	store     repository.Store
	clock     Clock
	ids       IDGen
	foodCost  float64
	st        AppState
	listeners []ChangeListener
}

func New(store repository.Store, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		clock:    func() time.Time { return time.Now().UTC() },
		ids:      func(prefix string) string { return prefix + "-" + uuid.NewString() },
		foodCost: DefaultFoodCostPerDay,
	}
	for _, o := range opts {
		o(c)
	}
	// admin baru tersedia setelah Load (password di-hash saat seeding)
	c.st = c.seedState("")
	c.st.Users = []model.User{}
	return c
}

func (c *Controller) Now() time.Time { return c.clock() }

// OnChange mendaftarkan listener; dipanggil setelah mutasi sukses, di luar lock
func (c *Controller) OnChange(fn ChangeListener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Controller) seedState(adminPassword string) AppState {
	return AppState{
		Users:        []model.User{seedAdmin(adminPassword)},
		Students:     seedStudents(),
		Parents:      seedParents(),
		Attendance:   []model.AttendanceRecord{},
		Payments:     []model.Payment{},
		Inventory:    seedFoodItems(),
		Menus:        []model.DailyMenu{},
		Transactions: []model.InventoryTransaction{},
		Config:       DefaultConfig(c.foodCost),
	}
}

// Load membaca setiap kunci; kunci yang belum ada diisi seed lalu ditulis.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seed := c.seedState("")
	var next AppState
	var missing []string

	targets := map[string]any{
		KeyUsers:        &next.Users,
		KeyStudents:     &next.Students,
		KeyParents:      &next.Parents,
		KeyAttendance:   &next.Attendance,
		KeyPayments:     &next.Payments,
		KeyInventory:    &next.Inventory,
		KeyMenus:        &next.Menus,
		KeyTransactions: &next.Transactions,
		KeyConfig:       &next.Config,
	}
	for _, key := range CollectionKeys {
		found, err := c.store.Get(ctx, key, targets[key])
		if err != nil {
			return fmt.Errorf("load %s: %w", key, err)
		}
		if !found {
			missing = append(missing, key)
			copySeed(&next, &seed, key)
		}
	}
	if Touches(missing, KeyUsers) {
		hash, err := authHelper.HashPassword(SeedAdminPassword)
		if err != nil {
			return fmt.Errorf("hash seed admin: %w", err)
		}
		next.Users = []model.User{seedAdmin(hash)}
	}

	var auth model.User
	if found, err := c.store.Get(ctx, KeyAuthUser, &auth); err != nil {
		return fmt.Errorf("load %s: %w", KeyAuthUser, err)
	} else if found && auth.ID != "" {
		next.AuthUser = &auth
	}

	c.st = next
	c.normalizeLocked()

	if len(missing) > 0 {
		log.Printf("[INFO] state: seeding %v", missing)
		return c.persistLocked(ctx, missing)
	}
	return nil
}

func copySeed(dst, seed *AppState, key string) {
	switch key {
	case KeyUsers:
		dst.Users = seed.Users
	case KeyStudents:
		dst.Students = seed.Students
	case KeyParents:
		dst.Parents = seed.Parents
	case KeyAttendance:
		dst.Attendance = seed.Attendance
	case KeyPayments:
		dst.Payments = seed.Payments
	case KeyInventory:
		dst.Inventory = seed.Inventory
	case KeyMenus:
		dst.Menus = seed.Menus
	case KeyTransactions:
		dst.Transactions = seed.Transactions
	case KeyConfig:
		dst.Config = seed.Config
	}
}

// normalizeLocked: nilai null dari store lama jadi slice kosong
func (c *Controller) normalizeLocked() {
	s := &c.st
	if s.Users == nil {
		s.Users = []model.User{}
	}
	if s.Students == nil {
		s.Students = []model.Student{}
	}
	if s.Parents == nil {
		s.Parents = []model.Parent{}
	}
	if s.Attendance == nil {
		s.Attendance = []model.AttendanceRecord{}
	}
	if s.Payments == nil {
		s.Payments = []model.Payment{}
	}
	if s.Inventory == nil {
		s.Inventory = []model.FoodItem{}
	}
	if s.Menus == nil {
		s.Menus = []model.DailyMenu{}
	}
	for i := range s.Menus {
		if s.Menus[i].ItemsUsed == nil {
			s.Menus[i].ItemsUsed = []model.MenuItemUse{}
		}
	}
	if s.Transactions == nil {
		s.Transactions = []model.InventoryTransaction{}
	}
	if s.Config.Groups == nil {
		s.Config.Groups = []string{}
	}
}

// Snapshot: salinan lengkap untuk pembaca
func (c *Controller) Snapshot() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st.Clone()
}

// View menjalankan fn di bawah RLock tanpa menyalin. fn tidak boleh
// menyimpan referensi ke s atau mengubahnya.
func (c *Controller) View(fn func(s *AppState)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(&c.st)
}

// mutate: fn memvalidasi lalu mengubah s, dan mengembalikan kunci yang disentuh.
// fn yang mengembalikan error wajib belum mengubah apa pun.
func (c *Controller) mutate(ctx context.Context, fn func(s *AppState) ([]string, error)) error {
	c.mu.Lock()
	keys, err := fn(&c.st)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if len(keys) == 0 {
		c.mu.Unlock()
		return nil
	}
	perr := c.persistLocked(ctx, keys)
	listeners := append([]ChangeListener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l(keys)
	}
	return perr
}

func (c *Controller) persistLocked(ctx context.Context, keys []string) error {
	var errs []error
	for _, key := range keys {
		var err error
		if key == KeyAuthUser && c.st.AuthUser == nil {
			err = c.store.Delete(ctx, key)
		} else {
			err = c.store.Set(ctx, key, c.st.value(key))
		}
		if err != nil {
			log.Printf("[ERROR] state: persist %s: %v", key, err)
			errs = append(errs, fmt.Errorf("persist %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// book: view Ledger di atas koleksi state (berbagi slice)
func (c *Controller) book(s *AppState) ledger.Book {
	return ledger.Book{
		Items:        s.Inventory,
		Transactions: s.Transactions,
		Now:          c.clock,
		NewID:        c.ids,
	}
}

func putBook(s *AppState, b ledger.Book) {
	s.Inventory = b.Items
	s.Transactions = b.Transactions
}

// lastDigits: 6 digit terakhir unix millis, untuk nomor dokumen default
func (c *Controller) lastDigits() string {
	ms := strconv.FormatInt(c.clock().UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return ms
}
