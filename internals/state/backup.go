package state

import (
	"context"
	"fmt"
	"log"
	"time"

	"edugest_backend/internals/features/kindergarten/model"
)

const (
	BackupAppVersion = "1.2.0"
	BackupSource     = "EduGest Pro"
)

// Backup: dokumen export penuh. Koleksi nil pada import = tidak ada di file.
type Backup struct {
	Config       *model.AppConfig             `json:"config"`
	Students     []model.Student              `json:"students"`
	Parents      []model.Parent               `json:"parents"`
	Payments     []model.Payment              `json:"payments"`
	Inventory    []model.FoodItem             `json:"inventory"`
	Transactions []model.InventoryTransaction `json:"transactions"`
	Attendance   []model.AttendanceRecord     `json:"attendance"`
	Menus        []model.DailyMenu            `json:"menus"`
	Users        []model.User                 `json:"users"`
	ExportDate   time.Time                    `json:"exportDate"`
	AppVersion   string                       `json:"appVersion"`
	Source       string                       `json:"source"`
}

func (c *Controller) Export() Backup {
	snap := c.Snapshot()
	cfg := snap.Config
	return Backup{
		Config:       &cfg,
		Students:     snap.Students,
		Parents:      snap.Parents,
		Payments:     snap.Payments,
		Inventory:    snap.Inventory,
		Transactions: snap.Transactions,
		Attendance:   snap.Attendance,
		Menus:        snap.Menus,
		Users:        snap.Users,
		ExportDate:   c.clock(),
		AppVersion:   BackupAppVersion,
		Source:       BackupSource,
	}
}

// ValidateBackup: gate import hanya cek keberadaan config dan students
func ValidateBackup(b Backup) error {
	if b.Config == nil || b.Students == nil {
		return ErrInvalidBackup
	}
	return nil
}

// Import menimpa koleksi yang ada di dokumen; koleksi yang tidak ada dibiarkan.
func (c *Controller) Import(ctx context.Context, b Backup) error {
	if err := ValidateBackup(b); err != nil {
		return err
	}
	// deep copy lewat AppState.Clone supaya dokumen caller tidak ikut terpakai
	in := AppState{
		Config:       *b.Config,
		Students:     b.Students,
		Parents:      b.Parents,
		Payments:     b.Payments,
		Inventory:    b.Inventory,
		Transactions: b.Transactions,
		Attendance:   b.Attendance,
		Menus:        b.Menus,
		Users:        b.Users,
	}
	cp := in.Clone()

	return c.mutate(ctx, func(s *AppState) ([]string, error) {
		keys := []string{KeyConfig, KeyStudents}
		s.Config = cp.Config
		s.Students = cp.Students
		if b.Parents != nil {
			s.Parents = cp.Parents
			keys = append(keys, KeyParents)
		}
		if b.Payments != nil {
			s.Payments = cp.Payments
			keys = append(keys, KeyPayments)
		}
		if b.Inventory != nil {
			s.Inventory = cp.Inventory
			keys = append(keys, KeyInventory)
		}
		if b.Transactions != nil {
			s.Transactions = cp.Transactions
			keys = append(keys, KeyTransactions)
		}
		if b.Attendance != nil {
			s.Attendance = cp.Attendance
			keys = append(keys, KeyAttendance)
		}
		if b.Menus != nil {
			s.Menus = cp.Menus
			keys = append(keys, KeyMenus)
		}
		if b.Users != nil {
			s.Users = cp.Users
			keys = append(keys, KeyUsers)
		}
		log.Printf("[INFO] state: backup imported (%s %s), keys=%v", b.Source, b.AppVersion, keys)
		return keys, nil
	})
}

// Reset mengosongkan store lalu memuat ulang seed.
func (c *Controller) Reset(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	if err := c.Load(ctx); err != nil {
		return err
	}
	c.mu.RLock()
	listeners := append([]ChangeListener(nil), c.listeners...)
	c.mu.RUnlock()
	all := append(append([]string{}, CollectionKeys...), KeyAuthUser)
	for _, l := range listeners {
		l(all)
	}
	return nil
}
