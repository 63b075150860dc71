package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sample struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	s := NewGormStore(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	var got sample
	found, err := s.Get(ctx, "missing", &got)
	if err != nil || found {
		t.Fatalf("missing key: found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, "students", sample{Name: "a", Items: []string{"x"}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "students", sample{Name: "b", Items: []string{"y", "z"}}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	found, err = s.Get(ctx, "students", &got)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Name != "b" || len(got.Items) != 2 {
		t.Fatalf("unexpected value %+v", got)
	}

	if err := s.Set(ctx, "config", map[string]any{"currency": "RON"}); err != nil {
		t.Fatalf("set config: %v", err)
	}
	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "config" || keys[1] != "students" {
		t.Fatalf("keys = %v", keys)
	}

	if err := s.Delete(ctx, "config"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if found, _ := s.Get(ctx, "config", &map[string]any{}); found {
		t.Fatal("config should be gone")
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	keys, _ = s.Keys(ctx)
	if len(keys) != 0 {
		t.Fatalf("keys after clear = %v", keys)
	}

	if err := s.Set(ctx, "", 1); err != ErrEmptyKey {
		t.Fatalf("empty key err = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestGormStore(t *testing.T) {
	exerciseStore(t, newSQLiteStore(t))
}
