// file: internals/features/system/kvstore/repository/gorm_store.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	kvModel "edugest_backend/internals/features/system/kvstore/model"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Migrate() error {
	return s.DB.AutoMigrate(&kvModel.KVEntry{})
}

func (s *GormStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	var e kvModel.KVEntry
	err := s.DB.WithContext(ctx).
		Select("kv_key", "kv_value").
		Where("kv_key = ?", key).
		Take(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		if isUndefinedTable(err) {
			log.Printf("[WARN] kvstore: tabel %s belum ada, key=%s dianggap kosong", kvModel.KVEntry{}.TableName(), key)
			return false, nil
		}
		return false, fmt.Errorf("kvstore get %s: %w", key, err)
	}
	if err := sonic.Unmarshal([]byte(e.Value), dst); err != nil {
		return true, fmt.Errorf("kvstore decode %s: %w", key, err)
	}
	return true, nil
}

func (s *GormStore) Set(ctx context.Context, key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	raw, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvstore encode %s: %w", key, err)
	}
	e := kvModel.KVEntry{
		Key:       key,
		Value:     datatypes.JSON(raw),
		UpdatedAt: time.Now().UTC(),
	}
	err = s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kv_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"kv_value", "kv_updated_at"}),
		}).
		Create(&e).Error
	if err != nil {
		return fmt.Errorf("kvstore set %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.DB.WithContext(ctx).
		Where("kv_key = ?", key).
		Delete(&kvModel.KVEntry{}).Error
}

func (s *GormStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.DB.WithContext(ctx).
		Model(&kvModel.KVEntry{}).
		Order("kv_key ASC").
		Pluck("kv_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *GormStore) Clear(ctx context.Context) error {
	return s.DB.WithContext(ctx).
		Where("1 = 1").
		Delete(&kvModel.KVEntry{}).Error
}

// Postgres 42P01 = undefined_table
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	return false
}
