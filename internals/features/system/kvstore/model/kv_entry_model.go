// file: internals/features/system/kvstore/model/kv_entry_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry: satu koleksi utuh per key (students, payments, config, ...)
type KVEntry struct {
	Key       string         `json:"kv_key" gorm:"column:kv_key;type:text;primaryKey"`
	Value     datatypes.JSON `json:"kv_value" gorm:"column:kv_value;type:jsonb;not null"`
	UpdatedAt time.Time      `json:"kv_updated_at" gorm:"column:kv_updated_at;type:timestamptz;not null"`
}

func (KVEntry) TableName() string { return "app_kv_entries" }
