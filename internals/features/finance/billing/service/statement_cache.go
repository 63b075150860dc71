// file: internals/features/finance/billing/service/statement_cache.go
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// StatementCache menyimpan Statement per (student, month).
type StatementCache interface {
	Get(ctx context.Context, key string) (Statement, bool, error)
	Set(ctx context.Context, key string, st Statement) error
	Flush(ctx context.Context) error
}

// MemoryCache: fallback in-process kalau REDIS_ADDR kosong
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]Statement
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: map[string]Statement{}}
}

func (m *MemoryCache) Get(_ context.Context, key string) (Statement, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.data[key]
	return st, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, st Statement) error {
	m.mu.Lock()
	m.data[key] = st
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Flush(_ context.Context) error {
	m.mu.Lock()
	m.data = map[string]Statement{}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

const (
	redisPrefix = "edugest:stmt:"
	redisTTL    = 6 * time.Hour
)

type RedisCache struct {
	RDB *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{RDB: rdb}
}

func (r *RedisCache) Get(ctx context.Context, key string) (Statement, bool, error) {
	raw, err := r.RDB.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Statement{}, false, nil
	}
	if err != nil {
		return Statement{}, false, err
	}
	var st Statement
	if err := sonic.Unmarshal(raw, &st); err != nil {
		return Statement{}, false, err
	}
	return st, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, st Statement) error {
	raw, err := sonic.Marshal(st)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, redisPrefix+key, raw, redisTTL).Err()
}

// Flush: SCAN + DEL semua key dengan prefix statement
func (r *RedisCache) Flush(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.RDB.Scan(ctx, cursor, redisPrefix+"*", 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.RDB.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
