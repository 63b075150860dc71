package model

import (
	"sync"
	"time"
)

// TokenBlacklist: access token yang sudah logout, disimpan sampai exp-nya lewat
type TokenBlacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{entries: map[string]time.Time{}}
}

func (b *TokenBlacklist) Add(token string, expiredAt time.Time) {
	b.mu.Lock()
	b.entries[token] = expiredAt
	b.mu.Unlock()
}

func (b *TokenBlacklist) Contains(token string) bool {
	b.mu.RLock()
	_, ok := b.entries[token]
	b.mu.RUnlock()
	return ok
}

// Purge menghapus entry dengan exp sebelum t, mengembalikan jumlah yang dihapus
func (b *TokenBlacklist) Purge(t time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for tok, exp := range b.entries {
		if exp.Before(t) {
			delete(b.entries, tok)
			n++
		}
	}
	return n
}

func (b *TokenBlacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
