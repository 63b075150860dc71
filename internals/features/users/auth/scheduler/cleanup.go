package scheduler

import (
	"context"
	"log"
	"time"

	"edugest_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler: purge token kadaluarsa tiap interval sampai ctx selesai
func StartBlacklistCleanupScheduler(ctx context.Context, bl *model.TokenBlacklist, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		log.Println("[CLEANUP] Scheduler blacklist token aktif")
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := bl.Purge(now); n > 0 {
					log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
				}
			}
		}
	}()
}
