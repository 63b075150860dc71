// file: internals/features/system/backup/service/backup_cron.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultSchedule = "0 2 * * *"

// StartCron: panggil dari main.go; caller wajib c.Stop() saat shutdown.
func (s *Service) StartCron(schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		s.logRun(ctx)
	}); err != nil {
		return nil, fmt.Errorf("add cron %q: %w", schedule, err)
	}
	log.Printf("[BACKUP] started schedule=%q offsite=%v", schedule, s.Uploader != nil)
	c.Start()
	return c, nil
}
