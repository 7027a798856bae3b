package service

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/iliyamo/driving-licence-admin/internal/repository"
)

// StartSessionCleaner schedules the hourly reclaim of stale sessions
// (rows past expires_at or older than the 30-day ceiling) and returns
// the running cron so the caller can Stop it on shutdown.  One pass
// also runs immediately so a long-stopped instance catches up on boot.
func StartSessionCleaner(sessions *repository.SessionRepo) *cron.Cron {
	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		ids, err := sessions.Cleanup(ctx)
		if err != nil {
			log.Printf("session-cleaner: cleanup failed: %v", err)
			return
		}
		if len(ids) > 0 {
			log.Printf("session-cleaner: removed %d stale sessions", len(ids))
		}
	}

	c := cron.New()
	if _, err := c.AddFunc("@hourly", run); err != nil {
		log.Printf("session-cleaner: schedule failed: %v", err)
		return c
	}
	c.Start()
	go run()
	return c
}
