package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"chat-relay/internal/analytics"
	"chat-relay/internal/session"
	"chat-relay/internal/storage"
)

// Janitor periodically expires stale session entries so abandoned chats
// fall back to no mode.
type Janitor struct {
	cron     *cron.Cron
	sessions *session.MemoryStore
	ttl      time.Duration
}

func NewJanitor(sessions *session.MemoryStore, ttl time.Duration) *Janitor {
	return &Janitor{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		sessions: sessions,
		ttl:      ttl,
	}
}

// Start registers the cleanup job on the given cron schedule
// (e.g. "@hourly") and starts the scheduler.
func (j *Janitor) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, func() {
		n := j.sessions.ExpireBefore(time.Now().Add(-j.ttl))
		if n > 0 {
			log.Printf("session janitor: expired %d stale sessions", n)
		}
	})
	if err != nil {
		return err
	}
	j.cron.Start()
	log.Printf("session janitor started (schedule=%s ttl=%s)", schedule, j.ttl)
	return nil
}

// ScheduleDailyReport logs a usage summary every day at 21:00 UTC,
// built from the recorded interactions.
func (j *Janitor) ScheduleDailyReport(rec storage.Recorder) error {
	_, err := j.cron.AddFunc("0 21 * * *", func() {
		events, err := rec.LoadInteractions()
		if err != nil {
			log.Printf("daily report failed: %v", err)
			return
		}
		log.Println(analytics.FormatReport(analytics.AnalyzeDailyLogs(events, time.Now().UTC())))
	})
	return err
}

func (j *Janitor) Stop() {
	if j.cron != nil {
		ctx := j.cron.Stop()
		<-ctx.Done()
	}
	log.Println("session janitor stopped")
}
