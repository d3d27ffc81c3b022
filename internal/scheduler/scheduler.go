// Package scheduler runs the periodic housekeeping of the server: evicting
// idle controllers from memory and purging stored sessions whose client
// cookie has long expired.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/vytor/wordcards/internal/logger"
)

// Evictor drops in-memory state unused for longer than maxIdle.
type Evictor interface {
	Sweep(maxIdle time.Duration) int
}

// Purger deletes durable state older than maxAge.
type Purger interface {
	PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

type Options struct {
	Interval    time.Duration
	IdleTimeout time.Duration
	SessionTTL  time.Duration
}

type Scheduler struct {
	scheduler *gocron.Scheduler
	evictor   Evictor
	purger    Purger
	opts      Options
	log       *logger.Logger
}

func New(evictor Evictor, purger Purger, opts Options) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		evictor:   evictor,
		purger:    purger,
		opts:      opts,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start schedules the sweep and returns immediately. The first run happens
// one interval after Start.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.opts.Interval).WaitForSchedule().Do(s.Sweep)
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.log.Info("sweeping every %s (idle timeout %s, session ttl %s)", s.opts.Interval, s.opts.IdleTimeout, s.opts.SessionTTL)
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Sweep runs one housekeeping pass.
func (s *Scheduler) Sweep() {
	start := time.Now()

	evicted := 0
	if s.evictor != nil {
		evicted = s.evictor.Sweep(s.opts.IdleTimeout)
	}

	var purged int64
	if s.purger != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := s.purger.PurgeStale(ctx, s.opts.SessionTTL)
		if err != nil {
			s.log.WithError(err).Error("failed to purge stale sessions")
		}
		purged = n
	}

	s.log.WithFields(map[string]any{
		"evicted":     evicted,
		"purged":      purged,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("sweep finished")
}
