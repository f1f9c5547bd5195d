// Package scheduler runs the cron job that removes events whose start time
// is older than the retention window.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner is the part of the event service the scheduler drives.
type Pruner interface {
	PruneEvents(ctx context.Context, before time.Time) (int, error)
}

// Scheduler wraps robfig/cron and manages the prune loop.
type Scheduler struct {
	cron      *cron.Cron
	pruner    Pruner
	spec      string // cron spec, e.g. "@every 6h"
	retention time.Duration
	now       func() time.Time
}

func New(pruner Pruner, spec string, retention time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.DefaultLogger)),
		pruner:    pruner,
		spec:      spec,
		retention: retention,
		now:       time.Now,
	}
}

// Start registers the job and starts the scheduler. One prune also runs
// immediately in the background.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started, spec: %s", s.spec)

	go s.RunOnce(ctx)
	return nil
}

// Stop shuts the scheduler down and waits for a running prune to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

// RunOnce prunes every event that started before now minus the retention.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	cutoff := s.now().Add(-s.retention)
	n, err := s.pruner.PruneEvents(ctx, cutoff)
	if err != nil {
		log.Printf("[scheduler] Prune error: %v", err)
		return 0
	}
	log.Printf("[scheduler] Pruned %d event(s) before %s", n, cutoff.Format(time.RFC3339))
	return n
}
