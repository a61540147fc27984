package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler re-inspects a bundle on a cron schedule. It complements the
// Watcher for bundles on network filesystems, where file events are not
// delivered.
type Scheduler struct {
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// ParseSchedule validates a schedule in standard cron syntax. Descriptors
// such as "@every 30s" and "@hourly" are accepted.
func ParseSchedule(schedule string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// NewScheduler creates a scheduler for the given schedule. Runs never
// overlap: a tick that fires while the previous run is still going is
// skipped.
func NewScheduler(schedule string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "bundle.scheduler"),
	}
}

// Start runs job on the schedule until ctx is cancelled or Stop is called.
// If the schedule is empty, the scheduler does nothing.
//
// Common schedules:
//   - "@every 30s"  - Every 30 seconds
//   - "*/5 * * * *" - Every 5 minutes
func (s *Scheduler) Start(ctx context.Context, job func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Debug("Poll schedule not configured, skipping scheduler")
		return nil
	}

	if err := ParseSchedule(s.schedule); err != nil {
		return err
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if ctx.Err() != nil {
			return
		}
		s.logger.Debug("Scheduled inspection started")
		if err := job(); err != nil {
			s.logger.Error("Scheduled inspection failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule inspection: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("Inspection scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running job to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("Inspection scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled inspection time, or nil if nothing is
// scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
