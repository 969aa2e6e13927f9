// Package scheduler runs the periodic maintenance jobs of the site.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultRetentionSchedule runs the purge every night at 03:00.
const DefaultRetentionSchedule = "0 3 * * *"

// Purger deletes read messages older than the retention window.
type Purger interface {
	PurgeRead(retention time.Duration) (int64, error)
}

// RetentionConfig configures the message purge job.
type RetentionConfig struct {
	Schedule  string
	Retention time.Duration
}

// RetentionScheduler periodically purges old read contact messages.
type RetentionScheduler struct {
	purger Purger
	config RetentionConfig
	logger zerolog.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.Mutex
	isRunning  bool
	runMu      sync.Mutex
	cancelFunc context.CancelFunc
}

// NewRetentionScheduler creates a scheduler; an empty schedule uses DefaultRetentionSchedule.
func NewRetentionScheduler(purger Purger, config RetentionConfig, logger zerolog.Logger) *RetentionScheduler {
	if config.Schedule == "" {
		config.Schedule = DefaultRetentionSchedule
	}
	return &RetentionScheduler{
		purger: purger,
		config: config,
		logger: logger,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(schedule)
	return err
}

// Start schedules the job. A zero retention disables it. The scheduler stops when
// ctx is cancelled.
func (s *RetentionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.config.Retention <= 0 {
		s.logger.Info().Msg("message retention: disabled")
		return nil
	}
	if err := ValidateSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		if _, err := s.RunOnce(); err != nil {
			s.logger.Error().Err(err).Msg("message retention: purge failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule purge job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.logger.Info().
		Str("schedule", s.config.Schedule).
		Dur("retention", s.config.Retention).
		Time("next_run", s.cron.Entry(entryID).Next).
		Msg("message retention: started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()
	return nil
}

// Stop waits for a running purge and stops the scheduler.
func (s *RetentionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false
	s.logger.Info().Msg("message retention: stopped")
}

// IsRunning reports whether the job is scheduled.
func (s *RetentionScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// RunOnce purges immediately. Concurrent calls are serialized.
func (s *RetentionScheduler) RunOnce() (int64, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	started := time.Now()
	purged, err := s.purger.PurgeRead(s.config.Retention)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("purged", purged).Dur("took", time.Since(started)).Msg("message retention: purge complete")
	return purged, nil
}
