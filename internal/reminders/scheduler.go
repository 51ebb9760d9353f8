package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const scanTimeout = time.Minute

// Scheduler runs Scan on a fixed interval in the background.
type Scheduler struct {
	cron    *gocron.Scheduler
	scanner *Scanner
	logger  *zap.Logger
}

// StartScheduler registers the scan job and starts it asynchronously. The
// first run happens immediately.
func StartScheduler(scanner *Scanner, interval time.Duration, logger *zap.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("reminder interval must be positive, got %s", interval)
	}
	s := &Scheduler{cron: gocron.NewScheduler(time.UTC), scanner: scanner, logger: logger}
	s.cron.SingletonModeAll()
	if _, err := s.cron.Every(interval).StartImmediately().Do(s.run); err != nil {
		return nil, fmt.Errorf("schedule reminder scan: %w", err)
	}
	s.cron.StartAsync()
	logger.Info("reminder scan scheduled", zap.Duration("interval", interval))
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()
	if _, err := s.scanner.Scan(ctx); err != nil {
		s.logger.Error("reminder scan failed", zap.Error(err))
	}
}

// Stop halts the schedule.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
