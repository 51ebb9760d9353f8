// Package reminders finds sessions that are about to start.
package reminders

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

// DefaultWindow is how far ahead a scan looks.
const DefaultWindow = 24 * time.Hour

// Scanner reports scheduled sessions starting within the window. Delivery is
// out of scope; each would-be reminder is logged.
type Scanner struct {
	sessions storage.SessionStore
	logger   *zap.Logger
	window   time.Duration
	now      func() time.Time
}

// NewScanner constructs a Scanner. A non-positive window falls back to DefaultWindow.
func NewScanner(sessions storage.SessionStore, logger *zap.Logger, window time.Duration) *Scanner {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Scanner{sessions: sessions, logger: logger, window: window, now: time.Now}
}

// Scan returns the number of sessions starting in [now, now+window).
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	from := s.now().UTC()
	to := from.Add(s.window)
	due, err := s.sessions.ScheduledBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("scan reminders: %w", err)
	}
	for _, r := range due {
		s.logger.Info("session reminder",
			zap.String("session_id", r.ID.String()),
			zap.String("title", r.Title),
			zap.Time("starts_at", r.DateTime),
			zap.String("mentor", r.MentorName),
			zap.String("mentee", r.MenteeName),
		)
	}
	s.logger.Info("reminder scan finished", zap.Int("count", len(due)), zap.Time("until", to))
	return len(due), nil
}
