package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anuragmoyde/mentor4all-sub000/internal/auth"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

// MenteeDashboard is the payload for /dashboard.
type MenteeDashboard struct {
	Summary  MenteeSummary    `json:"summary"`
	Upcoming []models.Session `json:"upcoming"`
	Past     []models.Session `json:"past"`
}

// MentorDashboard is the payload for /mentor-dashboard.
type MentorDashboard struct {
	Summary  MentorSummary    `json:"summary"`
	Upcoming []models.Session `json:"upcoming"`
	Past     []models.Session `json:"past"`
}

// Service loads a user's sessions and reduces them.
type Service struct {
	sessions storage.SessionStore
	now      func() time.Time
}

// NewService constructs a Service.
func NewService(sessions storage.SessionStore) *Service {
	return &Service{sessions: sessions, now: time.Now}
}

// Mentee returns the dashboard for sessions the caller booked.
func (s *Service) Mentee(ctx context.Context, id auth.Identity) (MenteeDashboard, error) {
	upcoming, past, err := s.Split(ctx, storage.SessionFilter{MenteeID: id.UserID})
	if err != nil {
		return MenteeDashboard{}, err
	}
	return MenteeDashboard{Summary: SummarizeMentee(upcoming, past), Upcoming: upcoming, Past: past}, nil
}

// Mentor returns the dashboard for sessions the caller hosts.
func (s *Service) Mentor(ctx context.Context, id auth.Identity) (MentorDashboard, error) {
	upcoming, past, err := s.Split(ctx, storage.SessionFilter{MentorID: id.UserID})
	if err != nil {
		return MentorDashboard{}, err
	}
	return MentorDashboard{Summary: SummarizeMentor(upcoming, past), Upcoming: upcoming, Past: past}, nil
}

// Split runs one query per side of now so each list is bounded by the store.
func (s *Service) Split(ctx context.Context, filter storage.SessionFilter) (upcoming, past []models.Session, err error) {
	if filter.MentorID == uuid.Nil && filter.MenteeID == uuid.Nil {
		return nil, nil, fmt.Errorf("dashboard: no participant given")
	}
	now := s.now()

	up := filter
	up.StartsFrom = &now
	up.StartsBefore = nil
	if upcoming, err = s.sessions.ListSessions(ctx, up); err != nil {
		return nil, nil, fmt.Errorf("upcoming sessions: %w", err)
	}

	before := filter
	before.StartsFrom = nil
	before.StartsBefore = &now
	if past, err = s.sessions.ListSessions(ctx, before); err != nil {
		return nil, nil, fmt.Errorf("past sessions: %w", err)
	}
	if upcoming == nil {
		upcoming = []models.Session{}
	}
	if past == nil {
		past = []models.Session{}
	}
	return upcoming, past, nil
}
