package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

type fakeSessions struct {
	storage.SessionStore
	due      []models.SessionReminder
	from, to time.Time
	err      error
}

func (f *fakeSessions) ScheduledBetween(ctx context.Context, from, to time.Time) ([]models.SessionReminder, error) {
	f.from, f.to = from, to
	return f.due, f.err
}

func TestScanLogsEachReminder(t *testing.T) {
	now := time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)
	store := &fakeSessions{due: []models.SessionReminder{
		{Session: models.Session{ID: uuid.New(), Title: "Career chat", DateTime: now.Add(2 * time.Hour)}, MentorName: "Ada", MenteeName: "Lin"},
		{Session: models.Session{ID: uuid.New(), Title: "Mock interview", DateTime: now.Add(20 * time.Hour)}, MentorName: "Ada", MenteeName: "Sam"},
	}}
	core, logs := observer.New(zap.InfoLevel)
	s := NewScanner(store, zap.New(core), 0)
	s.now = func() time.Time { return now }

	count, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if !store.from.Equal(now) || !store.to.Equal(now.Add(24*time.Hour)) {
		t.Fatalf("window = [%s, %s)", store.from, store.to)
	}
	if n := logs.FilterMessage("session reminder").Len(); n != 2 {
		t.Fatalf("reminder log entries = %d, want 2", n)
	}
}

func TestScanWrapsStoreError(t *testing.T) {
	boom := errors.New("boom")
	s := NewScanner(&fakeSessions{err: boom}, zap.NewNop(), time.Hour)
	if _, err := s.Scan(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("error = %v", err)
	}
}

func TestStartSchedulerRejectsZeroInterval(t *testing.T) {
	if _, err := StartScheduler(NewScanner(&fakeSessions{}, zap.NewNop(), 0), 0, zap.NewNop()); err == nil {
		t.Fatal("expected error for zero interval")
	}
}
