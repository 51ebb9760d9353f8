package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/config"
	"github.com/anuragmoyde/mentor4all-sub000/internal/reminders"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage"
)

type pingStore struct {
	storage.Store
}

func (pingStore) Ping(ctx context.Context) error { return nil }

func testConfig() config.Config {
	return config.Config{
		Port:               "0",
		JWTSecret:          "test-secret",
		JWTTTL:             time.Hour,
		CORSOrigins:        []string{"*"},
		RateLimitPerMinute: 120,
		RateLimitBurst:     20,
	}
}

func TestRouterServesHealthWithRequestID(t *testing.T) {
	store := pingStore{}
	logger := zap.NewNop()
	h := NewRouter(testConfig(), store, reminders.NewScanner(store, logger, 0), logger)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q", got)
	}
	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("request id header = %q", got)
	}
	var env struct {
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env.RequestID != "req-123" {
		t.Fatalf("envelope request id = %q (%v)", env.RequestID, err)
	}
}

func TestRouterProtectsPrivateRoutes(t *testing.T) {
	store := pingStore{}
	logger := zap.NewNop()
	h := NewRouter(testConfig(), store, reminders.NewScanner(store, logger, 0), logger)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/bookings"},
		{http.MethodGet, "/mentors/me/availability"},
		{http.MethodPost, "/functions/ensure-mentor-profile"},
		{http.MethodPatch, "/sessions/00000000-0000-0000-0000-000000000001/status"},
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", route.method, route.path, rec.Code)
		}
	}
}
