package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestLimiterStoreEvictsIdleClients(t *testing.T) {
	clock := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)
	store := newLimiterStore(rate.Every(time.Second), 1, time.Minute)
	store.now = func() time.Time { return clock }
	store.lastSweep = clock

	for i := 0; i < 100; i++ {
		store.get(fmt.Sprintf("10.0.0.%d", i))
	}
	if n := store.size(); n != 100 {
		t.Fatalf("limiters = %d, want 100", n)
	}

	// One client stays active halfway through the idle window.
	clock = clock.Add(30 * time.Second)
	store.get("10.0.0.7")

	clock = clock.Add(45 * time.Second)
	store.get("192.168.1.1")

	if n := store.size(); n != 2 {
		t.Fatalf("limiters after sweep = %d, want 2 (active + new)", n)
	}
}

func TestLimiterStoreKeepsBucketStateForActiveClients(t *testing.T) {
	clock := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)
	store := newLimiterStore(rate.Every(time.Hour), 1, time.Minute)
	store.now = func() time.Time { return clock }
	h := rateLimit(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := []int{}
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/mentors", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		clock = clock.Add(10 * time.Second)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}
