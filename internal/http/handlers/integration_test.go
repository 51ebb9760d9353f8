package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/auth"
	"github.com/anuragmoyde/mentor4all-sub000/internal/availability"
	"github.com/anuragmoyde/mentor4all-sub000/internal/booking"
	"github.com/anuragmoyde/mentor4all-sub000/internal/dashboard"
	"github.com/anuragmoyde/mentor4all-sub000/internal/middleware"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
	"github.com/anuragmoyde/mentor4all-sub000/internal/models/dto"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage/postgres"
)

// TestMarketplaceIntegration walks signup, mentor bootstrap, availability and a
// contended booking against a live Postgres.
func TestMarketplaceIntegration(t *testing.T) {
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := mustGetEnv(t, "DATABASE_URL")

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	logger := zap.NewNop()
	tokens := auth.NewTokenManager(mustGetEnv(t, "JWT_SECRET"), os.Getenv("JWT_ISSUER"), time.Hour)
	authn := middleware.RequireAuth(tokens)
	dashboards := dashboard.NewService(store)

	r := chi.NewRouter()
	NewAuthHandler(store, tokens, logger).Register(r, authn)
	NewMentorHandler(store, logger).Register(r, authn)
	NewAvailabilityHandler(availability.NewManager(store, logger), store, logger).Register(r, authn)
	NewBookingHandler(booking.NewReconciler(store, store, logger), dashboards, logger).Register(r, authn)
	ts := httptest.NewServer(r)
	defer ts.Close()

	mentor := signup(t, ts.URL, models.UserTypeMentor)
	menteeA := signup(t, ts.URL, models.UserTypeMentee)
	menteeB := signup(t, ts.URL, models.UserTypeMentee)

	loggedIn := login(t, ts.URL, mentor.email, mentor.password)
	if loggedIn.Profile.ID != mentor.profile.ID {
		t.Fatalf("login returned wrong profile: want %s got %s", mentor.profile.ID, loggedIn.Profile.ID)
	}

	call(t, ts.URL, http.MethodPost, "/functions/ensure-mentor-profile", mentor.token,
		map[string]string{"userId": mentor.profile.ID.String()}, http.StatusOK, nil)
	call(t, ts.URL, http.MethodPut, "/mentors/me", mentor.token,
		map[string]any{"hourly_rate": 1200}, http.StatusOK, nil)

	day := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	var slots []models.AvailabilitySlot
	call(t, ts.URL, http.MethodPost, "/mentors/me/availability/slots", mentor.token,
		map[string]string{"day": day, "start_time": "09:00", "end_time": "10:00"}, http.StatusCreated, &slots)
	if len(slots) != 1 {
		t.Fatalf("slots = %+v", slots)
	}
	slotID := slots[0].ID.String()

	var wg sync.WaitGroup
	codes := make(chan int, 2)
	for _, mentee := range []account{menteeA, menteeB} {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			codes <- status(t, ts.URL, http.MethodPost, "/bookings", token,
				map[string]string{"slot_id": slotID, "title": "Career chat"})
		}(mentee.token)
	}
	wg.Wait()
	close(codes)

	got := map[int]int{}
	for c := range codes {
		got[c]++
	}
	if got[http.StatusCreated] != 1 || got[http.StatusConflict] != 1 {
		t.Fatalf("booking race statuses = %v, want one 201 and one 409", got)
	}
	t.Logf("mentor %s slot %s booked exactly once", mentor.profile.ID, slotID)
}

type account struct {
	email    string
	password string
	token    string
	profile  models.Profile
}

func signup(t *testing.T, baseURL, userType string) account {
	t.Helper()
	stamp := time.Now().UnixNano()
	a := account{
		email:    fmt.Sprintf("it_%s_%d@example.com", userType, stamp),
		password: fmt.Sprintf("Pass!%d", stamp),
	}
	var out dto.LoginResponse
	call(t, baseURL, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":      a.email,
		"password":   a.password,
		"first_name": "Integration",
		"last_name":  userType,
		"user_type":  userType,
	}, http.StatusCreated, &out)
	a.token, a.profile = out.Token, out.Profile
	return a
}

func login(t *testing.T, baseURL, email, password string) dto.LoginResponse {
	t.Helper()
	var out dto.LoginResponse
	call(t, baseURL, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password}, http.StatusOK, &out)
	if strings.TrimSpace(out.Token) == "" {
		t.Fatal("login response missing token")
	}
	return out
}

func send(t *testing.T, baseURL, method, path, token string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func status(t *testing.T, baseURL, method, path, token string, payload any) int {
	resp := send(t, baseURL, method, path, token, payload)
	resp.Body.Close()
	return resp.StatusCode
}

func call(t *testing.T, baseURL, method, path, token string, payload any, want int, out any) {
	t.Helper()
	resp := send(t, baseURL, method, path, token, payload)
	defer resp.Body.Close()

	var env struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	if resp.StatusCode != want {
		t.Fatalf("%s %s status = %d (%s), want %d", method, path, resp.StatusCode, env.Message, want)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode %s %s data: %v", method, path, err)
		}
	}
}

func mustGetEnv(t *testing.T, key string) string {
	t.Helper()
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		t.Fatalf("%s is required", key)
	}
	return val
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
		"../../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
