package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/abhaypanjeta/TimeDesk/internal/auth"
	"github.com/abhaypanjeta/TimeDesk/internal/handler"
	"github.com/abhaypanjeta/TimeDesk/internal/middleware"
	"github.com/abhaypanjeta/TimeDesk/internal/store"
	"github.com/abhaypanjeta/TimeDesk/internal/timezone"
)

func setup(t *testing.T) *httptest.Server {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)

	st := store.New(pool)
	mgr := auth.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	tz, err := timezone.NewResolver(st, "UTC")
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.New(st, mgr, tz, log)
	rl := middleware.NewRateLimiter(1000, 1000)

	srv := httptest.NewServer(h.Routes(rl))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		raw, _ := io.ReadAll(resp.Body)
		if len(raw) > 0 && raw[0] == '{' {
			_ = json.Unmarshal(raw, &out)
		}
	}
	return resp, out
}

func registerUser(t *testing.T, srv *httptest.Server) (token string) {
	t.Helper()
	email := fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	resp, body := doJSON(t, srv, http.MethodPost, "/api/users", "", map[string]string{
		"email": email, "password": "testpass123", "name": "Test User",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	tok, _ := body["token"].(string)
	if tok == "" {
		t.Fatal("empty token")
	}
	return tok
}

func createEvent(t *testing.T, srv *httptest.Server, token string, fields map[string]any) string {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/api/events", token, fields)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create event: status %d (%v)", resp.StatusCode, body)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatal("empty event id")
	}
	return id
}

// ----- auth -----

func TestRegisterValidation(t *testing.T) {
	srv := setup(t)

	tests := []struct {
		name string
		req  map[string]string
	}{
		{"empty email", map[string]string{"email": "", "password": "testpass123", "name": "X"}},
		{"empty password", map[string]string{"email": "a@b.com", "password": "", "name": "X"}},
		{"short password", map[string]string{"email": "a@b.com", "password": "short", "name": "X"}},
		{"empty name", map[string]string{"email": "a@b.com", "password": "testpass123", "name": ""}},
		{"bad timezone", map[string]string{"email": "a@b.com", "password": "testpass123", "name": "X", "timezone": "Nope/Nowhere"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, srv, http.MethodPost, "/api/users", "", tt.req)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	srv := setup(t)

	email := fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	resp, _ := doJSON(t, srv, http.MethodPost, "/api/users", "", map[string]string{
		"email": email, "password": "testpass123", "name": "Login User",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: %d", resp.StatusCode)
	}

	resp, body := doJSON(t, srv, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": email, "password": "testpass123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: %d", resp.StatusCode)
	}
	if body["name"] != "Login User" {
		t.Errorf("name: %v", body["name"])
	}

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": email, "password": "wrongpassword",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", resp.StatusCode)
	}
}

func TestRefreshRotation(t *testing.T) {
	srv := setup(t)

	email := fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	resp, body := doJSON(t, srv, http.MethodPost, "/api/users", "", map[string]string{
		"email": email, "password": "testpass123", "name": "R",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: %d", resp.StatusCode)
	}
	refresh, _ := body["refreshToken"].(string)

	resp, body = doJSON(t, srv, http.MethodPost, "/api/users/refresh", "", map[string]string{
		"refreshToken": refresh,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh: %d", resp.StatusCode)
	}
	if tok, _ := body["token"].(string); tok == "" {
		t.Fatal("no new access token")
	}

	// rotated token can't be replayed
	resp, _ = doJSON(t, srv, http.MethodPost, "/api/users/refresh", "", map[string]string{
		"refreshToken": refresh,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("replay: expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	srv := setup(t)

	resp, _ := doJSON(t, srv, http.MethodGet, "/api/events", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, srv, http.MethodGet, "/api/events", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad token: expected 401, got %d", resp.StatusCode)
	}
}

// ----- event CRUD -----

func TestEventLifecycle(t *testing.T) {
	srv := setup(t)
	token := registerUser(t, srv)

	id := createEvent(t, srv, token, map[string]any{
		"title": "Dentist", "category": "Health", "priority": "High",
		"date": "2025-03-14", "time": "10:30", "timezone": "America/New_York",
	})

	// stored instant is midnight March 14 eastern = 04:00 UTC (EDT began March 9)
	resp, body := doJSON(t, srv, http.MethodGet, "/api/views/day?date=2025-03-14&timezone=America/New_York", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("day view: %d", resp.StatusCode)
	}
	events, _ := body["events"].([]any)
	if len(events) != 1 {
		t.Fatalf("day bucket: %d events", len(events))
	}

	// toggle completion
	resp, body = doJSON(t, srv, http.MethodPatch, "/api/events/"+id+"/complete", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle: %d", resp.StatusCode)
	}
	if body["completed"] != true {
		t.Errorf("completed: %v", body["completed"])
	}

	// update
	resp, body = doJSON(t, srv, http.MethodPut, "/api/events/"+id, token, map[string]any{
		"title": "Dentist moved", "priority": "Low",
		"date": "2025-03-15", "timezone": "America/New_York",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: %d (%v)", resp.StatusCode, body)
	}
	if body["title"] != "Dentist moved" {
		t.Errorf("title: %v", body["title"])
	}

	// delete
	resp, _ = doJSON(t, srv, http.MethodDelete, "/api/events/"+id, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, srv, http.MethodDelete, "/api/events/"+id, token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("double delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestEventValidation(t *testing.T) {
	srv := setup(t)
	token := registerUser(t, srv)

	tests := []struct {
		name string
		req  map[string]any
	}{
		{"no title", map[string]any{"date": "2025-03-14"}},
		{"bad date", map[string]any{"title": "X", "date": "14/03/2025"}},
		{"bad time", map[string]any{"title": "X", "date": "2025-03-14", "time": "25:00"}},
		{"bad priority", map[string]any{"title": "X", "date": "2025-03-14", "priority": "Urgent"}},
		{"bad timezone", map[string]any{"title": "X", "date": "2025-03-14", "timezone": "Nope/Nowhere"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, srv, http.MethodPost, "/api/events", token, tt.req)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestEventOwnerScoping(t *testing.T) {
	srv := setup(t)
	owner := registerUser(t, srv)
	other := registerUser(t, srv)

	id := createEvent(t, srv, owner, map[string]any{
		"title": "private", "date": "2025-03-14", "timezone": "UTC",
	})

	resp, _ := doJSON(t, srv, http.MethodDelete, "/api/events/"+id, other, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-user delete: expected 404, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, srv, http.MethodPut, "/api/events/"+id, other, map[string]any{
		"title": "stolen", "date": "2025-03-14", "timezone": "UTC",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-user update: expected 404, got %d", resp.StatusCode)
	}
}

// ----- timezone + views -----

func TestTimezoneSelection(t *testing.T) {
	srv := setup(t)
	token := registerUser(t, srv)

	resp, body := doJSON(t, srv, http.MethodGet, "/api/timezone", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: %d", resp.StatusCode)
	}
	if body["timezone"] != "UTC" {
		t.Errorf("default: %v", body["timezone"])
	}

	resp, _ = doJSON(t, srv, http.MethodPut, "/api/timezone", token, map[string]string{"timezone": "Asia/Tokyo"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set: %d", resp.StatusCode)
	}
	resp, body = doJSON(t, srv, http.MethodGet, "/api/timezone", token, nil)
	if resp.StatusCode != http.StatusOK || body["timezone"] != "Asia/Tokyo" {
		t.Errorf("after set: %d %v", resp.StatusCode, body["timezone"])
	}

	resp, _ = doJSON(t, srv, http.MethodPut, "/api/timezone", token, map[string]string{"timezone": "Nope/Nowhere"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown zone: expected 400, got %d", resp.StatusCode)
	}
}

// Changing only the viewing zone moves the event across day buckets.
func TestDayViewRebucketsAcrossZones(t *testing.T) {
	srv := setup(t)
	token := registerUser(t, srv)

	createEvent(t, srv, token, map[string]any{
		"title": "tokyo-morning", "date": "2025-03-01", "timezone": "Asia/Tokyo",
	})

	resp, body := doJSON(t, srv, http.MethodGet, "/api/views/day?date=2025-03-01&timezone=Asia/Tokyo", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("day view: %d", resp.StatusCode)
	}
	if events, _ := body["events"].([]any); len(events) != 1 {
		t.Errorf("tokyo bucket: %d events", len(events))
	}

	resp, body = doJSON(t, srv, http.MethodGet, "/api/views/day?date=2025-02-28&timezone=America/Los_Angeles", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("day view: %d", resp.StatusCode)
	}
	if events, _ := body["events"].([]any); len(events) != 1 {
		t.Errorf("LA Feb 28 bucket: %d events", len(events))
	}
}

func TestMonthViewShape(t *testing.T) {
	srv := setup(t)
	token := registerUser(t, srv)

	resp, body := doJSON(t, srv, http.MethodGet, "/api/views/month?month=2024-04", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("month view: %d", resp.StatusCode)
	}
	weeks, _ := body["weeks"].([]any)
	if len(weeks) != 6 {
		t.Fatalf("weeks: %d", len(weeks))
	}
	for _, wk := range weeks {
		if days, _ := wk.([]any); len(days) != 7 {
			t.Fatalf("week length: %d", len(days))
		}
	}
}

// ----- exports -----

func TestExports(t *testing.T) {
	srv := setup(t)
	token := registerUser(t, srv)

	createEvent(t, srv, token, map[string]any{
		"title": "exported", "date": "2025-03-14", "time": "09:00", "timezone": "UTC",
	})

	tests := []struct {
		path        string
		contentType string
	}{
		{"/api/export/month?month=2025-03", "application/pdf"},
		{"/api/export/day?date=2025-03-14", "application/pdf"},
		{"/api/export/calendar.ics", "text/calendar"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, _ := doJSON(t, srv, http.MethodGet, tt.path, token, nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("content type %s", ct)
			}
			if resp.Header.Get("Content-Disposition") == "" {
				t.Error("no content disposition")
			}
		})
	}
}
