package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/vlatan/media-hub/internal/config"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "correct horse"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	if err != nil {
		t.Fatalf("failed to parse the miniredis port; %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash the password; %v", err)
	}

	key := func(b byte) config.Secret {
		return config.Secret{Bytes: bytes.Repeat([]byte{b}, 32)}
	}

	cfg := &config.Config{
		Debug:            true,
		AppName:          "Media Hub",
		CsrfKey:          key(1),
		AuthKey:          key(2),
		EncryptionKey:    key(3),
		JWTSecret:        key(4),
		UserSessionName:  "_hub",
		FlashSessionName: "_hub_flash",
		CsrfSessionName:  "_hub_csrf",
		SessionMaxAge:    time.Hour,
		TokenTTL:         time.Hour,
		AdminEmails:      []string{adminEmail},
		LocalUsers:       map[string]string{adminEmail: string(hash)},
		StoreDriver:      config.Memory,
		StoreTimeout:     time.Second,
		StrictVideoID:    true,
		RedisHost:        server.Host(),
		RedisPort:        port,
		CacheTimeout:     time.Minute,
		Host:             "localhost",
		Port:             5000,
	}

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to create the app; %v", err)
	}

	t.Cleanup(func() { a.Close() })
	return a
}

func do(t *testing.T, a *App, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, r)
	return w
}

func TestPages(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name     string
		target   string
		accept   string
		want     int
		contains string
	}{
		{"healthcheck", "/healthcheck", "", http.StatusOK, "OK"},
		{"home", "/", "text/html", http.StatusOK, "Media Hub"},
		{"playlist", "/playlist/", "text/html", http.StatusOK, "Media Hub"},
		{"submit form", "/submit/", "text/html", http.StatusOK, "Media Hub"},
		{"login form", "/login/", "text/html", http.StatusOK, "Media Hub"},
		{"stylesheet", "/static/css/style.css", "", http.StatusOK, ""},
		{"missing page", "/missing/", "text/html", http.StatusNotFound, "Media Hub"},
		{"health needs admin", "/health/", "application/json", http.StatusForbidden, `"code":403`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			a.Handler().ServeHTTP(w, r)

			if w.Code != tt.want {
				t.Errorf("got status %d, want %d", w.Code, tt.want)
			}

			if !strings.Contains(w.Body.String(), tt.contains) {
				t.Errorf("got body %q, want it to contain %q", w.Body.String(), tt.contains)
			}
		})
	}
}

func TestAPIRoundTrip(t *testing.T) {
	a := newTestApp(t)

	// Get a token
	w := do(t, a, http.MethodPost, "/api/token",
		`{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("token: got status %d, want %d; %s", w.Code, http.StatusOK, w.Body)
	}

	var token struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &token); err != nil || token.Token == "" {
		t.Fatalf("token: failed to decode %q; %v", w.Body, err)
	}

	// Submit
	w = do(t, a, http.MethodPost, "/api/submissions",
		`{"title":"Song","video_url":"https://youtu.be/dQw4w9WgXcQ"}`, token.Token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got status %d, want %d; %s", w.Code, http.StatusCreated, w.Body)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("create: failed to decode %q; %v", w.Body, err)
	}

	// Anonymous list sees it
	w = do(t, a, http.MethodGet, "/api/submissions", "", "")
	var list struct {
		Submissions []struct {
			ID      string `json:"id"`
			VideoID string `json:"video_id"`
		} `json:"submissions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("list: failed to decode %q; %v", w.Body, err)
	}
	if len(list.Submissions) != 1 || list.Submissions[0].VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("list: got %+v, want the new submission", list.Submissions)
	}

	// Anonymous delete is rejected
	w = do(t, a, http.MethodDelete, "/api/submissions/"+created.ID+"?confirm=yes", "", "")
	if w.Code != http.StatusForbidden {
		t.Errorf("anonymous delete: got status %d, want %d", w.Code, http.StatusForbidden)
	}

	// Unconfirmed delete asks for confirmation
	w = do(t, a, http.MethodDelete, "/api/submissions/"+created.ID, "", token.Token)
	if w.Code != http.StatusPreconditionRequired {
		t.Errorf("unconfirmed delete: got status %d, want %d", w.Code, http.StatusPreconditionRequired)
	}

	w = do(t, a, http.MethodDelete, "/api/submissions/"+created.ID+"?confirm=yes", "", token.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got status %d, want %d; %s", w.Code, http.StatusOK, w.Body)
	}

	w = do(t, a, http.MethodGet, "/api/submissions", "", "")
	if !strings.Contains(w.Body.String(), `"submissions":[]`) {
		t.Errorf("list after delete: got %s, want no submissions", w.Body)
	}
}

func TestTokenWrongPassword(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodPost, "/api/token",
		`{"email":"`+adminEmail+`","password":"wrong"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
