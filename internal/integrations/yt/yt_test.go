package yt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"google.golang.org/api/option"
)

// newTestService points the YouTube client to a fake API
func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s, err := New(
		context.Background(),
		"test-key",
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("failed to create the service; %v", err)
	}

	s.retry.Delay = time.Millisecond
	s.retry.MaxJitter = time.Millisecond
	return s
}

func TestNewWithoutKey(t *testing.T) {
	if _, err := New(context.Background(), ""); err == nil {
		t.Error("got nil error, want error without an API key")
	}
}

func TestVerifyVideo(t *testing.T) {

	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  bool
		notFound bool
	}{
		{"public video", http.StatusOK, `{"items":[{"id":"dQw4w9WgXcQ","status":{"privacyStatus":"public"}}]}`, false, false},
		{"no such video", http.StatusOK, `{"items":[]}`, true, true},
		{"private video", http.StatusOK, `{"items":[{"id":"dQw4w9WgXcQ","status":{"privacyStatus":"private"}}]}`, true, true},
		{"bad request", http.StatusBadRequest, `{"error":{"code":400,"message":"bad"}}`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("id"); got != "dQw4w9WgXcQ" {
					t.Errorf("got id %q, want %q", got, "dQw4w9WgXcQ")
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := s.VerifyVideo(context.Background(), "dQw4w9WgXcQ")
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("got error = %v, want error = %t", err, tt.wantErr)
			}

			if notFound := errors.Is(err, ErrVideoNotFound); notFound != tt.notFound {
				t.Errorf("got not found = %t, want %t", notFound, tt.notFound)
			}
		})
	}
}

func TestVerifyVideoRetries(t *testing.T) {

	var calls atomic.Int32
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":{"code":503,"message":"unavailable"}}`))
			return
		}
		w.Write([]byte(`{"items":[{"id":"dQw4w9WgXcQ","status":{"privacyStatus":"public"}}]}`))
	})

	if err := s.VerifyVideo(context.Background(), "dQw4w9WgXcQ"); err != nil {
		t.Fatalf("got error = %v, want nil", err)
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("got %d calls, want %d", got, 2)
	}
}
