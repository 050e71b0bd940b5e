package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func setSecrets(t *testing.T) {
	t.Helper()
	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	t.Setenv("CSRF_KEY", secret)
	t.Setenv("AUTH_KEY", secret)
	t.Setenv("ENCRYPTION_KEY", secret)
	t.Setenv("JWT_SECRET", secret)
}

func TestParse(t *testing.T) {

	tests := []struct {
		name    string
		env     map[string]string
		secrets bool
		wantErr bool
	}{
		{"app without secrets", map[string]string{"TARGET": "app"}, false, true},
		{"backup without secrets", map[string]string{"TARGET": "backup"}, false, false},
		{"app with secrets", map[string]string{"TARGET": "app"}, true, false},
		{"unknown driver", map[string]string{"TARGET": "backup", "STORE_DRIVER": "mongo"}, false, true},
		{"zero timeout", map[string]string{"TARGET": "backup", "STORE_TIMEOUT": "0s"}, false, true},
		{"invalid secret", map[string]string{"TARGET": "app", "CSRF_KEY": "%%%"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.secrets {
				setSecrets(t)
			}

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Parse()
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("got error = %v, want error = %t", err, tt.wantErr)
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	t.Setenv("TARGET", "backup")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("failed to parse config; %v", err)
	}

	if !cfg.StrictVideoID {
		t.Error("strict video ID check should be on by default")
	}

	if cfg.StoreTimeout != 10*time.Second {
		t.Errorf("got store timeout = %s, want %s", cfg.StoreTimeout, 10*time.Second)
	}

	if cfg.StoreDriver != Postgres {
		t.Errorf("got store driver = %s, want %s", cfg.StoreDriver, Postgres)
	}

	if cfg.AllowMemberLogin {
		t.Error("member login should be off by default")
	}
}

func TestParseAdminEmails(t *testing.T) {
	t.Setenv("TARGET", "backup")
	t.Setenv("ADMIN_EMAILS", " Admin@Example.com, ,second@example.com")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("failed to parse config; %v", err)
	}

	want := []string{"admin@example.com", "second@example.com"}
	if diff := cmp.Diff(want, cfg.AdminEmails); diff != "" {
		t.Errorf("admin emails mismatch (-want +got):\n%s", diff)
	}
}

func TestSecretUnmarshalText(t *testing.T) {

	tests := []struct {
		name    string
		text    string
		want    []byte
		wantErr bool
	}{
		{"valid", base64.StdEncoding.EncodeToString([]byte("foo")), []byte("foo"), false},
		{"empty", "", []byte{}, false},
		{"invalid", "not base64!", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Secret
			err := s.UnmarshalText([]byte(tt.text))
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("got error = %v, want error = %t", err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			if !cmp.Equal(s.Bytes, tt.want) {
				t.Errorf("got %v, want %v", s.Bytes, tt.want)
			}
		})
	}
}
