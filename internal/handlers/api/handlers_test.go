package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlatan/media-hub/internal/auth"
	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/integrations/yt"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/playlist"
	"github.com/vlatan/media-hub/internal/store"
	"github.com/vlatan/media-hub/internal/ui"
)

var (
	testConfig = &config.Config{AppName: "Test Hub", StoreTimeout: time.Second}
	testUI     = ui.New(sessions.NewCookieStore(securecookie.GenerateRandomKey(32)), testConfig)
	admin      = &models.Viewer{UserID: "1", Email: "admin@example.com", Role: models.Admin}
	anonymous  = &models.Viewer{Role: models.Anonymous}
)

const videoURL = "https://youtu.be/dQw4w9WgXcQ"

type fakeTokens struct {
	err error
}

func (f fakeTokens) Token(ctx context.Context, email, password string) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return "signed", time.Now().Add(time.Hour), nil
}

// failingStore fails every call with the error
type failingStore struct {
	store.Store
	err error
}

func (f failingStore) List(ctx context.Context) (models.Submissions, error) {
	return nil, f.err
}

func newTestService(s store.Store, tokens TokenIssuer) *Service {
	return New(
		s,
		playlist.NewDispatcher(s, time.Second),
		playlist.NewSubmitter(s, yt.Extractor{Strict: true}, nil, time.Second),
		tokens,
		testUI,
		testConfig,
	)
}

func serve(handler http.HandlerFunc, r *http.Request, viewer *models.Viewer) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r = r.WithContext(context.WithValue(r.Context(), models.ViewerContextKey, viewer))
	handler(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestListHandler(t *testing.T) {

	t.Run("empty list", func(t *testing.T) {
		s := newTestService(store.NewMemory(), fakeTokens{})
		w := serve(s.ListHandler, httptest.NewRequest(http.MethodGet, "/api/submissions", nil), anonymous)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"submissions":[]}`, w.Body.String())
	})

	t.Run("newest first", func(t *testing.T) {
		mem := store.NewMemory()
		for _, title := range []string{"first", "second"} {
			_, err := mem.Add(context.Background(), models.SubmissionFields{Title: title, VideoURL: videoURL, VideoID: "dQw4w9WgXcQ"})
			require.NoError(t, err)
		}

		s := newTestService(mem, fakeTokens{})
		w := serve(s.ListHandler, httptest.NewRequest(http.MethodGet, "/api/submissions", nil), anonymous)

		got := decode[listResponse](t, w)
		require.Len(t, got.Submissions, 2)
		assert.False(t, got.Submissions[0].CreatedAt.Before(got.Submissions[1].CreatedAt))
	})

	t.Run("store unavailable", func(t *testing.T) {
		failing := failingStore{err: store.Classify("list", context.DeadlineExceeded)}
		s := newTestService(failing, fakeTokens{})
		w := serve(s.ListHandler, httptest.NewRequest(http.MethodGet, "/api/submissions", nil), anonymous)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		got := decode[models.JSONErrorData](t, w)
		assert.True(t, strings.HasPrefix(got.Error, "Error loading: "))
	})
}

func TestCreateHandler(t *testing.T) {

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"valid", `{"title":"Song","video_url":"` + videoURL + `"}`, http.StatusCreated, ""},
		{"missing title", `{"video_url":"` + videoURL + `"}`, http.StatusUnprocessableEntity, "Title and YouTube required."},
		{"invalid link", `{"title":"Song","video_url":"https://www.youtube.com/"}`, http.StatusUnprocessableEntity, "Invalid YouTube URL."},
		{"malformed", `{"title":`, http.StatusBadRequest, "Malformed JSON body."},
		{"unknown field", `{"title":"Song","video_url":"` + videoURL + `","id":"1"}`, http.StatusBadRequest, "Malformed JSON body."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := store.NewMemory()
			s := newTestService(mem, fakeTokens{})

			r := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(tt.body))
			w := serve(s.CreateHandler, r, anonymous)
			assert.Equal(t, tt.wantStatus, w.Code)

			subs, err := mem.List(context.Background())
			require.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decode[models.JSONErrorData](t, w).Error)
				assert.Empty(t, subs)
				return
			}

			got := decode[createResponse](t, w)
			require.Len(t, subs, 1)
			assert.Equal(t, subs[0].ID, got.ID)
			assert.Equal(t, "dQw4w9WgXcQ", subs[0].VideoID)
			assert.Equal(t, playlist.SavedMessage, got.Message)
		})
	}
}

func TestDeleteHandler(t *testing.T) {

	tests := []struct {
		name       string
		viewer     *models.Viewer
		query      string
		missing    bool
		wantStatus int
		wantKept   bool
	}{
		{"anonymous", anonymous, "?confirm=yes", false, http.StatusForbidden, true},
		{"unconfirmed", admin, "", false, http.StatusPreconditionRequired, true},
		{"confirmed", admin, "?confirm=yes", false, http.StatusOK, false},
		{"missing", admin, "?confirm=yes", true, http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := store.NewMemory()
			id, err := mem.Add(context.Background(), models.SubmissionFields{Title: "Song", VideoURL: videoURL, VideoID: "dQw4w9WgXcQ"})
			require.NoError(t, err)

			target := id
			if tt.missing {
				target = "does-not-exist"
			}

			s := newTestService(mem, fakeTokens{})
			r := httptest.NewRequest(http.MethodDelete, "/api/submissions/"+target+tt.query, nil)
			r.SetPathValue("id", target)
			w := serve(s.DeleteHandler, r, tt.viewer)

			assert.Equal(t, tt.wantStatus, w.Code)

			got, err := mem.GetByID(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKept || tt.missing, got != nil)
		})
	}
}

func TestTokenHandler(t *testing.T) {

	tests := []struct {
		name       string
		err        error
		body       string
		wantStatus int
	}{
		{"issued", nil, `{"email":"admin@example.com","password":"secret"}`, http.StatusOK},
		{"wrong password", &auth.AuthError{Code: auth.CodeWrongPassword, Err: auth.ErrWrongPassword}, `{"email":"a@b.c","password":"x"}`, http.StatusUnauthorized},
		{"member", &auth.AuthError{Code: auth.CodeAccessDenied, Err: auth.ErrAccessDenied}, `{"email":"a@b.c","password":"x"}`, http.StatusForbidden},
		{"missing", &auth.AuthError{Code: auth.CodeMissingCredentials, Err: auth.ErrMissingCredentials}, `{}`, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), `{"email":"a@b.c","password":"x"}`, http.StatusInternalServerError},
		{"malformed", nil, `nope`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(store.NewMemory(), fakeTokens{err: tt.err})
			r := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(tt.body))
			w := serve(s.TokenHandler, r, anonymous)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				got := decode[tokenResponse](t, w)
				assert.Equal(t, "signed", got.Token)
				assert.Equal(t, "Bearer", got.TokenType)
			}
		})
	}
}
