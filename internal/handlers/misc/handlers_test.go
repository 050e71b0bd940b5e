package misc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/drivers/rdb"
	"github.com/vlatan/media-hub/internal/ui"
)

var (
	testConfig = &config.Config{AppName: "Test Hub", StoreDriver: config.Memory}
	testUI     = ui.New(sessions.NewCookieStore(securecookie.GenerateRandomKey(32)), testConfig)
)

func TestHealthCheckHandler(t *testing.T) {
	s := New(testConfig, nil, nil, testUI)
	w := httptest.NewRecorder()
	s.HealthCheckHandler(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestHealthHandler(t *testing.T) {

	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	redis, err := rdb.New(&config.Config{RedisHost: server.Host(), RedisPort: port})
	require.NoError(t, err)
	t.Cleanup(func() { redis.Close() })

	s := New(testConfig, nil, redis, testUI)
	w := httptest.NewRecorder()
	s.HealthHandler(w, httptest.NewRequest(http.MethodGet, "/health/", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "memory", got["store_driver"])
	assert.Contains(t, got, "server_status")
	assert.Contains(t, got, "redis_status")
	assert.NotContains(t, got, "database_status")
}

func TestStaticHandler(t *testing.T) {

	s := New(testConfig, nil, nil, testUI)
	css := testUI.StaticFiles()["/static/css/style.css"]
	require.NotNil(t, css)

	tests := []struct {
		name         string
		path         string
		header       map[string]string
		wantStatus   int
		wantEncoding string
	}{
		{"plain", "/static/css/style.css", nil, http.StatusOK, ""},
		{"gzip", "/static/css/style.css", map[string]string{"Accept-Encoding": "gzip, br"}, http.StatusOK, "gzip"},
		{"not modified", "/static/css/style.css", map[string]string{"If-None-Match": `"` + css.Etag + `"`}, http.StatusNotModified, ""},
		{"root favicon", "/favicon.ico", nil, http.StatusOK, ""},
		{"missing", "/static/nope.css", nil, http.StatusNotFound, ""},
		{"unclean path", "/static/../web.go", nil, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.URL.Path = tt.path
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}

			w := httptest.NewRecorder()
			s.StaticHandler(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantEncoding, w.Header().Get("Content-Encoding"))
		})
	}
}
