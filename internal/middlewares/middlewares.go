package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/klauspost/compress/gzhttp"
	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/ui"
	"github.com/vlatan/media-hub/internal/utils"
)

// ViewerSource derives the viewer behind the request
type ViewerSource interface {
	CurrentViewer(r *http.Request) *models.Viewer
}

type Service struct {
	ui      ui.Service
	viewers ViewerSource
	config  *config.Config
}

func New(ui ui.Service, viewers ViewerSource, config *config.Config) *Service {
	return &Service{
		ui:      ui,
		viewers: viewers,
		config:  config,
	}
}

// Check if the viewer is admin
func (s *Service) IsAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if viewer := models.GetViewerFromContext(r); viewer.IsAdmin() {
			next(w, r)
			return
		}

		// The API writes its own errors
		if utils.IsAPI(r) {
			s.ui.JSONError(w, r, http.StatusForbidden, "Access denied. Admin only.")
			return
		}

		utils.HttpError(w, http.StatusForbidden)
	}
}

// Get the viewer from the token or the session and put it in context
func (s *Service) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Check if request possibly needs a cookie
		if !utils.NeedsCookie(w, r) {
			next.ServeHTTP(w, r)
			return
		}

		viewer := s.viewers.CurrentViewer(r)
		ctx := context.WithValue(r.Context(), models.ViewerContextKey, viewer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Create the default template data and put it in context
func (s *Service) LoadData(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Neither static files nor the API render templates
		if !utils.NeedsCookie(w, r) || utils.IsAPI(r) {
			next.ServeHTTP(w, r)
			return
		}

		data := s.ui.NewData(w, r)
		ctx := context.WithValue(r.Context(), models.DataContextKey, data)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Close the body if POST request
func (s *Service) CloseBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Close request body for POST methods to prevent resource leaks
		if r.Method == http.MethodPost {
			defer r.Body.Close()
		}
		next.ServeHTTP(w, r)
	})
}

// Do not crash the app on panic, serve 500 error to the client
func (s *Service) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If in production recover panic
		if !s.config.Debug {
			defer func() {
				if err := recover(); err != nil {
					log.Printf("panic in %s %s; %#v", r.Method, r.URL.Path, err)
					utils.HttpError(w, http.StatusInternalServerError)
				}
			}()
		}

		next.ServeHTTP(w, r)
	})
}

// Log the method, the URI, the status and the duration of the request
func (s *Service) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		// Static files are not worth the noise
		if utils.IsStatic(r) && recorder.status < 400 {
			return
		}

		log.Printf(
			"%s %s %d %s",
			r.Method, r.RequestURI, recorder.status,
			time.Since(start).Round(time.Millisecond),
		)
	})
}

// Add security headers to request
func (s *Service) AddHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")

		// No referrer to other origins
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// HSTS (HTTPS only)
		if !s.config.Debug {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

// Redirect WWW to non-WWW
func (s *Service) WWWRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check for 'www.' prefix
		if !strings.HasPrefix(r.Host, "www.") {
			next.ServeHTTP(w, r)
			return
		}

		// Clone the URL
		u := *r.URL
		u.Host = strings.TrimPrefix(r.Host, "www.")
		u.Scheme = s.config.Protocol
		if s.config.Debug {
			u.Scheme = "http"
		}

		http.Redirect(w, r, u.String(), http.StatusMovedPermanently)
	})
}

// Record the status code and body and serves rich errors if the response is error
func (s *Service) HandleErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// The API writes its own JSON errors
		if utils.IsAPI(r) {
			next.ServeHTTP(w, r)
			return
		}

		// Create our custom response recorder
		recorder := NewResponseRecorder(w)

		// Defer the final response write until the function exits.
		// This ensures that either the original response or the error response is written.
		defer recorder.flush()

		next.ServeHTTP(recorder, r)

		// We don't care if this is not an error
		if recorder.status < 400 {
			return
		}

		// This is an error, clear any previously buffered body
		recorder.body.Reset()
		w.Header().Del("Content-Length")

		// Client probably does not want HTML, serve JSON error
		if !strings.Contains(r.Header.Get("Accept"), "text/html") {
			s.ui.JSONError(recorder, r, recorder.status, "")
			return
		}

		// Serve rich HTML error
		s.ui.HTMLError(recorder, r, recorder.status, models.GetDataFromContext(r))
	})
}

// Create CSRF middlware with added plain text option for local development
func (s *Service) CSRF(next http.Handler) http.Handler {

	// Create the csrf middleware as per the gorilla/csrf documentation
	csrfMiddleware := csrf.Protect(
		s.config.CsrfKey.Bytes,
		csrf.CookieName(s.config.CsrfSessionName),
		csrf.Secure(!s.config.Debug),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Check if request possibly needs a cookie
		if !utils.NeedsCookie(w, r) {
			next.ServeHTTP(w, r)
			return
		}

		// API calls with a bearer token or without cookies have nothing to forge
		if utils.IsAPI(r) && (hasBearer(r) || r.Header.Get("Cookie") == "") {
			next.ServeHTTP(w, r)
			return
		}

		// If debug set plain text (HTTP) schema
		if s.config.Debug {
			r = csrf.PlaintextHTTPRequest(r)
		}

		// Call the pre-created CSRF middleware
		csrfMiddleware(next).ServeHTTP(w, r)
	})
}

// Compress provides gzip compression to non-static pages
func (s *Service) Compress(next http.Handler) http.Handler {

	// Create the gzip handler
	gzipHandler := gzhttp.GzipHandler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Static files are compressed on startup
		if utils.IsStatic(r) {
			next.ServeHTTP(w, r)
			return
		}

		gzipHandler.ServeHTTP(w, r)
	})
}

// Chain middlewares that apply to all handlers
func (s *Service) ApplyToAll(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		// Apply middlewares in reverse order
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

func hasBearer(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Authorization")), "bearer ")
}
