package app

import (
	"net/http"

	"github.com/vlatan/media-hub/internal/utils"
)

// RegisterRoutes registers routes and
// assigns custom handler to the HTTP server
func (a *App) RegisterRoutes() *App {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", a.pages.HomeHandler)
	mux.HandleFunc("GET /playlist/{$}", a.pages.PlaylistHandler)
	mux.HandleFunc("GET /submit/{$}", a.pages.SubmitFormHandler)
	mux.HandleFunc("POST /submit/{$}", a.pages.SubmitHandler)
	mux.HandleFunc("GET /playlist/{id}/{action}", a.pages.ActionHandler)
	mux.HandleFunc("POST /playlist/{id}/{action}", a.pages.ActionHandler)

	// Authentication
	mux.HandleFunc("GET /login/{$}", a.auth.LoginFormHandler)
	mux.HandleFunc("POST /login/{$}", a.auth.LoginHandler)
	mux.HandleFunc("POST /logout/{$}", a.auth.LogoutHandler)

	// JSON API
	mux.HandleFunc("GET /api/submissions", a.api.ListHandler)
	mux.HandleFunc("POST /api/submissions", a.api.CreateHandler)
	mux.HandleFunc("DELETE /api/submissions/{id}", a.mw.IsAdmin(a.api.DeleteHandler))
	mux.HandleFunc("POST /api/token", a.api.TokenHandler)

	// The rest
	mux.HandleFunc("GET /health/{$}", a.mw.IsAdmin(a.misc.HealthHandler))
	mux.HandleFunc("GET /healthcheck", a.misc.HealthCheckHandler)
	mux.HandleFunc("GET /static/", a.misc.StaticHandler)

	// Register favicons serving from root
	for _, favicon := range utils.RootFavicons {
		mux.HandleFunc("GET "+favicon, a.misc.StaticHandler)
	}

	// Chain middlewares that apply to all requests.
	// The order is important.
	// Use this custom handler as HTTP server handler
	a.server.Handler = a.mw.ApplyToAll(
		a.mw.RecoverPanic,
		a.mw.Logging,
		a.mw.CloseBody,
		a.mw.WWWRedirect,
		a.mw.AddHeaders,
		a.mw.Compress,
		a.mw.LoadUser,
		a.mw.CSRF,
		a.mw.LoadData,
		a.mw.HandleErrors,
	)(mux)

	return a
}
