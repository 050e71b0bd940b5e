package app

import (
	"context"
	"encoding/gob"
	"fmt"
	"log"
	"net/http"
	"time"

	gorillaSessions "github.com/gorilla/sessions"
	"github.com/vlatan/media-hub/internal/auth"
	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/drivers/database"
	"github.com/vlatan/media-hub/internal/drivers/rdb"
	"github.com/vlatan/media-hub/internal/handlers/api"
	authHandlers "github.com/vlatan/media-hub/internal/handlers/auth"
	"github.com/vlatan/media-hub/internal/handlers/misc"
	"github.com/vlatan/media-hub/internal/handlers/pages"
	"github.com/vlatan/media-hub/internal/integrations/yt"
	"github.com/vlatan/media-hub/internal/middlewares"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/playlist"
	submissionsRepo "github.com/vlatan/media-hub/internal/repositories/submissions"
	usersRepo "github.com/vlatan/media-hub/internal/repositories/users"
	"github.com/vlatan/media-hub/internal/sessions"
	"github.com/vlatan/media-hub/internal/store"
	"github.com/vlatan/media-hub/internal/tokens"
	"github.com/vlatan/media-hub/internal/ui"
)

type App struct {
	auth    *authHandlers.Service
	pages   *pages.Service
	api     *api.Service
	misc    *misc.Service
	mw      *middlewares.Service
	cleanup func() error

	domain string
	server *http.Server
}

// New wires the app together and registers the routes
func New(cfg *config.Config) (*App, error) {

	// Register types with gob to be able to use them in sessions
	gob.Register(&models.FlashMessage{})

	ctx := context.Background()

	// Create Redis service
	redis, err := rdb.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't create Redis service; %w", err)
	}

	// Create the store and the accounts source
	var (
		db       database.Service
		base     store.Store
		accounts auth.Users
	)

	switch cfg.StoreDriver {
	case config.Memory:
		base = store.NewMemory()
		accounts = auth.NewLocalUsers(cfg.LocalUsers)
		log.Printf("using the memory store, %d local account(s)", len(cfg.LocalUsers))
	default:
		db, err = database.New(cfg)
		if err != nil {
			redis.Close()
			return nil, fmt.Errorf("couldn't create DB service; %w", err)
		}

		if err = db.Migrate(ctx); err != nil {
			db.Close()
			redis.Close()
			return nil, fmt.Errorf("couldn't migrate the database; %w", err)
		}

		base = submissionsRepo.New(db)
		accounts = usersRepo.New(db)
	}

	submissions := store.NewCached(base, redis, cfg.CacheTimeout)

	// Create the optional YouTube verifier
	var verifier playlist.Verifier
	if cfg.YouTubeAPIKey != "" {
		youtube, err := yt.New(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			log.Printf("video verification disabled; %v", err)
		} else {
			verifier = youtube
		}
	}

	// Create session store
	sessionStore := sessions.NewRedisStore(
		redis,
		"session",
		&gorillaSessions.Options{
			Path:     "/",
			MaxAge:   int(cfg.SessionMaxAge / time.Second),
			HttpOnly: true,
			Secure:   !cfg.Debug,
			SameSite: http.SameSiteLaxMode,
		},
		cfg.AuthKey.Bytes,
		cfg.EncryptionKey.Bytes,
	)

	authService := auth.New(
		accounts,
		sessionStore,
		tokens.NewIssuer(cfg.JWTSecret.Bytes, cfg.TokenTTL),
		cfg,
	)

	// Log the sign ins and sign outs
	authService.OnChange(func(c auth.Change) {
		log.Printf("viewer '%s' (%s) %s", c.Viewer.Email, c.Viewer.Role, c.Kind)
	})

	extractor := yt.Extractor{Strict: cfg.StrictVideoID}
	loader := playlist.NewLoader(submissions, cfg.StoreTimeout)
	dispatcher := playlist.NewDispatcher(submissions, cfg.StoreTimeout)
	submitter := playlist.NewSubmitter(submissions, extractor, verifier, cfg.StoreTimeout)

	ui := ui.New(sessionStore, cfg)

	a := &App{
		auth:  authHandlers.New(authService, ui, cfg),
		pages: pages.New(loader, dispatcher, submitter, ui, cfg),
		api:   api.New(submissions, dispatcher, submitter, authService, ui, cfg),
		misc:  misc.New(cfg, db, redis, ui),
		mw:    middlewares.New(ui, authService, cfg),
		cleanup: func() error {
			if db != nil {
				db.Close()
			}
			return redis.Close()
		},

		domain: cfg.Domain,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}

	return a.RegisterRoutes(), nil
}

// Handler is the root handler with all the middlewares applied
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Close releases the database and Redis connections
func (a *App) Close() error {
	return a.cleanup()
}
