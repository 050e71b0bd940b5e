package api

import (
	"context"
	"time"

	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/playlist"
	"github.com/vlatan/media-hub/internal/store"
	"github.com/vlatan/media-hub/internal/ui"
)

// Largest accepted JSON body
const maxBodyBytes = 1 << 16

// TokenIssuer exchanges credentials for a bearer token
type TokenIssuer interface {
	Token(ctx context.Context, email, password string) (string, time.Time, error)
}

type Service struct {
	store      store.Store
	dispatcher *playlist.Dispatcher
	submitter  *playlist.Submitter
	tokens     TokenIssuer
	ui         ui.Service
	config     *config.Config
}

func New(
	store store.Store,
	dispatcher *playlist.Dispatcher,
	submitter *playlist.Submitter,
	tokens TokenIssuer,
	ui ui.Service,
	config *config.Config,
) *Service {
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		submitter:  submitter,
		tokens:     tokens,
		ui:         ui,
		config:     config,
	}
}
