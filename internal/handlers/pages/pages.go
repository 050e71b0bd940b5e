package pages

import (
	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/playlist"
	"github.com/vlatan/media-hub/internal/ui"
)

type Service struct {
	loader     *playlist.Loader
	dispatcher *playlist.Dispatcher
	submitter  *playlist.Submitter
	ui         ui.Service
	config     *config.Config
}

func New(
	loader *playlist.Loader,
	dispatcher *playlist.Dispatcher,
	submitter *playlist.Submitter,
	ui ui.Service,
	config *config.Config,
) *Service {
	return &Service{
		loader:     loader,
		dispatcher: dispatcher,
		submitter:  submitter,
		ui:         ui,
		config:     config,
	}
}
