package misc

import (
	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/drivers/database"
	"github.com/vlatan/media-hub/internal/drivers/rdb"
	"github.com/vlatan/media-hub/internal/ui"
)

type Service struct {
	config *config.Config
	db     database.Service // nil with the memory store
	rdb    *rdb.Service
	ui     ui.Service
}

func New(config *config.Config, db database.Service, rdb *rdb.Service, ui ui.Service) *Service {
	return &Service{
		config: config,
		db:     db,
		rdb:    rdb,
		ui:     ui,
	}
}
