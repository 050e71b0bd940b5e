package auth

import (
	"net/http"

	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/ui"
)

// Authenticator signs the users in and out of the session
type Authenticator interface {
	SignIn(w http.ResponseWriter, r *http.Request, email, password string) (*models.Viewer, error)
	SignOut(w http.ResponseWriter, r *http.Request) error
}

type Service struct {
	auth   Authenticator
	ui     ui.Service
	config *config.Config
}

func New(auth Authenticator, ui ui.Service, config *config.Config) *Service {
	return &Service{
		auth:   auth,
		ui:     ui,
		config: config,
	}
}
