package playlist

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/vlatan/media-hub/internal/integrations/yt"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/store"
)

var (
	ErrUnauthorized  = errors.New("admin required")
	ErrNotFound      = errors.New("submission not found")
	ErrUnknownAction = errors.New("unknown action")
)

type EffectKind int

const (
	// Open the video URL
	OpenURL EffectKind = iota + 1
	// Ask the viewer to confirm the delete
	Confirm
	// Fetch and render the playlist again
	Refresh
)

type Effect struct {
	Kind       EffectKind
	URL        string
	Submission *models.Submission
}

type ActionRequest struct {
	Action    Action
	ID        string
	Viewer    *models.Viewer
	Confirmed bool
}

// Dispatcher performs the row actions
type Dispatcher struct {
	store   store.Store
	timeout time.Duration
}

func NewDispatcher(s store.Store, timeout time.Duration) *Dispatcher {
	return &Dispatcher{store: s, timeout: timeout}
}

// Dispatch performs the action on the submission.
// Deletes need an admin and a confirmation, otherwise nothing is mutated.
func (d *Dispatcher) Dispatch(ctx context.Context, req ActionRequest) (Effect, error) {

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	switch req.Action {
	case Play:
		return d.play(ctx, req.ID)
	case Delete:
		return d.delete(ctx, req)
	default:
		return Effect{}, ErrUnknownAction
	}
}

func (d *Dispatcher) play(ctx context.Context, id string) (Effect, error) {

	s, err := d.store.GetByID(ctx, id)
	if err != nil {
		return Effect{}, err
	}

	if s == nil {
		return Effect{}, ErrNotFound
	}

	return Effect{Kind: OpenURL, URL: playURL(s), Submission: s}, nil
}

func (d *Dispatcher) delete(ctx context.Context, req ActionRequest) (Effect, error) {

	if !req.Viewer.IsAdmin() {
		return Effect{}, ErrUnauthorized
	}

	if !req.Confirmed {
		s, err := d.store.GetByID(ctx, req.ID)
		if err != nil {
			return Effect{}, err
		}

		if s == nil {
			return Effect{}, ErrNotFound
		}

		return Effect{Kind: Confirm, Submission: s}, nil
	}

	err := d.store.DeleteByID(ctx, req.ID)
	if errors.Is(err, store.ErrNotFound) {
		return Effect{}, ErrNotFound
	}

	if err != nil {
		return Effect{}, err
	}

	return Effect{Kind: Refresh}, nil
}

// playURL is the submitted URL when it's a web link,
// the canonical watch URL otherwise
func playURL(s *models.Submission) string {
	if u, err := url.Parse(s.VideoURL); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return s.VideoURL
	}
	return yt.WatchURL(s.VideoID)
}
