package playlist

import (
	"context"
	"log"
	"time"

	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/store"
)

// Loader fetches the submissions and builds the view,
// every load bounded by the timeout.
type Loader struct {
	store   store.Store
	timeout time.Duration
}

func NewLoader(s store.Store, timeout time.Duration) *Loader {
	return &Loader{store: s, timeout: timeout}
}

// Load runs one load of the cycle.
// A cycle that failed before is retried.
func (l *Loader) Load(ctx context.Context, cycle *Cycle, viewer *models.Viewer) View {

	start := cycle.Fetch
	if cycle.Phase() == Failed {
		start = cycle.Retry
	}

	if err := start(); err != nil {
		return LoadingView()
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	// Admins see the list as it is in the store
	if viewer.IsAdmin() {
		ctx = store.WithoutCache(ctx)
	}

	submissions, err := l.store.List(ctx)
	if err == nil && ctx.Err() != nil {
		err = store.Classify("list", ctx.Err())
	}

	if cErr := cycle.Complete(err); cErr != nil {
		log.Printf("failed to complete the render cycle; %v", cErr)
	}

	if err != nil {
		log.Printf("failed to load the playlist; %v", err)
		return ErrorView(LoadErrorMessage(err))
	}

	return BuildView(submissions, viewer)
}
