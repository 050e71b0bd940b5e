package playlist

import (
	"context"

	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/store"
)

// recordingStore wraps the memory store and counts every call
type recordingStore struct {
	*store.Memory
	calls int
	err   error // returned by every call when set
	block bool  // List waits for the context to end
}

func newRecordingStore() *recordingStore {
	return &recordingStore{Memory: store.NewMemory()}
}

func (r *recordingStore) List(ctx context.Context) (models.Submissions, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if r.block {
		<-ctx.Done()
		return nil, store.Classify("list", ctx.Err())
	}
	return r.Memory.List(ctx)
}

func (r *recordingStore) Add(ctx context.Context, fields models.SubmissionFields) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.Memory.Add(ctx, fields)
}

func (r *recordingStore) DeleteByID(ctx context.Context, id string) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	return r.Memory.DeleteByID(ctx, id)
}

func (r *recordingStore) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.Memory.GetByID(ctx, id)
}

var (
	anonymous = models.NewViewer("", "", nil)
	member    = models.NewViewer("u1", "member@example.com", models.AdminList{"admin@example.com"})
	admin     = models.NewViewer("u2", "Admin@Example.com", models.AdminList{"admin@example.com"})
)
