package store

import (
	"context"

	"github.com/vlatan/media-hub/internal/models"
)

// Store is the persistence boundary of the submissions.
// List returns the submissions newest first.
// GetByID returns nil and no error when the submission doesn't exist.
type Store interface {
	List(ctx context.Context) (models.Submissions, error)
	Add(ctx context.Context, fields models.SubmissionFields) (string, error)
	DeleteByID(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
}
