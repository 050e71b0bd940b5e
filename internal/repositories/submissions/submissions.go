package submissions

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vlatan/media-hub/internal/drivers/database"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/store"
)

// Repository is the Postgres backed submissions store
type Repository struct {
	db    database.DBTX
	newID func() string
}

func New(db database.DBTX) *Repository {
	return &Repository{
		db:    db,
		newID: uuid.NewString,
	}
}

// List returns the valid submissions, newest first.
// Rows that don't have the submission shape are skipped.
func (r *Repository) List(ctx context.Context) (models.Submissions, error) {

	// Get rows from DB
	rows, err := r.db.Query(ctx, listSubmissionsQuery)
	if err != nil {
		return nil, store.Classify("list", err)
	}

	// Close rows on exit
	defer rows.Close()

	submissions := models.Submissions{}
	for rows.Next() {
		var s models.Submission
		if err = scanSubmission(rows, &s); err != nil {
			return nil, store.Classify("list", err)
		}

		if err = s.Validate(); err != nil {
			log.Printf("skipping invalid submission '%s'; %v", s.ID, err)
			continue
		}

		submissions = append(submissions, s)
	}

	// If error during iteration
	if err = rows.Err(); err != nil {
		return nil, store.Classify("list", err)
	}

	return submissions, nil
}

// Add inserts the submission and returns its new ID
func (r *Repository) Add(ctx context.Context, fields models.SubmissionFields) (string, error) {

	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return "", &store.Error{Kind: store.Other, Op: "add", Err: err}
	}

	id := r.newID()
	if _, err := r.db.Exec(
		ctx,
		insertSubmissionQuery,
		id,
		fields.Title,
		fields.Performer,
		fields.VideoURL,
		fields.VideoID,
		fields.ImageURL,
		fields.Notes,
	); err != nil {
		return "", store.Classify("add", err)
	}

	return id, nil
}

// DeleteByID deletes the submission, store.ErrNotFound if no such row
func (r *Repository) DeleteByID(ctx context.Context, id string) error {

	// Not a UUID, can't be in the table
	if uuid.Validate(id) != nil {
		return store.ErrNotFound
	}

	tag, err := r.db.Exec(ctx, deleteSubmissionQuery, id)
	if err != nil {
		return store.Classify("delete", err)
	}

	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

// GetByID returns the submission or nil if there's no such row
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Submission, error) {

	if uuid.Validate(id) != nil {
		return nil, nil
	}

	var s models.Submission
	err := scanSubmission(r.db.QueryRow(ctx, getSubmissionQuery, id), &s)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, store.Classify("get", err)
	}

	if err = s.Validate(); err != nil {
		log.Printf("invalid submission '%s' in DB; %v", s.ID, err)
		return nil, nil
	}

	return &s, nil
}

func scanSubmission(row pgx.Row, s *models.Submission) error {
	return row.Scan(
		&s.ID,
		&s.Title,
		&s.Performer,
		&s.VideoURL,
		&s.VideoID,
		&s.ImageURL,
		&s.Notes,
		&s.CreatedAt,
	)
}
