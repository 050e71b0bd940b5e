package store

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/vlatan/media-hub/internal/models"
)

// Memory keeps the submissions in process.
// IDs are a counter rendered as a decimal string.
type Memory struct {
	mu    sync.RWMutex
	items models.Submissions // in insertion order
	next  int64
	now   func() time.Time
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// List returns copies of the submissions, newest first.
// Equal timestamps keep their insertion order.
func (m *Memory) List(ctx context.Context) (models.Submissions, error) {
	if err := ctx.Err(); err != nil {
		return nil, Classify("list", err)
	}

	m.mu.RLock()
	items := slices.Clone(m.items)
	m.mu.RUnlock()

	slices.SortStableFunc(items, func(a, b models.Submission) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return items, nil
}

// Add stores a new submission and returns its ID
func (m *Memory) Add(ctx context.Context, fields models.SubmissionFields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", Classify("add", err)
	}

	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return "", &Error{Kind: Other, Op: "add", Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	id := strconv.FormatInt(m.next, 10)

	m.items = append(m.items, models.Submission{
		ID:        id,
		Title:     fields.Title,
		Performer: fields.Performer,
		VideoURL:  fields.VideoURL,
		VideoID:   fields.VideoID,
		ImageURL:  fields.ImageURL,
		Notes:     fields.Notes,
		CreatedAt: m.now().UTC(),
	})

	return id, nil
}

// DeleteByID removes the submission, ErrNotFound if missing
func (m *Memory) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return Classify("delete", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.items, func(s models.Submission) bool { return s.ID == id })
	if i < 0 {
		return ErrNotFound
	}

	m.items = slices.Delete(m.items, i, i+1)
	return nil
}

// GetByID returns a copy of the submission or nil
func (m *Memory) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, Classify("get", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	i := slices.IndexFunc(m.items, func(s models.Submission) bool { return s.ID == id })
	if i < 0 {
		return nil, nil
	}

	s := m.items[i]
	return &s, nil
}
