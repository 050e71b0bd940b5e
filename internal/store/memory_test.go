package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vlatan/media-hub/internal/models"
)

var validFields = models.SubmissionFields{
	Title:    "Amazing Grace",
	VideoURL: "https://youtu.be/dQw4w9WgXcQ",
	VideoID:  "dQw4w9WgXcQ",
}

// fixedClock returns the given times one by one
func fixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[min(i, len(times)-1)]
		i++
		return t
	}
}

func TestMemoryAddAndList(t *testing.T) {

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = fixedClock(base, base.Add(time.Hour), base.Add(time.Hour), base.Add(-time.Hour))

	titles := []string{"first", "second", "third", "fourth"}
	for _, title := range titles {
		fields := validFields
		fields.Title = title
		if _, err := m.Add(context.Background(), fields); err != nil {
			t.Fatalf("failed to add %q; %v", title, err)
		}
	}

	items, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("got error = %v, want nil", err)
	}

	var got []string
	for _, item := range items {
		got = append(got, item.Title)
	}

	// Newest first, equal timestamps in insertion order
	want := []string{"second", "third", "first", "fourth"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryIDs(t *testing.T) {

	m := NewMemory()
	first, _ := m.Add(context.Background(), validFields)
	second, _ := m.Add(context.Background(), validFields)

	if first != "1" || second != "2" {
		t.Errorf("got ids %q and %q, want %q and %q", first, second, "1", "2")
	}

	// IDs are never reused
	if err := m.DeleteByID(context.Background(), second); err != nil {
		t.Fatalf("failed to delete; %v", err)
	}

	third, _ := m.Add(context.Background(), validFields)
	if third != "3" {
		t.Errorf("got id %q, want %q", third, "3")
	}
}

func TestMemoryAddInvalid(t *testing.T) {

	tests := []struct {
		name   string
		fields models.SubmissionFields
		want   error
	}{
		{"no title", models.SubmissionFields{VideoURL: "u", VideoID: "i"}, models.ErrMissingTitle},
		{"blank title", models.SubmissionFields{Title: "  ", VideoURL: "u", VideoID: "i"}, models.ErrMissingTitle},
		{"no video url", models.SubmissionFields{Title: "t", VideoID: "i"}, models.ErrMissingVideoURL},
		{"no video id", models.SubmissionFields{Title: "t", VideoURL: "u"}, models.ErrMissingVideoID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory()
			if _, err := m.Add(context.Background(), tt.fields); !errors.Is(err, tt.want) {
				t.Errorf("got error = %v, want %v", err, tt.want)
			}

			if items, _ := m.List(context.Background()); len(items) != 0 {
				t.Errorf("got %d items, want none", len(items))
			}
		})
	}
}

func TestMemoryGetByID(t *testing.T) {

	m := NewMemory()
	id, _ := m.Add(context.Background(), validFields)

	got, err := m.GetByID(context.Background(), id)
	if err != nil || got == nil {
		t.Fatalf("got (%v, %v), want the submission", got, err)
	}

	if got.VideoID != validFields.VideoID {
		t.Errorf("got video id %q, want %q", got.VideoID, validFields.VideoID)
	}

	// Mutating the copy leaves the store intact
	got.Title = "changed"
	again, _ := m.GetByID(context.Background(), id)
	if again.Title != validFields.Title {
		t.Errorf("got title %q, want %q", again.Title, validFields.Title)
	}

	missing, err := m.GetByID(context.Background(), "missing")
	if missing != nil || err != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", missing, err)
	}
}

func TestMemoryDeleteByID(t *testing.T) {

	m := NewMemory()
	id, _ := m.Add(context.Background(), validFields)

	if err := m.DeleteByID(context.Background(), id); err != nil {
		t.Fatalf("got error = %v, want nil", err)
	}

	if err := m.DeleteByID(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Errorf("got error = %v, want %v", err, ErrNotFound)
	}

	if items, _ := m.List(context.Background()); len(items) != 0 {
		t.Errorf("got %d items, want none", len(items))
	}
}

func TestMemoryCancelledContext(t *testing.T) {

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()

	m := NewMemory()
	_, err := m.List(ctx)
	if KindOf(err) != Unavailable {
		t.Errorf("got kind %s, want %s", KindOf(err), Unavailable)
	}
}
