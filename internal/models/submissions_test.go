package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSubmissionFieldsValidate(t *testing.T) {

	valid := SubmissionFields{
		Title:    "Amazing Grace",
		VideoURL: "https://youtu.be/dQw4w9WgXcQ",
		VideoID:  "dQw4w9WgXcQ",
	}

	noTitle := valid
	noTitle.Title = ""

	noURL := valid
	noURL.VideoURL = ""

	noID := valid
	noID.VideoID = ""

	tests := []struct {
		name   string
		fields SubmissionFields
		want   []error
	}{
		{"valid", valid, nil},
		{"no title", noTitle, []error{ErrMissingTitle}},
		{"no url", noURL, []error{ErrMissingVideoURL}},
		{"no video id", noID, []error{ErrMissingVideoID}},
		{"empty", SubmissionFields{}, []error{ErrMissingTitle, ErrMissingVideoURL, ErrMissingVideoID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if (err != nil) != (len(tt.want) > 0) {
				t.Fatalf("got error = %v, want %v", err, tt.want)
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("got error = %v, want it to contain %v", err, want)
				}
			}
		})
	}
}

func TestSubmissionFieldsNormalize(t *testing.T) {
	got := SubmissionFields{Title: "  Title ", Notes: "\tnote\n"}.Normalize()
	want := SubmissionFields{Title: "Title", Notes: "note"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmissionsBinary(t *testing.T) {

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	subs := Submissions{{
		ID:        "1",
		Title:     "<b>Title</b>",
		VideoURL:  "https://youtu.be/dQw4w9WgXcQ",
		VideoID:   "dQw4w9WgXcQ",
		CreatedAt: created,
	}}

	data, err := subs.MarshalBinary()
	if err != nil {
		t.Fatalf("failed to marshal; %v", err)
	}

	var got Submissions
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("failed to unmarshal; %v", err)
	}

	if diff := cmp.Diff(subs, got); diff != "" {
		t.Errorf("cache round trip mismatch (-want +got):\n%s", diff)
	}
}
