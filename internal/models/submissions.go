package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingTitle    = errors.New("submission has no title")
	ErrMissingVideoURL = errors.New("submission has no video URL")
	ErrMissingVideoID  = errors.New("submission has no video ID")
)

// Submission is one playlist entry
type Submission struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Performer string    `json:"performer,omitempty"`
	VideoURL  string    `json:"video_url"`
	VideoID   string    `json:"video_id"`
	ImageURL  string    `json:"image_url,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionFields are the fields supplied when creating a submission.
// The ID and the creation time are assigned by the store.
type SubmissionFields struct {
	Title     string `json:"title"`
	Performer string `json:"performer,omitempty"`
	VideoURL  string `json:"video_url"`
	VideoID   string `json:"video_id"`
	ImageURL  string `json:"image_url,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type Submissions []Submission

// Normalize trims the surrounding whitespace of every field
func (f SubmissionFields) Normalize() SubmissionFields {
	return SubmissionFields{
		Title:     strings.TrimSpace(f.Title),
		Performer: strings.TrimSpace(f.Performer),
		VideoURL:  strings.TrimSpace(f.VideoURL),
		VideoID:   strings.TrimSpace(f.VideoID),
		ImageURL:  strings.TrimSpace(f.ImageURL),
		Notes:     strings.TrimSpace(f.Notes),
	}
}

// Validate checks the required fields are present
func (f SubmissionFields) Validate() error {
	var errs []error
	if f.Title == "" {
		errs = append(errs, ErrMissingTitle)
	}
	if f.VideoURL == "" {
		errs = append(errs, ErrMissingVideoURL)
	}
	if f.VideoID == "" {
		errs = append(errs, ErrMissingVideoID)
	}
	return errors.Join(errs...)
}

// Validate checks a stored record has the strict submission shape
func (s *Submission) Validate() error {
	if s.ID == "" {
		return errors.New("submission has no ID")
	}
	return s.Fields().Validate()
}

// Fields returns the user supplied fields of the submission
func (s *Submission) Fields() SubmissionFields {
	return SubmissionFields{
		Title:     s.Title,
		Performer: s.Performer,
		VideoURL:  s.VideoURL,
		VideoID:   s.VideoID,
		ImageURL:  s.ImageURL,
		Notes:     s.Notes,
	}
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (s Submissions) MarshalBinary() (data []byte, err error) {
	return json.Marshal(s)
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (s *Submissions) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}
