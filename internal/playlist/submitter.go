package playlist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/vlatan/media-hub/internal/integrations/yt"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/store"
)

var (
	ErrMissingFields   = errors.New("title and video URL are required")
	ErrInvalidImageURL = errors.New("image URL is not a web link")
)

// SubmitInput is the submit form as entered
type SubmitInput struct {
	Title     string `json:"title"`
	Performer string `json:"performer"`
	VideoURL  string `json:"video_url"`
	ImageURL  string `json:"image_url"`
	Notes     string `json:"notes"`
}

// Verifier checks the video exists on the platform
type Verifier interface {
	VerifyVideo(ctx context.Context, videoID string) error
}

// Submitter validates and stores new submissions
type Submitter struct {
	store     store.Store
	extractor yt.Extractor
	verifier  Verifier // optional
	timeout   time.Duration
}

func NewSubmitter(s store.Store, extractor yt.Extractor, verifier Verifier, timeout time.Duration) *Submitter {
	return &Submitter{
		store:     s,
		extractor: extractor,
		verifier:  verifier,
		timeout:   timeout,
	}
}

// Submit stores the submission and returns its ID.
// Nothing reaches the store unless the input is valid.
func (s *Submitter) Submit(ctx context.Context, in SubmitInput) (string, error) {

	fields := models.SubmissionFields{
		Title:     in.Title,
		Performer: in.Performer,
		VideoURL:  in.VideoURL,
		ImageURL:  in.ImageURL,
		Notes:     in.Notes,
	}.Normalize()

	if fields.Title == "" || fields.VideoURL == "" {
		return "", ErrMissingFields
	}

	videoID, err := s.extractor.Extract(fields.VideoURL)
	if err != nil {
		return "", err
	}
	fields.VideoID = videoID

	if fields.ImageURL != "" && !isWebURL(fields.ImageURL) {
		return "", ErrInvalidImageURL
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.verifier != nil {
		err = s.verifier.VerifyVideo(ctx, videoID)
		switch {
		case errors.Is(err, yt.ErrVideoNotFound):
			return "", err
		case err != nil:
			// The platform being down doesn't block submissions
			log.Printf("failed to verify video '%s'; %v", videoID, err)
		}
	}

	id, err := s.store.Add(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("failed to store the submission; %w", err)
	}

	return id, nil
}

// Trimmed returns the input without the surrounding whitespace
func (in SubmitInput) Trimmed() SubmitInput {
	return SubmitInput{
		Title:     strings.TrimSpace(in.Title),
		Performer: strings.TrimSpace(in.Performer),
		VideoURL:  strings.TrimSpace(in.VideoURL),
		ImageURL:  strings.TrimSpace(in.ImageURL),
		Notes:     strings.TrimSpace(in.Notes),
	}
}
