package yt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vlatan/media-hub/internal/utils"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var ErrVideoNotFound = errors.New("video not found on YouTube")

type Service struct {
	youtube *youtube.Service
	retry   utils.RetryConfig
}

// Create new YouTube service
func New(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Service, error) {

	if apiKey == "" {
		return nil, errors.New("unable to create YouTube service without an API key")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	yt, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &Service{
		youtube: yt,
		retry: utils.RetryConfig{
			MaxRetries:  3,
			MaxJitter:   500 * time.Millisecond,
			Delay:       time.Second,
			ShouldRetry: isTransient,
		},
	}, nil
}

// VerifyVideo checks the video exists and is not private
func (s *Service) VerifyVideo(ctx context.Context, videoID string) error {

	rc := s.retry
	videos, err := utils.Retry(ctx, &rc, func() ([]*youtube.Video, error) {
		response, err := s.youtube.Videos.
			List([]string{"status"}).
			Id(videoID).
			Context(ctx).
			Do()
		if err != nil {
			return nil, err
		}
		return response.Items, nil
	})

	if err != nil {
		return fmt.Errorf("unable to get a response from YouTube; %w", err)
	}

	if len(videos) == 0 {
		return fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	if status := videos[0].Status; status != nil && status.PrivacyStatus == "private" {
		return fmt.Errorf("%w: %s is private", ErrVideoNotFound, videoID)
	}

	return nil
}

// Only rate limits, server and transport errors are worth a retry
func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
