package yt

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Short-link host marker, i.e. https://youtu.be/<id>
const shortLinkHost = "youtu.be"

// Length of a canonical YouTube video ID
const VideoIDLength = 11

var (
	ErrMalformedURL  = errors.New("malformed video URL")
	ErrInvalidLength = fmt.Errorf("video ID is not %d characters long", VideoIDLength)
	ErrNoVideoID     = errors.New("could not extract the video ID")
)

// Extractor extracts video IDs out of user supplied URLs.
// With Strict set only IDs of canonical length are accepted.
type Extractor struct {
	Strict bool
}

// Extract returns the video ID contained in the raw URL.
// The short-link host wins, then the "v" query param,
// and finally the last non-empty path segment.
func (e Extractor) Extract(rawURL string) (string, error) {

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w; %v", ErrMalformedURL, err)
	}

	// Only absolute URLs are accepted
	if u.Scheme == "" || u.Host == "" {
		return "", ErrMalformedURL
	}

	var id string
	switch {
	case strings.Contains(strings.ToLower(u.Hostname()), shortLinkHost):
		id, _, _ = strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	case u.Query().Get("v") != "":
		id = u.Query().Get("v")
	default:
		id = lastSegment(u.Path)
	}

	if id == "" {
		return "", ErrNoVideoID
	}

	if e.Strict && len(id) != VideoIDLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidLength, id)
	}

	return id, nil
}

// lastSegment returns the last non-empty segment of the path,
// so a trailing slash selects the segment before it.
func lastSegment(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

// ThumbnailURL derives the high quality thumbnail URL of a video
func ThumbnailURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + url.PathEscape(videoID) + "/hqdefault.jpg"
}

// WatchURL returns the canonical watch URL of a video
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}
