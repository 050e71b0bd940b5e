package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
)

// Favicons served from the root
var RootFavicons = []string{
	"/favicon.ico",
}

// Validates a path
func ValidateFilePath(p string) error {
	if p == "" {
		return fmt.Errorf("no path supplied")
	}

	cleaned := path.Clean(p)
	if cleaned != p {
		return fmt.Errorf("invalid path '%s'", p)
	}

	return nil
}

// Check if this is a static file
func IsStatic(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/static/") ||
		slices.Contains(RootFavicons, r.URL.Path)
}

// Check if this is an API request
func IsAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// Check if a route needs to set a cookie
func NeedsCookie(w http.ResponseWriter, r *http.Request) bool {

	if IsStatic(r) {
		return false
	}

	if strings.HasSuffix(r.URL.Path, ".txt") {
		return false
	}

	if r.URL.Path == "/healthcheck" {
		return false
	}

	return true
}

// SafeRedirectPath returns the local path to redirect to.
// Anything pointing to another host falls back to the root.
func SafeRedirectPath(raw string) string {

	if raw == "" {
		return "/"
	}

	parsedURL, err := url.Parse(raw)
	if err != nil {
		return "/"
	}

	// Reject absolute and protocol-relative URLs
	if parsedURL.IsAbs() || parsedURL.Host != "" || !strings.HasPrefix(parsedURL.Path, "/") {
		return "/"
	}

	// Reject "//host" and "/\host" paths browsers treat as hosts
	if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}

	return parsedURL.RequestURI()
}

// Write a plain text HTTP error
func HttpError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}
