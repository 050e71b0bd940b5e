package playlist

import (
	"errors"

	"github.com/vlatan/media-hub/internal/integrations/yt"
	"github.com/vlatan/media-hub/internal/store"
)

const (
	SavedMessage   = "Saved! View in playlist."
	DeletedMessage = "Deleted successfully."
)

// Message is the text shown to the viewer for the error
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingFields):
		return "Title and YouTube required."
	case errors.Is(err, yt.ErrMalformedURL),
		errors.Is(err, yt.ErrInvalidLength),
		errors.Is(err, yt.ErrNoVideoID):
		return "Invalid YouTube URL."
	case errors.Is(err, ErrInvalidImageURL):
		return "Image URL must start with http:// or https://."
	case errors.Is(err, yt.ErrVideoNotFound):
		return "Video not found on YouTube."
	case errors.Is(err, ErrUnauthorized):
		return "Admin login required to delete."
	case errors.Is(err, ErrNotFound):
		return "Could not load video."
	case errors.Is(err, ErrUnknownAction):
		return "Unknown action."
	default:
		return store.Message(err)
	}
}

// LoadErrorMessage is shown in place of the list
func LoadErrorMessage(err error) string {
	return "Error loading: " + store.Message(err)
}

// SaveErrorMessage is shown when a valid submission could not be stored
func SaveErrorMessage(err error) string {
	return "Save error: " + store.Message(err)
}

// DeleteErrorMessage is shown when the store failed to delete
func DeleteErrorMessage(err error) string {
	return "Error deleting: " + store.Message(err)
}

// IsValidation reports whether the error is the viewer's input
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidImageURL) ||
		errors.Is(err, yt.ErrMalformedURL) ||
		errors.Is(err, yt.ErrInvalidLength) ||
		errors.Is(err, yt.ErrNoVideoID) ||
		errors.Is(err, yt.ErrVideoNotFound)
}
