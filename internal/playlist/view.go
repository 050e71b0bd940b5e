package playlist

import (
	"html/template"
	"net/url"
	"slices"

	"github.com/vlatan/media-hub/internal/integrations/yt"
	"github.com/vlatan/media-hub/internal/models"
)

type State int

const (
	Empty State = iota
	Loading
	Loaded
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	default:
		return "empty"
	}
}

type Action string

const (
	Play   Action = "play"
	Delete Action = "delete"
)

const (
	NoTitle          = "(No title)"
	UnknownPerformer = "Unknown performer"
	EmptyMessage     = "No submissions yet."
	LoadingMessage   = "Loading..."
	// Thumbnail of rows with neither image nor video ID
	NoImage = ""
)

// Layout of the displayed creation time
const TimeLayout = "Jan 2, 2006 3:04 PM"

// DisplayRow is one render ready playlist entry.
// The text fields are already escaped.
type DisplayRow struct {
	ID        string
	Title     template.HTML
	Performer template.HTML
	Notes     template.HTML // empty when the submission has no notes
	Thumbnail string        // NoImage when there's nothing to show
	CreatedAt string
	Actions   []Action
}

// Can checks if the action is permitted on the row
func (r DisplayRow) Can(action Action) bool {
	return slices.Contains(r.Actions, action)
}

// View is the state of the playlist region of the page
type View struct {
	State   State
	Rows    []DisplayRow
	Message string
}

// EmptyView is the sentinel for a playlist with no submissions
func EmptyView() View {
	return View{State: Empty, Message: EmptyMessage}
}

// LoadingView is shown while a load is in flight
func LoadingView() View {
	return View{State: Loading, Message: LoadingMessage}
}

// ErrorView replaces the whole list when loading failed
func ErrorView(message string) View {
	return View{State: Error, Message: message}
}

// BuildView turns the submissions into display rows, newest first.
// The delete action is offered to admins only.
func BuildView(submissions models.Submissions, viewer *models.Viewer) View {

	if len(submissions) == 0 {
		return EmptyView()
	}

	// Don't trust the store ordering
	sorted := slices.Clone(submissions)
	slices.SortStableFunc(sorted, func(a, b models.Submission) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	actions := []Action{Play}
	if viewer.IsAdmin() {
		actions = append(actions, Delete)
	}

	rows := make([]DisplayRow, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, newRow(s, actions))
	}

	return View{State: Loaded, Rows: rows}
}

func newRow(s models.Submission, actions []Action) DisplayRow {

	title := s.Title
	if title == "" {
		title = NoTitle
	}

	performer := s.Performer
	if performer == "" {
		performer = UnknownPerformer
	}

	var createdAt string
	if !s.CreatedAt.IsZero() {
		createdAt = s.CreatedAt.Local().Format(TimeLayout)
	}

	return DisplayRow{
		ID:        s.ID,
		Title:     escapeHTML(title),
		Performer: escapeHTML(performer),
		Notes:     escapeHTML(s.Notes),
		Thumbnail: Thumbnail(s),
		CreatedAt: createdAt,
		Actions:   slices.Clone(actions),
	}
}

// Thumbnail resolves the image of the submission.
// The image override wins over the one derived from the video ID.
func Thumbnail(s models.Submission) string {
	if isWebURL(s.ImageURL) {
		return s.ImageURL
	}

	if s.VideoID != "" {
		return yt.ThumbnailURL(s.VideoID)
	}

	return NoImage
}

// Only http(s) images end up in an img tag
func isWebURL(raw string) bool {
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
