package models

import (
	"html/template"
	"time"
)

// Flash message object to store to session for the next page
type FlashMessage struct {
	Message  string
	Category string
}

// Specific data for the error pages
type HTMLErrorData struct {
	Title   string
	Heading string
	Text    string
}

// Data for the JSON errors
type JSONErrorData struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// The values of the submit form, rendered back on validation errors
type FormData struct {
	Title     string
	Performer string
	VideoURL  string
	ImageURL  string
	Notes     string
	Email     string
	Error     string
}

// Data struct to pass to templates
type TemplateData struct {
	AppName       string
	Description   string
	Title         string
	StaticFiles   StaticFiles
	CurrentViewer *Viewer
	CurrentURI    string
	FlashMessages []*FlashMessage
	HTMLErrorData *HTMLErrorData
	CSRFField     template.HTML
	Content       template.HTML
	Form          *FormData
	Playlist      any
	Confirm       *Submission
}

// Check if current viewer is admin
func (td *TemplateData) IsCurrentViewerAdmin() bool {
	return td.CurrentViewer.IsAdmin()
}

// Get time now
func (td *TemplateData) Now() time.Time {
	return time.Now()
}

// Static or embedded file, with its compressed version if any
type FileInfo struct {
	Bytes      []byte
	Compressed []byte
	MediaType  string
	Etag       string
	ModTime    time.Time
}

// Map of static files keyed by their URL path
type StaticFiles map[string]*FileInfo

// Map of parsed templates keyed by their file name
type TemplateMap map[string]*template.Template
