package models

import "net/http"

type contextKey struct {
	name string
}

// Universal context key to get the viewer from context
var ViewerContextKey = contextKey{name: "viewer"}

// Universal context key to get the page data from context
var DataContextKey = contextKey{name: "data"}

// GetViewerFromContext gets the viewer from context
func GetViewerFromContext(r *http.Request) *Viewer {
	viewer, _ := r.Context().Value(ViewerContextKey).(*Viewer)
	return viewer // nil if viewer not in context
}

// GetDataFromContext gets the template data from context
func GetDataFromContext(r *http.Request) *TemplateData {
	data, _ := r.Context().Value(DataContextKey).(*TemplateData)
	return data // nil if data not in context
}
