package ui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/vlatan/media-hub/internal/models"
)

// HTMLError renders the error page, plain text if that fails
func (s *service) HTMLError(w http.ResponseWriter, r *http.Request, status int, data *models.TemplateData) {

	if data == nil {
		data = s.NewData(w, r)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := s.ExecuteErrorTemplate(w, status, data); err != nil {
		log.Printf("failed to render the error template on URI '%s'; %v", r.RequestURI, err)
		io.WriteString(w, http.StatusText(status)) // #nosec G104
	}
}

// ExecuteErrorTemplate executes error.html template
// A wrapper around tmpl.ExecuteTemplate
func (s *service) ExecuteErrorTemplate(w io.Writer, status int, data *models.TemplateData) error {

	// Check for the error template
	tmpl, exists := s.templates["error.html"]
	if !exists {
		return errors.New("error.html template does not exist")
	}

	// Craft template data
	data.Title = strconv.Itoa(status)
	data.HTMLErrorData = &models.HTMLErrorData{
		Title: strconv.Itoa(status),
	}

	// Provide few errors that should be served via template
	switch status {
	case http.StatusBadRequest:
		data.HTMLErrorData.Heading = fmt.Sprintf("Bad request (%d)", status)
		data.HTMLErrorData.Text = "Your request was probably malformed."
	case http.StatusForbidden:
		data.HTMLErrorData.Heading = fmt.Sprintf("Access forbidden (%d)", status)
		data.HTMLErrorData.Text = "Please check your account and try again."
	case http.StatusNotFound:
		data.HTMLErrorData.Heading = fmt.Sprintf("Page not found (%d)", status)
		data.HTMLErrorData.Text = "That page does not exist. Please try a different location."
	case http.StatusMethodNotAllowed:
		data.HTMLErrorData.Heading = fmt.Sprintf("Method not allowed (%d)", status)
		data.HTMLErrorData.Text = "Use the appropriate method and try again."
	case http.StatusServiceUnavailable:
		data.HTMLErrorData.Heading = fmt.Sprintf("Service unavailable (%d)", status)
		data.HTMLErrorData.Text = "Could not reach the database. Please try again in a moment."
	default:
		data.HTMLErrorData.Heading = fmt.Sprintf("Something went wrong (%d)", status)
		data.HTMLErrorData.Text = "Sorry about that. We're working on fixing this."
	}

	return tmpl.ExecuteTemplate(w, "error.html", data)
}

// JSONError writes the error to response.
// Empty message falls back to the status text.
func (s *service) JSONError(w http.ResponseWriter, r *http.Request, status int, message string) {

	if message == "" {
		message = http.StatusText(status)
	}

	data := models.JSONErrorData{
		Error: message,
		Code:  status,
	}

	s.WriteJSON(w, r, status, data)
}
