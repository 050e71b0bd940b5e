package ui

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/utils"
)

// WriteJSON converts the data into JSON-formatted string
// and writes the output to response
func (s *service) WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to encode JSON response on URI '%s'; %v", r.RequestURI, err)
		utils.HttpError(w, http.StatusInternalServerError)
		return
	}

	// Headers go before the status code
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write(jsonData); err != nil {
		// Too late for recovery here, just log the error
		log.Printf("failed to write JSON to response on URI '%s'; %v", r.RequestURI, err)
	}
}

// RenderHTML checks if template exists in the collection of templates (map),
// executes the given template into a buffer and writes the output to the response.
func (s *service) RenderHTML(
	w http.ResponseWriter,
	r *http.Request,
	templateName string,
	data *models.TemplateData) {

	tmpl, exists := s.templates[templateName]
	if !exists {
		log.Printf("could not find the '%s' template on URI '%s'", templateName, r.RequestURI)
		utils.HttpError(w, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf(
			"failed to execute the HTML template '%s' on URI '%s'; %v",
			templateName, r.RequestURI, err,
		)
		utils.HttpError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		// Too late for recovery here, just log the error
		log.Printf(
			"failed to write the HTML template '%s' to response on URI '%s'; %v",
			templateName, r.RequestURI, err,
		)
	}
}
