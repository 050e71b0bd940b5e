package ui

import (
	"html"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/microcosm-cc/bluemonday"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/utils"
)

// Creates new default data struct to be passed to the templates
// Instead of manualy envoking this function in each route it can be envoked in a middleware
// and passed donwstream as value to the request context.
func (s *service) NewData(w http.ResponseWriter, r *http.Request) *models.TemplateData {

	data := &models.TemplateData{
		AppName:       s.config.AppName,
		Description:   s.config.AppDescription,
		StaticFiles:   s.staticFiles,
		CurrentViewer: models.GetViewerFromContext(r),
		CurrentURI:    r.RequestURI,
		CSRFField:     csrf.TemplateField(r),
	}

	if !utils.NeedsCookie(w, r) {
		return data
	}

	// Check for flash cookie
	if _, err := r.Cookie(s.config.FlashSessionName); err != nil {
		return data
	}

	// Get any flash messages from session
	session, _ := s.store.Get(r, s.config.FlashSessionName)
	for _, v := range session.Flashes() {
		if flash, ok := v.(*models.FlashMessage); ok && flash != nil {
			data.FlashMessages = append(data.FlashMessages, flash)
		}
	}

	// Clear the flash session created with s.store.Get
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		log.Printf("unable to clear the flash session; %v", err)
	}

	return data
}

// StoreFlashMessage stores a flash message to be shown on the next page
func (s *service) StoreFlashMessage(w http.ResponseWriter, r *http.Request, m *models.FlashMessage) {

	flash := &models.FlashMessage{
		Message:  s.PlainText(m.Message),
		Category: m.Category,
	}

	session, _ := s.store.Get(r, s.config.FlashSessionName)
	session.AddFlash(flash)
	if err := session.Save(r, w); err != nil {
		log.Printf("unable to save the flash message on URI '%s'; %v", r.RequestURI, err)
	}
}

// plainText strips the tags and leaves the text unescaped,
// the templates escape it on output
func plainText(policy *bluemonday.Policy, text string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(text)))
}
