package ui

import (
	"html/template"
	"io"
	"net/http"
	"regexp"

	"github.com/gorilla/sessions"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tdewolff/minify"
	"github.com/tdewolff/minify/css"
	"github.com/tdewolff/minify/html"
	"github.com/tdewolff/minify/js"
	"github.com/tdewolff/minify/json"
	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/models"
)

type Service interface {
	// Get the map containing the static files
	StaticFiles() models.StaticFiles
	// Get the rendered markdown content page
	Content(name string) template.HTML
	// Store flash message in a session
	StoreFlashMessage(w http.ResponseWriter, r *http.Request, m *models.FlashMessage)
	// Create new template data
	NewData(w http.ResponseWriter, r *http.Request) *models.TemplateData
	// Strip any markup from text coming from collaborators
	PlainText(text string) string
	// Write JSON to response
	WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any)
	// Write HTML template to response
	RenderHTML(w http.ResponseWriter, r *http.Request, templateName string, data *models.TemplateData)
	// Write JSON error to response
	JSONError(w http.ResponseWriter, r *http.Request, status int, message string)
	// Write HTML error to response
	HTMLError(w http.ResponseWriter, r *http.Request, status int, data *models.TemplateData)
	// ExecuteErrorTemplate executes error.html template
	ExecuteErrorTemplate(w io.Writer, status int, data *models.TemplateData) error
}

type service struct {
	templates   models.TemplateMap
	staticFiles models.StaticFiles
	content     map[string]template.HTML
	plain       *bluemonday.Policy
	store       sessions.Store
	config      *config.Config
}

var validJS = regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$")

// New parses the templates, the static files and the content pages.
// The flash messages are kept in the store.
func New(store sessions.Store, config *config.Config) Service {

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(validJS, js.Minify)
	m.AddFunc("application/manifest+json", json.Minify)

	return &service{
		templates:   parseTemplates(m),
		staticFiles: parseStaticFiles(m, "static"),
		content:     parseContent(m, "content"),
		plain:       bluemonday.StrictPolicy(),
		store:       store,
		config:      config,
	}
}
