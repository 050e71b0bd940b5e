package playlist

import (
	"html/template"
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five HTML special characters with entities
func Escape(s string) string {
	return escaper.Replace(s)
}

// escapeHTML escapes s and marks it safe for the templates
func escapeHTML(s string) template.HTML {
	return template.HTML(Escape(s)) // #nosec G203
}
