package web

import "embed"

// Files holds the templates, the static files and the markdown content
//
//go:embed templates static content
var Files embed.FS
