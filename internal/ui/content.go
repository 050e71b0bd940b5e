package ui

import (
	"bytes"
	"html/template"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify"
	"github.com/vlatan/media-hub/web"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Content returns the rendered markdown page, empty if there's none
func (s *service) Content(name string) template.HTML {
	return s.content[name]
}

// PlainText strips any markup from the text
func (s *service) PlainText(text string) string {
	return plainText(s.plain, text)
}

// Render the markdown pages in the directory.
// The pages are keyed by their file name without the extension.
func parseContent(m *minify.M, dir string) map[string]template.HTML {

	md := goldmark.New(goldmark.WithExtensions(extension.Typographer))
	content := make(map[string]template.HTML)

	walkDirFunc := func(path string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		b, err := fs.ReadFile(web.Files, path)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err = md.Convert(b, &buf); err != nil {
			return err
		}

		mb, err := m.Bytes("text/html", buf.Bytes())
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(path), ".md")
		content[name] = template.HTML(mb) // #nosec G203
		return nil
	}

	if err := fs.WalkDir(web.Files, dir, walkDirFunc); err != nil {
		log.Printf("failed to parse the content pages; %v", err)
	}

	return content
}
