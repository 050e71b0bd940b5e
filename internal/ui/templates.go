package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/web"
)

// These are files/dirs within the embedded filesystem 'web'
const base = "templates/base.html"
const partials = "templates/partials"

// Helpers available in every template
var funcMap = template.FuncMap{
	"static": staticURL,
}

// Parse the templates and create a template map
func parseTemplates(m *minify.M) models.TemplateMap {

	templateMap := make(models.TemplateMap)
	baseTemplate := template.Must(parseTemplateFiles(m, nil, base))

	// Function used to process each file/dir in the root, including the root
	walkDirFunc := func(path string, info fs.DirEntry, err error) error {

		// The err argument reports an error related to path,
		// signaling that WalkDir will not walk into that directory.
		// Returning back the error will cause WalkDir to stop walking the entire tree.
		// https://pkg.go.dev/io/fs#WalkDirFunc
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		// Every partial is parsed into its own clone of the base
		baseTmpl, err := baseTemplate.Clone()
		if err != nil {
			return fmt.Errorf("couldn't clone the base '%s' template; %w", base, err)
		}

		name := filepath.Base(path)
		templateMap[name] = template.Must(parseTemplateFiles(m, baseTmpl, path))
		return nil
	}

	if err := fs.WalkDir(web.Files, partials, walkDirFunc); err != nil {
		log.Fatal(err)
	}

	return templateMap
}

// Minify and parse the HTML templates as per the tdewolff/minify docs.
func parseTemplateFiles(m *minify.M, tmpl *template.Template, filepaths ...string) (*template.Template, error) {

	for _, fp := range filepaths {

		b, err := fs.ReadFile(web.Files, fp)
		if err != nil {
			return nil, err
		}

		name := filepath.Base(fp)
		if tmpl == nil {
			tmpl = template.New(name).Funcs(funcMap)
		} else {
			tmpl = tmpl.New(name)
		}

		if ext := filepath.Ext(name); ext != ".html" {
			return nil, fmt.Errorf("unknown media type: %s", fp)
		}

		mb, err := m.Bytes("text/html", b)
		if err != nil {
			return nil, err
		}

		tmpl, err = tmpl.Parse(string(mb))
		if err != nil {
			return nil, err
		}
	}

	return tmpl, nil
}

// staticURL appends the file's etag to the URL for cache busting
func staticURL(files models.StaticFiles, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if info, ok := files[path]; ok && info.Etag != "" {
		return path + "?v=" + info.Etag
	}
	return path
}
