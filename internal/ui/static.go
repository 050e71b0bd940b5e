package ui

import (
	"bytes"
	"crypto/md5" // #nosec G501
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/tdewolff/minify"
	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/web"
)

// StaticFiles gets the map containing the static files
func (s *service) StaticFiles() models.StaticFiles {
	return s.staticFiles
}

// Create minified versions of the static files and cache them in memory.
func parseStaticFiles(m *minify.M, dir string) models.StaticFiles {

	sf := make(models.StaticFiles)

	walkDirFunc := func(path string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		// Read the file
		b, err := fs.ReadFile(web.Files, path)
		if err != nil {
			return err
		}

		var mediaType string
		switch filepath.Ext(info.Name()) {
		case ".css":
			mediaType = "text/css"
		case ".js":
			mediaType = "application/javascript"
		case ".webmanifest":
			mediaType = "application/manifest+json"
		}

		// Create Etag as a hexadecimal md5 hash of the file content
		etag := fmt.Sprintf("%x", md5.Sum(b)) // #nosec G401

		// Ensure the name starts with "/"
		name := path
		if !strings.HasPrefix(name, "/") {
			name = "/" + name
		}

		sf[name] = &models.FileInfo{
			MediaType: mediaType,
			Etag:      etag,
		}

		// We're done for non CSS, JS, webmanifest files
		if mediaType == "" {
			return nil
		}

		mb, err := m.Bytes(mediaType, b)
		if err != nil {
			return err
		}

		compressed, err := gzipBytes(mb)
		if err != nil {
			return err
		}

		sf[name].Bytes = mb
		sf[name].Compressed = compressed
		return nil
	}

	if err := fs.WalkDir(web.Files, dir, walkDirFunc); err != nil {
		log.Printf("failed to parse the static files; %v", err)
	}

	return sf
}

func gzipBytes(b []byte) ([]byte, error) {

	buf := new(bytes.Buffer)
	gz, err := gzip.NewWriterLevel(buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}

	if _, err = gz.Write(b); err != nil {
		gz.Close()
		return nil, err
	}

	// Close the writer explicitly to flush all the bytes
	if err = gz.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
