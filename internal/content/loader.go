package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/Kuldeep2thakur/depression/internal/infrastructure/logging"
)

// Options controls Load.
type Options struct {
	// PagesDir overrides the embedded pages when set.
	PagesDir string
	// Compress precomputes a gzip variant of every page.
	Compress bool

	MediaPath        string
	MediaContentType string

	Logger *logging.Logger
}

// Load reads every required page and resolves the media asset. A missing
// or empty page is an error; a missing media asset is only logged.
func Load(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	source := EmbeddedPages()
	if opts.PagesDir != "" {
		info, err := os.Stat(opts.PagesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open pages directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("pages path %s is not a directory", opts.PagesDir)
		}
		source = os.DirFS(opts.PagesDir)
	}

	pages, err := loadPages(source, opts.Compress)
	if err != nil {
		return nil, err
	}

	media := resolveMedia(opts.MediaPath, opts.MediaContentType, logger)

	logger.Info("Content loaded",
		zap.Int("pages", len(pages)),
		zap.Bool("embedded", opts.PagesDir == ""),
		zap.String("media_path", media.Path),
		zap.Bool("media_available", media.Available),
		zap.Int64("media_size", media.Size),
	)

	return NewStore(pages, media), nil
}

func loadPages(source fs.FS, compress bool) ([]*Page, error) {
	pages := make([]*Page, 0, len(RequiredPages))
	for _, name := range RequiredPages {
		body, err := fs.ReadFile(source, name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to load page %q: %w", name, err)
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, fmt.Errorf("page %q is empty", name)
		}

		page := &Page{Name: name, ContentType: HTMLContentType, Body: body}
		if compress {
			encoded, err := gzipBytes(body)
			if err != nil {
				return nil, fmt.Errorf("failed to compress page %q: %w", name, err)
			}
			if len(encoded) < len(body) {
				page.Gzip = encoded
			}
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// gzipBytes compresses with a zero header timestamp so the output is
// identical on every run.
func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resolveMedia(path, contentType string, logger *logging.Logger) Media {
	media := Media{Path: path, ContentType: contentType}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Warn("Media asset not found; requests will get 404", zap.String("path", path))
		return media
	case err != nil:
		logger.Warn("Media asset not readable; requests will get 404", zap.String("path", path), zap.Error(err))
		return media
	case !info.Mode().IsRegular():
		logger.Warn("Media path is not a regular file; requests will get 404", zap.String("path", path))
		return media
	}

	media.Size = info.Size()
	media.ModTime = info.ModTime()
	media.Available = true

	if detected, err := mimetype.DetectFile(path); err == nil && !detected.Is(contentType) {
		logger.Warn("Media content does not look like its configured type",
			zap.String("configured", contentType),
			zap.String("detected", detected.String()),
		)
	}

	return media
}
