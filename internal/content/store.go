package content

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Page names. Each maps to "<name>.html" in the page source.
const (
	PageHome      = "home"
	PageAbout     = "about"
	PageServices  = "services"
	PageContactUs = "contactus"
	PageQuiz      = "quiz"
	PageResult    = "result"
)

// RequiredPages lists every page the server refuses to start without.
var RequiredPages = []string{PageHome, PageAbout, PageServices, PageContactUs, PageQuiz, PageResult}

// HTMLContentType is the content type of every page.
const HTMLContentType = "text/html; charset=utf-8"

// ErrMediaUnavailable reports that the media asset is missing.
var ErrMediaUnavailable = errors.New("media asset unavailable")

// Page is an immutable HTML page held in memory for the process lifetime.
// Body and Gzip must never be modified after Load returns.
type Page struct {
	Name        string
	ContentType string
	Body        []byte
	// Gzip is the gzip encoding of Body, or nil when compression is off
	// or did not shrink the page.
	Gzip []byte
}

// Media describes the video asset as resolved at startup.
type Media struct {
	Path        string
	ContentType string
	Size        int64
	ModTime     time.Time
	Available   bool
}

// Open returns a fresh read cursor on the asset. Every caller gets its own
// file handle, so concurrent readers never share offsets.
func (m Media) Open() (*os.File, error) {
	if !m.Available {
		return nil, ErrMediaUnavailable
	}
	f, err := os.Open(m.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMediaUnavailable, m.Path)
		}
		return nil, fmt.Errorf("failed to open media: %w", err)
	}
	return f, nil
}

// Store is the read-only content shared by all handlers.
type Store struct {
	pages map[string]*Page
	media Media
}

// NewStore builds a store from already loaded pages. Mostly useful in tests;
// production code goes through Load.
func NewStore(pages []*Page, media Media) *Store {
	s := &Store{pages: make(map[string]*Page, len(pages)), media: media}
	for _, p := range pages {
		s.pages[p.Name] = p
	}
	return s
}

// Page returns the named page.
func (s *Store) Page(name string) (*Page, bool) {
	p, ok := s.pages[name]
	return p, ok
}

// Media returns the media descriptor.
func (s *Store) Media() Media {
	return s.media
}
