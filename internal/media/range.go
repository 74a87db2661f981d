package media

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned for a Range header that is malformed or
// cannot be satisfied. Callers answer 416 and never clamp.
var ErrInvalidRange = errors.New("invalid range")

const rangeUnit = "bytes="

// Window is an end-inclusive byte span of an asset of Size bytes.
// A full window on an empty asset has End = -1 and length 0.
type Window struct {
	Start int64
	End   int64
	Size  int64
	// Partial is set when the window came from a Range header.
	Partial bool
}

// FullWindow covers the whole asset.
func FullWindow(size int64) Window {
	return Window{Start: 0, End: size - 1, Size: size}
}

// Length is the number of bytes in the window.
func (w Window) Length() int64 {
	return w.End - w.Start + 1
}

// Status is 206 for range requests and 200 otherwise.
func (w Window) Status() int {
	if w.Partial {
		return http.StatusPartialContent
	}
	return http.StatusOK
}

// ContentRange formats the Content-Range value of a partial response.
func (w Window) ContentRange() string {
	return fmt.Sprintf("bytes %d-%d/%d", w.Start, w.End, w.Size)
}

// SetHeaders writes the length and range headers the window's status requires.
func (w Window) SetHeaders(h http.Header) {
	h.Set("Accept-Ranges", "bytes")
	h.Set("Content-Length", strconv.FormatInt(w.Length(), 10))
	if w.Partial {
		h.Set("Content-Range", w.ContentRange())
	} else {
		h.Del("Content-Range")
	}
}

// UnsatisfiableContentRange is the Content-Range value sent with a 416.
func UnsatisfiableContentRange(size int64) string {
	return "bytes */" + strconv.FormatInt(size, 10)
}

// Negotiate turns an optional Range header into a serving window.
// An empty header yields the full asset.
func Negotiate(header string, size int64) (Window, error) {
	if header == "" {
		return FullWindow(size), nil
	}
	return ParseRange(header, size)
}

// ParseRange parses a single "bytes=<start>-[<end>]" range against an
// asset of the given size. The start offset is mandatory; suffix ranges
// and range lists are rejected. Whitespace is trimmed only around the
// whole header, so "bytes= 0-9" and other inner whitespace is malformed.
func ParseRange(header string, size int64) (Window, error) {
	value := strings.TrimSpace(header)
	if len(value) < len(rangeUnit) || !strings.EqualFold(value[:len(rangeUnit)], rangeUnit) {
		return Window{}, fmt.Errorf("%w: unsupported unit in %q", ErrInvalidRange, header)
	}
	value = value[len(rangeUnit):]

	dash := strings.IndexByte(value, '-')
	if dash < 0 {
		return Window{}, fmt.Errorf("%w: missing '-' in %q", ErrInvalidRange, header)
	}

	start, ok := parseOffset(value[:dash])
	if !ok {
		return Window{}, fmt.Errorf("%w: bad start in %q", ErrInvalidRange, header)
	}

	end := size - 1
	if endValue := value[dash+1:]; endValue != "" {
		if end, ok = parseOffset(endValue); !ok {
			return Window{}, fmt.Errorf("%w: bad end in %q", ErrInvalidRange, header)
		}
	}

	switch {
	case start >= size:
		return Window{}, fmt.Errorf("%w: start %d beyond size %d", ErrInvalidRange, start, size)
	case start > end:
		return Window{}, fmt.Errorf("%w: start %d after end %d", ErrInvalidRange, start, end)
	case end >= size:
		return Window{}, fmt.Errorf("%w: end %d beyond size %d", ErrInvalidRange, end, size)
	}

	return Window{Start: start, End: end, Size: size, Partial: true}, nil
}

// parseOffset accepts plain decimal digits only; signs, spaces and
// values overflowing int64 are rejected.
func parseOffset(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
