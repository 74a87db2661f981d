package media

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// DefaultChunkSize is the copy increment used when none is configured.
const DefaultChunkSize = 32 * 1024

var (
	// ErrReadFailure wraps errors from the asset side of a copy.
	ErrReadFailure = errors.New("media read failure")
	// ErrClientGone wraps write errors and request cancellation.
	ErrClientGone = errors.New("client disconnected")
)

// Streamer copies byte windows of an asset to a sink in fixed increments.
// It holds no per-request state and is safe for concurrent use.
type Streamer struct {
	chunkSize int
}

// NewStreamer creates a streamer. Non-positive sizes fall back to DefaultChunkSize.
func NewStreamer(chunkSize int) *Streamer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Streamer{chunkSize: chunkSize}
}

// Copy writes exactly win.Length() bytes of src, starting at win.Start, to dst.
//
// At most one chunk is held in memory. The loop stops as soon as the
// context is cancelled or dst fails, without reading further from src.
// The returned count is the number of bytes dst accepted. Errors wrap
// ErrClientGone or ErrReadFailure; a source shorter than the window is a
// read failure wrapping io.ErrUnexpectedEOF.
func (s *Streamer) Copy(ctx context.Context, dst io.Writer, src io.ReaderAt, win Window) (int64, error) {
	remaining := win.Length()
	if remaining <= 0 {
		return 0, nil
	}

	cursor := io.NewSectionReader(src, win.Start, remaining)
	buf := make([]byte, min(int64(s.chunkSize), remaining))

	var written int64
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("%w: %w", ErrClientGone, err)
		}

		nr, rerr := cursor.Read(buf[:min(int64(len(buf)), remaining)])
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			written += int64(nw)
			remaining -= int64(nw)
			if werr == nil && nw != nr {
				werr = io.ErrShortWrite
			}
			if werr != nil {
				return written, fmt.Errorf("%w: %w", ErrClientGone, werr)
			}
		}

		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				if remaining == 0 {
					break
				}
				rerr = io.ErrUnexpectedEOF
			}
			return written, fmt.Errorf("%w: %w", ErrReadFailure, rerr)
		}
	}

	return written, nil
}
