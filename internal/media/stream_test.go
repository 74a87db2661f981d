package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAsset(size int) []byte {
	data := make([]byte, size)
	rand.New(rand.NewSource(42)).Read(data)
	return data
}

// countingReaderAt records how many reads reached the source.
type countingReaderAt struct {
	src   io.ReaderAt
	reads atomic.Int64
	bytes atomic.Int64
}

func (c *countingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	c.reads.Add(1)
	n, err := c.src.ReadAt(p, off)
	c.bytes.Add(int64(n))
	return n, err
}

// failingWriter accepts limit bytes, then fails.
type failingWriter struct {
	limit int
	buf   bytes.Buffer
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.buf.Len()+len(p) > w.limit {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

// brokenReaderAt fails every read at or past failAt.
type brokenReaderAt struct {
	src    io.ReaderAt
	failAt int64
}

var errDisk = errors.New("disk on fire")

func (b brokenReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= b.failAt {
		return 0, errDisk
	}
	if off+int64(len(p)) > b.failAt {
		p = p[:b.failAt-off]
	}
	return b.src.ReadAt(p, off)
}

func TestCopyExactWindow(t *testing.T) {
	asset := testAsset(10_000)
	src := bytes.NewReader(asset)

	tests := []struct {
		name      string
		chunkSize int
		start     int64
		end       int64
	}{
		{name: "full asset", chunkSize: 1024, start: 0, end: 9999},
		{name: "single byte", chunkSize: 1024, start: 4321, end: 4321},
		{name: "window smaller than chunk", chunkSize: 4096, start: 10, end: 109},
		{name: "window on chunk boundary", chunkSize: 100, start: 0, end: 999},
		{name: "window off chunk boundary", chunkSize: 100, start: 7, end: 1006},
		{name: "tail", chunkSize: 333, start: 9000, end: 9999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			win := Window{Start: tt.start, End: tt.end, Size: int64(len(asset)), Partial: true}

			n, err := NewStreamer(tt.chunkSize).Copy(context.Background(), &out, src, win)
			require.NoError(t, err)
			assert.Equal(t, win.Length(), n)
			assert.Equal(t, asset[tt.start:tt.end+1], out.Bytes())
		})
	}
}

func TestCopyReadsInBoundedChunks(t *testing.T) {
	asset := testAsset(64 * 1024)
	src := &countingReaderAt{src: bytes.NewReader(asset)}

	n, err := NewStreamer(4096).Copy(context.Background(), io.Discard, src, FullWindow(int64(len(asset))))
	require.NoError(t, err)
	assert.Equal(t, int64(len(asset)), n)
	assert.Equal(t, int64(16), src.reads.Load())
	assert.Equal(t, int64(len(asset)), src.bytes.Load())
}

func TestCopyEmptyWindow(t *testing.T) {
	var out bytes.Buffer
	n, err := NewStreamer(0).Copy(context.Background(), &out, bytes.NewReader(nil), FullWindow(0))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, out.Len())
}

func TestCopyStopsWhenClientGoes(t *testing.T) {
	asset := testAsset(100 * 1024)
	src := &countingReaderAt{src: bytes.NewReader(asset)}
	dst := &failingWriter{limit: 2048}

	n, err := NewStreamer(1024).Copy(context.Background(), dst, src, FullWindow(int64(len(asset))))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrClientGone))
	assert.False(t, errors.Is(err, ErrReadFailure))
	assert.Equal(t, int64(2048), n)
	// two accepted chunks plus the one whose write failed
	assert.Equal(t, int64(3), src.reads.Load())
}

func TestCopyStopsOnCancelledContext(t *testing.T) {
	asset := testAsset(8 * 1024)
	src := &countingReaderAt{src: bytes.NewReader(asset)}

	ctx, cancel := context.WithCancel(context.Background())
	dst := writerFunc(func(p []byte) (int, error) {
		cancel()
		return len(p), nil
	})

	n, err := NewStreamer(1024).Copy(ctx, dst, src, FullWindow(int64(len(asset))))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrClientGone))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int64(1024), n)
	assert.Equal(t, int64(1), src.reads.Load())
}

func TestCopyReadFailure(t *testing.T) {
	asset := testAsset(4096)

	t.Run("before first byte", func(t *testing.T) {
		src := brokenReaderAt{src: bytes.NewReader(asset), failAt: 0}
		var out bytes.Buffer

		n, err := NewStreamer(1024).Copy(context.Background(), &out, src, FullWindow(int64(len(asset))))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrReadFailure))
		assert.True(t, errors.Is(err, errDisk))
		assert.Zero(t, n)
	})

	t.Run("mid stream", func(t *testing.T) {
		src := brokenReaderAt{src: bytes.NewReader(asset), failAt: 2500}
		var out bytes.Buffer

		n, err := NewStreamer(1024).Copy(context.Background(), &out, src, FullWindow(int64(len(asset))))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrReadFailure))
		assert.Equal(t, int64(2500), n)
		assert.Equal(t, asset[:2500], out.Bytes())
	})

	t.Run("source shorter than window", func(t *testing.T) {
		win := Window{Start: 0, End: 8191, Size: 8192}
		var out bytes.Buffer

		n, err := NewStreamer(1024).Copy(context.Background(), &out, bytes.NewReader(asset), win)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrReadFailure))
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
		assert.Equal(t, int64(len(asset)), n)
	})
}

func TestCopyConcurrentDisjointWindows(t *testing.T) {
	asset := testAsset(256 * 1024)
	src := bytes.NewReader(asset)
	streamer := NewStreamer(1000)

	const workers = 16
	span := int64(len(asset) / workers)

	var wg sync.WaitGroup
	results := make([][]byte, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			win := Window{Start: int64(i) * span, End: int64(i+1)*span - 1, Size: int64(len(asset)), Partial: true}
			var out bytes.Buffer
			_, errs[i] = streamer.Copy(context.Background(), &out, src, win)
			results[i] = out.Bytes()
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, asset[int64(i)*span:int64(i+1)*span], results[i], "window %d", i)
	}
}

func TestNewStreamerDefaults(t *testing.T) {
	assert.Equal(t, DefaultChunkSize, NewStreamer(0).chunkSize)
	assert.Equal(t, DefaultChunkSize, NewStreamer(-1).chunkSize)
	assert.Equal(t, 512, NewStreamer(512).chunkSize)
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
