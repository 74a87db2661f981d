package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kuldeep2thakur/depression/internal/api/middleware"
	"github.com/Kuldeep2thakur/depression/internal/content"
	"github.com/Kuldeep2thakur/depression/internal/infrastructure/logging"
	"github.com/Kuldeep2thakur/depression/internal/media"
	"github.com/Kuldeep2thakur/depression/internal/render"
	"github.com/Kuldeep2thakur/depression/internal/scoring"
)

const htmlContentType = content.HTMLContentType

var (
	notFoundBody   = []byte("<h1>404 Not Found</h1>")
	badRequestBody = []byte("<h1>400 Bad Request</h1>")
	serverErrBody  = []byte("<h1>500 Internal Server Error</h1>")
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store    *content.Store
	streamer *media.Streamer
	engine   *scoring.Engine
	metrics  *HandlerMetrics
	logger   *logging.Logger
	started  time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(
	store *content.Store,
	streamer *media.Streamer,
	engine *scoring.Engine,
	metrics *HandlerMetrics,
	logger *logging.Logger,
) *Handlers {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handlers{
		store:    store,
		streamer: streamer,
		engine:   engine,
		metrics:  metrics,
		logger:   logger,
		started:  time.Now(),
	}
}

// Page returns a handler serving the named page. The gzip variant is sent
// when one exists and the client accepts it.
func (h *Handlers) Page(name string) gin.HandlerFunc {
	page, ok := h.store.Page(name)
	if !ok {
		panic("unknown page: " + name)
	}
	return func(c *gin.Context) {
		body := page.Body
		if page.Gzip != nil {
			c.Header("Vary", "Accept-Encoding")
			if acceptsGzip(c.GetHeader("Accept-Encoding")) {
				c.Header("Content-Encoding", "gzip")
				body = page.Gzip
			}
		}
		c.Data(http.StatusOK, page.ContentType, body)
	}
}

// Media streams the video asset, honouring a single-range Range header.
func (h *Handlers) Media(c *gin.Context) {
	asset := h.store.Media()

	f, err := asset.Open()
	if err != nil {
		if errors.Is(err, content.ErrMediaUnavailable) {
			h.metrics.TrackMediaResponse(outcomeUnavailable)
			h.NotFound(c)
			return
		}
		h.logger.Error("Failed to open media", zap.Error(err), zap.String("path", asset.Path))
		h.metrics.TrackMediaResponse(outcomeError)
		c.Data(http.StatusInternalServerError, htmlContentType, serverErrBody)
		return
	}
	defer f.Close()

	win, err := media.Negotiate(c.GetHeader("Range"), asset.Size)
	if err != nil {
		h.metrics.TrackMediaResponse(outcomeUnsatisfiable)
		c.Header("Content-Range", media.UnsatisfiableContentRange(asset.Size))
		c.Status(http.StatusRequestedRangeNotSatisfiable)
		return
	}

	if win.Partial {
		h.metrics.TrackMediaResponse(outcomePartial)
	} else {
		h.metrics.TrackMediaResponse(outcomeFull)
	}

	header := c.Writer.Header()
	header.Set("Content-Type", asset.ContentType)
	if !asset.ModTime.IsZero() {
		header.Set("Last-Modified", asset.ModTime.UTC().Format(http.TimeFormat))
	}
	win.SetHeaders(header)
	c.Status(win.Status())

	written, err := h.streamer.Copy(c.Request.Context(), c.Writer, f, win)
	h.metrics.TrackStream(written, err)
	if err == nil {
		return
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.Int64("written", written),
		zap.Int64("window_length", win.Length()),
		zap.String("request_id", middleware.GetRequestID(c)),
	}
	if errors.Is(err, media.ErrClientGone) {
		h.logger.Debug("Media client went away", fields...)
		c.Abort()
		return
	}

	h.logger.Error("Media stream failed", fields...)
	if !c.Writer.Written() {
		header.Del("Content-Range")
		header.Del("Accept-Ranges")
		header.Del("Content-Length")
		header.Del("Content-Type")
		header.Del("Last-Modified")
		c.Data(http.StatusInternalServerError, htmlContentType, serverErrBody)
		return
	}
	// Headers and part of the body are on the wire; drop the connection
	// so the client sees a truncated response.
	panic(http.ErrAbortHandler)
}

// SubmitResult scores a posted quiz and renders the result page.
func (h *Handlers) SubmitResult(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.engine.MaxBodyBytes())

	data, err := h.engine.ReadBody(body)
	if err != nil {
		h.reject(c, err)
		return
	}

	res, err := h.engine.Score(data)
	if err != nil {
		h.reject(c, err)
		return
	}

	h.metrics.TrackSubmission(res.Category.Label)
	c.Data(http.StatusOK, htmlContentType, []byte(render.Result(res.Score, res.Category, h.engine.Table())))
}

func (h *Handlers) reject(c *gin.Context, err error) {
	h.logger.Debug("Submission rejected",
		zap.Error(err),
		zap.String("request_id", middleware.GetRequestID(c)),
	)
	_ = c.Error(err)
	c.Data(http.StatusBadRequest, htmlContentType, badRequestBody)
}

// NotFound answers every unmatched request.
func (h *Handlers) NotFound(c *gin.Context) {
	c.Data(http.StatusNotFound, htmlContentType, notFoundBody)
}

// Health handles liveness checks
func (h *Handlers) Health(c *gin.Context) {
	asset := h.store.Media()
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"media": gin.H{
			"available": asset.Available,
			"size":      asset.Size,
		},
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
