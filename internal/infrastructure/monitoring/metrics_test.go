package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolated(t *testing.T) {
	// Two collectors in one process must not clash on registration
	m1 := NewMetrics()
	m2 := NewMetrics()

	m1.RecordSubmission("No depression")

	assert.Equal(t, 1.0, testutil.ToFloat64(m1.Submissions.WithLabelValues("No depression")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m2.Submissions.WithLabelValues("No depression")))
}

func TestMediaCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordMediaResponse("partial")
	m.RecordMediaResponse("partial")
	m.RecordMediaResponse("invalid_range")
	m.AddMediaBytes(1024)
	m.AddMediaBytes(0)
	m.AddMediaBytes(-5)
	m.RecordStreamAbort("client_gone")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MediaResponses.WithLabelValues("partial")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MediaResponses.WithLabelValues("invalid_range")))
	assert.Equal(t, 1024.0, testutil.ToFloat64(m.MediaBytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StreamAborts.WithLabelValues("client_gone")))
}

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/about", func(c *gin.Context) {
		c.String(http.StatusOK, "about")
	})

	for _, path := range []string{"/about", "/about", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/about", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", unmatchedRoute, "404")))
}

func TestMiddlewareRecordsAbortedRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/naturevideo.mp4", func(c *gin.Context) {
		c.Status(http.StatusOK)
		_, _ = c.Writer.Write(make([]byte, 100))
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/naturevideo.mp4", nil))
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/naturevideo.mp4", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ResponseSize))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordHTTPRequest("GET", "/", "200", 10*time.Millisecond, 512)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "content_http_requests_total"))
	assert.True(t, strings.Contains(body, "content_uptime_seconds"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
