package http

import (
	"errors"

	"github.com/Kuldeep2thakur/depression/internal/infrastructure/monitoring"
	"github.com/Kuldeep2thakur/depression/internal/media"
)

// Media response outcomes.
const (
	outcomeFull          = "full"
	outcomePartial       = "partial"
	outcomeUnsatisfiable = "unsatisfiable"
	outcomeUnavailable   = "unavailable"
	outcomeError         = "error"
)

// Stream abort reasons.
const (
	abortClientGone  = "client_gone"
	abortReadFailure = "read_failure"
)

// HandlerMetrics wraps handlers with metrics tracking. A nil metrics sink
// turns every call into a no-op.
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// TrackMediaResponse counts the outcome of a media request
func (hm *HandlerMetrics) TrackMediaResponse(outcome string) {
	if hm == nil || hm.metrics == nil {
		return
	}
	hm.metrics.RecordMediaResponse(outcome)
}

// TrackStream records the bytes a stream delivered and, if it ended early, why
func (hm *HandlerMetrics) TrackStream(written int64, err error) {
	if hm == nil || hm.metrics == nil {
		return
	}
	hm.metrics.AddMediaBytes(written)
	switch {
	case err == nil:
	case errors.Is(err, media.ErrClientGone):
		hm.metrics.RecordStreamAbort(abortClientGone)
	default:
		hm.metrics.RecordStreamAbort(abortReadFailure)
	}
}

// TrackSubmission counts a scored submission by category
func (hm *HandlerMetrics) TrackSubmission(category string) {
	if hm == nil || hm.metrics == nil {
		return
	}
	hm.metrics.RecordSubmission(category)
}
