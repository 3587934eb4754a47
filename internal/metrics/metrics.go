package metrics

import (
	"sync"
	"time"
)

// Snapshot is a copy of the in-memory counters.
type Snapshot struct {
	Renders              int
	RenderErrors         int
	LogosPlaced          int
	FallbackMarkers      int
	SkippedRows          int
	LastRenderLatency    time.Duration
	NormalizeRuns        int
	NormalizeErrors      int
	LogosNormalized      int
	LastNormalizeLatency time.Duration
	LoginSuccesses       int
	LoginFailures        int
	HTTPRequests         int
}

// Recorder captures lightweight, in-memory metrics about renders, normalization runs and logins.
// When built by Setup it also forwards every observation to OpenTelemetry instruments.
type Recorder struct {
	mu    sync.Mutex
	stats Snapshot
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{otel: otel}
}

// RecordPlotRender tracks one chart render and how its markers were resolved.
func (r *Recorder) RecordPlotRender(logos, fallbacks, skipped int, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.stats.Renders++
	r.stats.LastRenderLatency = duration
	if err != nil {
		r.stats.RenderErrors++
	} else {
		r.stats.LogosPlaced += logos
		r.stats.FallbackMarkers += fallbacks
		r.stats.SkippedRows += skipped
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPlotRender(logos, fallbacks, skipped, duration, err)
	}
}

// RecordNormalizeRun tracks one logo normalization pass.
func (r *Recorder) RecordNormalizeRun(files int, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.stats.NormalizeRuns++
	r.stats.LastNormalizeLatency = duration
	if err != nil {
		r.stats.NormalizeErrors++
	} else {
		r.stats.LogosNormalized += files
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordNormalize(files, duration, err)
	}
}

// RecordLoginAttempt tracks access gate submissions.
func (r *Recorder) RecordLoginAttempt(success bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	if success {
		r.stats.LoginSuccesses++
	} else {
		r.stats.LoginFailures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLogin(success)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.stats.HTTPRequests++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// Snapshot returns a copy of the current stats.
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
