// Package poller keeps the normalized logo directory fresh: one synchronous
// pass at boot, then an optional periodic pass until shutdown.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/logo-scatter-service/internal/logging"
	"github.com/preston-bernstein/logo-scatter-service/internal/logos"
	"github.com/preston-bernstein/logo-scatter-service/internal/metrics"
)

// maxFailuresBeforeUnready is how many refreshes in a row may fail while the
// service still reports ready.
const maxFailuresBeforeUnready = 3

// Normalizer produces the normalized logo directory.
type Normalizer interface {
	Normalize(ctx context.Context) (logos.Result, error)
}

// Catalog re-indexes the normalized directory after a run.
type Catalog interface {
	Load() error
}

// Poller runs the normalizer and reloads the catalog on success.
type Poller struct {
	normalizer Normalizer
	catalog    Catalog
	logger     *slog.Logger
	metrics    *metrics.Recorder
	interval   time.Duration
	now        func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	// one normalizer run at a time: runs share temp paths and prune the same dir
	refreshMu sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LogoCount           int
}

// IsReady reports whether a refresh has succeeded and the loop is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxFailuresBeforeUnready
}

// New constructs a Poller. An interval <= 0 disables periodic refreshes; the
// boot pass still runs.
func New(normalizer Normalizer, catalog Catalog, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	return &Poller{
		normalizer: normalizer,
		catalog:    catalog,
		logger:     logger,
		metrics:    recorder,
		interval:   interval,
		now:        time.Now,
		done:       make(chan struct{}),
		exited:     make(chan struct{}),
	}
}

// Start runs the boot pass synchronously and returns its error, then starts
// the periodic loop when an interval is configured.
func (p *Poller) Start(ctx context.Context) error {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return nil
	}
	p.started = true
	p.startMu.Unlock()

	if err := p.refreshOnce(ctx); err != nil {
		close(p.exited)
		return err
	}

	if p.interval <= 0 {
		logging.Info(p.logger, "logo refresh loop disabled")
		close(p.exited)
		return nil
	}

	p.ticker = time.NewTicker(p.interval)
	go func() {
		defer close(p.exited)
		logging.Info(p.logger, "logo refresh loop started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "logo refresh loop stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "logo refresh loop stopped")
				return
			case <-p.ticker.C:
				_ = p.refreshOnce(ctx)
			}
		}
	}()
	return nil
}

// Stop halts the loop and waits for an in-flight refresh until ctx ends.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})

	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh runs one pass outside the loop.
func (p *Poller) Refresh(ctx context.Context) error {
	return p.refreshOnce(ctx)
}

func (p *Poller) refreshOnce(ctx context.Context) error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	start := p.now()
	p.recordAttempt(start)

	res, err := p.normalizer.Normalize(ctx)
	if err == nil && p.catalog != nil {
		err = p.catalog.Load()
	}
	elapsed := p.now().Sub(start)
	p.metrics.RecordNormalizeRun(len(res.Logos), elapsed, err)

	if err != nil {
		logging.Error(p.logger, "logo refresh failed", err, slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
		p.recordFailure(err, start)
		return err
	}

	p.recordSuccess(start, len(res.Logos))
	logging.Info(p.logger, "logo refresh complete",
		logging.FieldCount, len(res.Logos),
		"skipped", len(res.Skipped),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return nil
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, count int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LogoCount = count
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
