package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrDriverStopped is returned by Submit once Run has returned.
var ErrDriverStopped = errors.New("driver stopped")

// ErrDriverRunning is returned by any call to Run after the first, whether or
// not the first has returned. A Driver runs once.
var ErrDriverRunning = errors.New("driver already running")

// DriverStats provides statistics about driver execution.
type DriverStats struct {
	TotalExecutions int64
	Sources         []SourceStats
}

// SourceStats provides execution statistics for one event source.
type SourceStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type source int

const (
	sourceGravity source = iota
	sourceClock
	sourceIntent
	sourceCount
)

var sourceNames = [sourceCount]string{"gravity", "clock", "intent"}

type sourceStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type intentRequest struct {
	fn   func(*Engine)
	done chan struct{}
}

// Driver owns the gravity and clock timers of an Engine and serializes them
// with submitted intents onto the goroutine running Run.
type Driver struct {
	engine    *Engine
	timeScale float64

	intents chan intentRequest
	stopped chan struct{}
	running atomic.Bool
	once    sync.Once

	mu    sync.Mutex
	stats [sourceCount]sourceStatsInternal
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithTimeScale speeds every timer up by factor. Values <= 0 are ignored.
func WithTimeScale(factor float64) DriverOption {
	return func(d *Driver) {
		if factor > 0 {
			d.timeScale = factor
		}
	}
}

// NewDriver creates a driver for e. The engine must not be used directly
// while Run is active; go through Submit instead.
func NewDriver(e *Engine, opts ...DriverOption) *Driver {
	d := &Driver{
		engine:    e,
		timeScale: 1,
		intents:   make(chan intentRequest),
		stopped:   make(chan struct{}),
	}
	for i := range d.stats {
		d.stats[i].minDuration = time.Duration(1<<63 - 1)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Submit runs fn against the engine on the driver goroutine and waits for it
// to finish.
func (d *Driver) Submit(ctx context.Context, fn func(*Engine)) error {
	req := intentRequest{fn: fn, done: make(chan struct{})}
	select {
	case d.intents <- req:
	case <-d.stopped:
		return ErrDriverStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run delivers gravity ticks, clock ticks and submitted intents until ctx is
// cancelled. The gravity timer follows Engine.Interval and is re-armed
// whenever the interval changes. Run returns ctx.Err().
func (d *Driver) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrDriverRunning
	}
	defer d.once.Do(func() { close(d.stopped) })

	clock := time.NewTicker(d.scale(ClockInterval))
	defer clock.Stop()

	gravity := time.NewTimer(time.Hour)
	gravity.Stop()
	defer gravity.Stop()

	var armed time.Duration
	rearm := func(force bool) {
		interval, ok := d.engine.Interval()
		switch {
		case !ok:
			gravity.Stop()
			armed = 0
		case force || interval != armed:
			gravity.Reset(d.scale(interval))
			armed = interval
		}
	}
	rearm(true)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-gravity.C:
			d.measure(sourceGravity, func() { d.engine.Tick() })
			rearm(true)
		case <-clock.C:
			d.measure(sourceClock, func() { d.engine.ClockTick() })
		case req := <-d.intents:
			d.measure(sourceIntent, func() { req.fn(d.engine) })
			close(req.done)
			rearm(false)
		}
	}
}

func (d *Driver) scale(interval time.Duration) time.Duration {
	return max(time.Duration(float64(interval)/d.timeScale), time.Microsecond)
}

func (d *Driver) measure(src source, fn func()) {
	start := time.Now()
	fn()
	duration := time.Since(start)

	d.mu.Lock()
	defer d.mu.Unlock()

	stats := &d.stats[src]
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration
	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

// Stats returns execution statistics per event source.
func (d *Driver) Stats() *DriverStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	stats := &DriverStats{Sources: make([]SourceStats, sourceCount)}
	for i, internal := range d.stats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Sources[i] = SourceStats{
			Name:           sourceNames[i],
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}
	return stats
}
