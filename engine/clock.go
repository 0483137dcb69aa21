package engine

import (
	"fmt"
	"math"
	"time"
)

// Speed selects how gravity is timed.
type Speed int

const (
	// Normal gravity follows the level curve.
	Normal Speed = iota
	// Fast gravity runs while a soft drop is held.
	Fast
	// SuperFast gravity is latched by a hard drop until the piece locks.
	SuperFast
)

func (s Speed) String() string {
	switch s {
	case Normal:
		return "normal"
	case Fast:
		return "fast"
	case SuperFast:
		return "super-fast"
	default:
		return fmt.Sprintf("speed(%d)", int(s))
	}
}

const (
	MaxGravityInterval = 1000 * time.Millisecond
	MinGravityInterval = 150 * time.Millisecond
	FastInterval       = 100 * time.Millisecond
	SuperFastInterval  = 20 * time.Millisecond
	ClockInterval      = time.Second
)

// GravityInterval returns the normal-speed drop interval for level:
// 1000ms * 0.98^level clamped to [150ms, 1000ms].
func GravityInterval(level int) time.Duration {
	ms := 1000 * math.Pow(0.98, float64(level))
	interval := time.Duration(ms * float64(time.Millisecond))
	return min(max(interval, MinGravityInterval), MaxGravityInterval)
}

// FormatElapsed renders seconds as HH:MM:SS.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// Interval returns the delay until the next gravity tick, and false while
// gravity is suspended.
func (e *Engine) Interval() (time.Duration, bool) {
	if e.phase != Falling {
		return 0, false
	}
	switch {
	case e.superFast:
		return SuperFastInterval, true
	case e.fast:
		return FastInterval, true
	default:
		return GravityInterval(e.score.Level), true
	}
}

// Speed returns the active gravity mode.
func (e *Engine) Speed() Speed {
	switch {
	case e.superFast:
		return SuperFast
	case e.fast:
		return Fast
	default:
		return Normal
	}
}

// ClockTick advances the elapsed time by one second. It is ignored unless a
// piece is falling.
func (e *Engine) ClockTick() bool {
	if e.phase != Falling {
		return false
	}
	e.elapsed++
	e.events.elapsed(FormatElapsed(e.elapsed))
	e.flush()
	return true
}

// Elapsed returns the elapsed play time in seconds.
func (e *Engine) Elapsed() int {
	return e.elapsed
}
