// Package clock provides the monotonic tick counter and blocking delay that
// frame pacing is built on.
//
// One Source implementation is compiled per platform and selected by New.
// Manual is a simulated source for deterministic tests and dry runs.
package clock

import (
	"errors"
	"time"
)

//go:generate mockgen -destination=mock_clock/mock_source.go -package=mock_clock . Source

var (
	// ErrUnavailable is returned by New when the platform cannot supply a
	// high-resolution monotonic counter. It is a startup failure.
	ErrUnavailable = errors.New("clock: monotonic counter unavailable")

	// ErrDelayUnavailable is returned by Delay when no platform primitive
	// could be invoked to block the caller.
	ErrDelayUnavailable = errors.New("clock: delay primitive unavailable")
)

// Source is a monotonic tick counter paired with a blocking delay.
type Source interface {
	// Counter returns the current tick count. The value never decreases for
	// the lifetime of the process and has no fixed epoch.
	Counter() int64

	// Frequency returns the number of ticks per second. It is > 0 and
	// constant for the lifetime of the process.
	Frequency() int64

	// Delay blocks the calling goroutine for at least d.
	Delay(d time.Duration) error
}

// New returns the clock source for the running platform. The source is probed
// once here; reads after a successful New are assumed infallible.
func New() (Source, error) {
	return newPlatform()
}
