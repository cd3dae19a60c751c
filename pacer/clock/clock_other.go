//go:build !linux && !darwin && !windows

package clock

import (
	"log/slog"
	"time"
)

// runtimeClock uses the Go runtime's monotonic clock, which is backed by the
// platform's high-resolution timer on the BSDs and other targets.
type runtimeClock struct {
	epoch time.Time
}

func newPlatform() (Source, error) {
	slog.Debug("Clock source ready", "clock", "runtime", "frequency", int64(time.Second))
	return &runtimeClock{epoch: time.Now()}, nil
}

func (r *runtimeClock) Counter() int64 {
	return int64(time.Since(r.epoch))
}

func (r *runtimeClock) Frequency() int64 {
	return int64(time.Second)
}

func (r *runtimeClock) Delay(d time.Duration) error {
	if d > 0 {
		time.Sleep(d)
	}
	return nil
}
