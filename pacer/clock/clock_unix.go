//go:build linux || darwin

package clock

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sys/unix"
)

// monotonic reads CLOCK_MONOTONIC in nanoseconds and sleeps with nanosleep(2).
type monotonic struct{}

func newPlatform() (Source, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return nil, fmt.Errorf("%w: clock_gettime: %w", ErrUnavailable, err)
	}

	slog.Debug("Clock source ready", "clock", "CLOCK_MONOTONIC", "frequency", int64(time.Second))
	return &monotonic{}, nil
}

func (m *monotonic) Counter() int64 {
	var ts unix.Timespec
	// cannot fail once probed by newPlatform
	_ = unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	return ts.Nano()
}

func (m *monotonic) Frequency() int64 {
	return int64(time.Second)
}

// Delay sleeps for d, resuming with the remaining time when a signal
// interrupts the sleep.
func (m *monotonic) Delay(d time.Duration) error {
	if d <= 0 {
		return nil
	}

	req := unix.NsecToTimespec(int64(d))
	var rem unix.Timespec
	for {
		err := unix.Nanosleep(&req, &rem)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EINTR) {
			return fmt.Errorf("%w: nanosleep: %w", ErrDelayUnavailable, err)
		}
		req = rem
	}
}
