package timing

import "log/slog"

// Limiter paces a loop that only wants to be held to a frame rate.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset drops the frame in progress, useful after pauses.
	Reset()
}

// FrameLimiter adapts a Timer to Limiter. Each WaitForNextFrame ends the frame
// begun by the previous call, sleeps off its slack and begins the next one.
type FrameLimiter struct {
	timer *Timer
}

func NewFrameLimiter(timer *Timer) *FrameLimiter {
	return &FrameLimiter{timer: timer}
}

func (f *FrameLimiter) WaitForNextFrame() {
	if f.timer.State() == Running {
		if err := f.timer.End(); err != nil {
			slog.Error("Ending frame", "error", err)
		}
		if _, err := f.timer.Sleep(); err != nil {
			slog.Error("Pacing frame", "error", err)
		}
	}

	if err := f.timer.Begin(); err != nil {
		slog.Error("Beginning frame", "error", err)
	}
}

// Reset cancels the frame in progress. The last completed measurement is
// kept, so the pause is never reported as a frame.
func (f *FrameLimiter) Reset() {
	if f.timer.State() != Running {
		return
	}
	if err := f.timer.Cancel(); err != nil {
		slog.Error("Cancelling frame", "error", err)
	}
}
