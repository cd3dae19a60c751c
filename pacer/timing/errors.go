package timing

import "errors"

var (
	// ErrAlreadyRunning is returned by Begin when a frame is already being
	// measured.
	ErrAlreadyRunning = errors.New("timing: frame already running")

	// ErrNotRunning is returned by End when no frame is being measured.
	ErrNotRunning = errors.New("timing: no frame running")

	// ErrNotIdle is returned by operations that need a completed measurement
	// and no frame in progress.
	ErrNotIdle = errors.New("timing: timer not idle")

	// ErrInvalidRate is returned when a target rate is non-positive or would
	// give a budget of less than one tick.
	ErrInvalidRate = errors.New("timing: invalid target rate")
)
