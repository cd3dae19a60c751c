package timing

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/valerio/go-pacer/pacer/clock"
)

// DefaultTargetRate is the frame rate used when a caller has no preference.
const DefaultTargetRate = 60

// State is the measurement state of a Timer.
type State int

const (
	// Idle means no frame is being measured.
	Idle State = iota
	// Running means a frame has begun and not yet ended.
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Timer measures frames against a tick budget and sleeps off the slack left
// in that budget, so that successive frames are spaced at a target rate.
//
// A caller drives it as Begin, work, End, Sleep, then reads the rate.
// A Timer is not safe for concurrent use; independent loops need independent
// timers.
type Timer struct {
	source clock.Source
	freq   int64

	state    State
	start    int64
	elapsed  int64
	limit    int64
	measured bool
}

// New returns an idle Timer paced at fps frames per second on src.
func New(src clock.Source, fps float64) (*Timer, error) {
	freq := src.Frequency()
	if freq <= 0 {
		return nil, fmt.Errorf("%w: frequency %d", clock.ErrUnavailable, freq)
	}

	t := &Timer{source: src, freq: freq}
	if err := t.SetTargetRate(fps); err != nil {
		return nil, err
	}
	return t, nil
}

// Begin starts measuring a frame. It fails without side effects if a frame
// is already running.
func (t *Timer) Begin() error {
	if t.state == Running {
		return ErrAlreadyRunning
	}

	t.start = t.source.Counter()
	t.state = Running
	return nil
}

// End stops measuring the running frame and records its duration. A counter
// that went backwards is recorded as a zero-length frame.
func (t *Timer) End() error {
	if t.state != Running {
		return ErrNotRunning
	}

	elapsed := t.source.Counter() - t.start
	if elapsed < 0 {
		slog.Warn("Clock went backwards, clamping frame to zero", "start", t.start, "elapsed_ticks", elapsed)
		elapsed = 0
	}

	t.elapsed = elapsed
	t.measured = true
	t.state = Idle
	return nil
}

// Cancel abandons the running frame without recording it. The previous
// measurement, if any, stays readable.
func (t *Timer) Cancel() error {
	if t.state != Running {
		return ErrNotRunning
	}

	t.state = Idle
	return nil
}

// Sleep blocks for the part of the budget the last frame did not use and then
// accounts that frame as having taken exactly the budget. It reports whether
// it slept. An overrun frame is left as measured and nothing is slept.
//
// If the clock's delay primitive fails the frame runs unpaced: Sleep returns
// false without an error and the measurement is left untouched.
func (t *Timer) Sleep() (bool, error) {
	return t.sleep(true)
}

// SleepMeasured is Sleep without the accounting step: the slack is slept off
// but the measured work duration is kept, so CurrentRate reports how fast the
// work alone ran.
func (t *Timer) SleepMeasured() (bool, error) {
	return t.sleep(false)
}

func (t *Timer) sleep(account bool) (bool, error) {
	if t.state != Idle {
		return false, ErrNotIdle
	}
	if !t.measured {
		return false, fmt.Errorf("%w: no frame measured yet", ErrNotIdle)
	}

	if t.elapsed >= t.limit {
		slog.Debug("Frame overrun", "elapsed_ticks", t.elapsed, "limit_ticks", t.limit)
		return false, nil
	}

	delay := TicksToDuration(t.limit-t.elapsed, t.freq)
	if err := t.source.Delay(delay); err != nil {
		slog.Warn("Frame delay failed, running unpaced", "delay", delay, "error", err)
		return false, nil
	}

	if account {
		t.elapsed = t.limit
	}
	return true, nil
}

// ElapsedSeconds returns the duration of the last measured frame in seconds,
// or 0 before the first measurement.
func (t *Timer) ElapsedSeconds() float64 {
	return float64(t.elapsed) / float64(t.freq)
}

// Elapsed returns the duration of the last measured frame.
func (t *Timer) Elapsed() time.Duration {
	return TicksToDuration(t.elapsed, t.freq)
}

// CurrentRate returns the frame rate implied by the last measured frame.
// It is 0 while a frame is running, before the first measurement, and for a
// zero-length frame.
//
// After Sleep the rate equals TargetRate, which is frequency divided by the
// rounded tick budget: at 1MHz and 60 fps that is 1e6/16667, about 59.9988.
func (t *Timer) CurrentRate() float64 {
	if t.state != Idle || !t.measured || t.elapsed == 0 {
		return 0
	}
	return float64(t.freq) / float64(t.elapsed)
}

// TargetRate returns the frame rate the budget paces to. It may differ from
// the rate passed to SetTargetRate by the rounding of one tick.
func (t *Timer) TargetRate() float64 {
	return float64(t.freq) / float64(t.limit)
}

// SetTargetRate changes the budget to pace at fps frames per second. The
// budget cannot change while a frame is running.
func (t *Timer) SetTargetRate(fps float64) error {
	if t.state != Idle {
		return ErrNotIdle
	}

	limit, err := LimitFor(t.freq, fps)
	if err != nil {
		return err
	}

	t.limit = limit
	slog.Debug("Frame budget set", "fps", fps, "limit_ticks", limit, "frequency", t.freq)
	return nil
}

// Budget returns the per-frame budget as a duration.
func (t *Timer) Budget() time.Duration {
	return TicksToDuration(t.limit, t.freq)
}

func (t *Timer) State() State { return t.state }
func (t *Timer) ElapsedTicks() int64 { return t.elapsed }
func (t *Timer) LimitTicks() int64 { return t.limit }
func (t *Timer) Frequency() int64 { return t.freq }

// Measured reports whether at least one frame has ended.
func (t *Timer) Measured() bool { return t.measured }
