// Package pacer drives a unit of work at a target frame rate on top of
// timing.Timer.
package pacer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valerio/go-pacer/pacer/stats"
	"github.com/valerio/go-pacer/pacer/timing"
)

// WorkFunc is one frame's worth of work.
type WorkFunc func(ctx context.Context, frame int) error

// Config controls how a Loop paces its frames.
type Config struct {
	Frames   int  // frames to run; 0 runs until the context is done
	Measured bool // sleep with SleepMeasured, keeping the work duration as the rate basis
	Unpaced  bool // measure without sleeping

	// OnFrame, if set, is called after every frame.
	OnFrame func(index int, f stats.Frame)
}

// Loop runs begin, work, end, sleep in sequence for every frame.
type Loop struct {
	timer    *timing.Timer
	recorder *stats.Recorder
	config   Config
}

// NewLoop returns a loop driving timer. recorder may be nil.
func NewLoop(timer *timing.Timer, recorder *stats.Recorder, config Config) *Loop {
	return &Loop{timer: timer, recorder: recorder, config: config}
}

// Run executes frames until the configured count is reached, ctx is done, or
// work fails. A cancelled context ends the loop without an error.
func (l *Loop) Run(ctx context.Context, work WorkFunc) error {
	for i := 0; l.config.Frames == 0 || i < l.config.Frames; i++ {
		if ctx.Err() != nil {
			slog.Info("Loop stopped", "frames", i)
			return nil
		}

		f, err := l.step(ctx, i, work)
		if err != nil {
			return err
		}

		if l.recorder != nil {
			l.recorder.Observe(f)
		}
		if l.config.OnFrame != nil {
			l.config.OnFrame(i, f)
		}
	}

	slog.Info("Loop completed", "frames", l.config.Frames)
	return nil
}

func (l *Loop) step(ctx context.Context, i int, work WorkFunc) (stats.Frame, error) {
	if err := l.timer.Begin(); err != nil {
		return stats.Frame{}, fmt.Errorf("frame %d: %w", i, err)
	}

	workErr := work(ctx, i)

	if err := l.timer.End(); err != nil {
		return stats.Frame{}, fmt.Errorf("frame %d: %w", i, err)
	}
	if workErr != nil {
		return stats.Frame{}, fmt.Errorf("frame %d: %w", i, workErr)
	}

	f := stats.Frame{
		Work:   l.timer.Elapsed(),
		Budget: l.timer.Budget(),
	}

	if !l.config.Unpaced {
		var err error
		if l.config.Measured {
			f.Slept, err = l.timer.SleepMeasured()
		} else {
			f.Slept, err = l.timer.Sleep()
		}
		if err != nil {
			return stats.Frame{}, fmt.Errorf("frame %d: %w", i, err)
		}
	}

	f.Rate = l.timer.CurrentRate()
	slog.Debug("Frame", "index", i, "work", f.Work, "slept", f.Slept, "rate", f.Rate)
	return f, nil
}
