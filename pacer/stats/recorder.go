// Package stats keeps running frame telemetry for a paced loop and exports
// it to Prometheus.
package stats

import (
	"sync"
	"time"

	"github.com/eclesh/welford"
)

// Frame is what a driving loop learns about one frame.
type Frame struct {
	Work   time.Duration // measured duration before any sleep
	Budget time.Duration
	Slept  bool
	Rate   float64 // rate reported by the timer after pacing
}

// Overrun reports whether the work used the whole budget or more.
func (f Frame) Overrun() bool {
	return f.Work >= f.Budget
}

// Snapshot is a point-in-time copy of a Recorder.
type Snapshot struct {
	Frames   uint64
	Sleeps   uint64
	Overruns uint64
	LastWork time.Duration
	LastRate float64
	MeanWork time.Duration
	StdWork  time.Duration
}

// Recorder accumulates frame counts and the running mean and deviation of
// frame work time. It is safe for concurrent use so an exporter can read it
// while the loop writes.
type Recorder struct {
	mu       sync.Mutex
	frames   uint64
	sleeps   uint64
	overruns uint64
	last     Frame
	work     runningStats
}

type runningStats interface {
	Add(x float64)
	Mean() float64
	Stddev() float64
}

func NewRecorder() *Recorder {
	return &Recorder{work: welford.New()}
}

func (r *Recorder) Observe(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frames++
	if f.Slept {
		r.sleeps++
	}
	if f.Overrun() {
		r.overruns++
	}
	r.last = f
	r.work.Add(f.Work.Seconds())
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		Frames:   r.frames,
		Sleeps:   r.sleeps,
		Overruns: r.overruns,
		LastWork: r.last.Work,
		LastRate: r.last.Rate,
	}
	if r.frames > 0 {
		s.MeanWork = seconds(r.work.Mean())
	}
	if r.frames > 1 {
		s.StdWork = seconds(r.work.Stddev())
	}
	return s
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frames, r.sleeps, r.overruns = 0, 0, 0
	r.last = Frame{}
	r.work = welford.New()
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
