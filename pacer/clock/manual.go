package clock

import (
	"fmt"
	"math/bits"
	"sync"
	"time"
)

// Manual is a simulated Source. Its counter only moves when told to, and
// Delay advances the counter by the requested duration instead of blocking.
//
// Unlike a platform source, Manual allows the counter to be set backwards so
// callers can exercise clock anomalies.
type Manual struct {
	mu       sync.Mutex
	now      int64
	freq     int64
	delays   []time.Duration
	delayErr error
}

// NewManual returns a Manual source at tick 0 running at freq ticks per
// second. It panics if freq is not positive.
func NewManual(freq int64) *Manual {
	if freq <= 0 {
		panic(fmt.Sprintf("clock: invalid manual frequency %d", freq))
	}
	return &Manual{freq: freq}
}

func (m *Manual) Counter() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Frequency() int64 {
	return m.freq
}

// Delay records d and advances the counter by the ticks it spans. When a
// failure has been injected with FailDelays, nothing is recorded and the
// failure is returned.
func (m *Manual) Delay(d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.delayErr != nil {
		return m.delayErr
	}
	m.delays = append(m.delays, d)
	if d > 0 {
		sec := int64(d / time.Second)
		hi, lo := bits.Mul64(uint64(d%time.Second), uint64(m.freq))
		ticks, _ := bits.Div64(hi, lo, uint64(time.Second))
		m.now += sec*m.freq + int64(ticks)
	}
	return nil
}

// Set moves the counter to tick.
func (m *Manual) Set(tick int64) {
	m.mu.Lock()
	m.now = tick
	m.mu.Unlock()
}

// Advance moves the counter forward by ticks.
func (m *Manual) Advance(ticks int64) {
	m.mu.Lock()
	m.now += ticks
	m.mu.Unlock()
}

// Delays returns every duration passed to a successful Delay, oldest first.
func (m *Manual) Delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.delays))
	copy(out, m.delays)
	return out
}

// FailDelays makes every following Delay return err. A nil err restores
// normal behaviour.
func (m *Manual) FailDelays(err error) {
	m.mu.Lock()
	m.delayErr = err
	m.mu.Unlock()
}
