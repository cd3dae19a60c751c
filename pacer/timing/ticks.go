package timing

import (
	"fmt"
	"math"
	"math/bits"
	"time"
)

// TicksToDuration converts ticks of a counter running at freq ticks per second
// into a duration. The result is rounded up to the next nanosecond so that a
// delay built from it never falls short of the ticks it represents.
// The intermediate product is 128 bits wide, so the conversion is exact for
// any frequency.
func TicksToDuration(ticks, freq int64) time.Duration {
	if ticks <= 0 || freq <= 0 {
		return 0
	}

	sec := ticks / freq
	hi, lo := bits.Mul64(uint64(ticks%freq), uint64(time.Second))
	ns, rem := bits.Div64(hi, lo, uint64(freq))
	if rem != 0 {
		ns++
	}

	return time.Duration(sec)*time.Second + time.Duration(ns)
}

// DurationToTicks converts d into whole ticks of a counter running at freq
// ticks per second, rounding down.
func DurationToTicks(d time.Duration, freq int64) int64 {
	if d <= 0 || freq <= 0 {
		return 0
	}

	sec := int64(d / time.Second)
	hi, lo := bits.Mul64(uint64(d%time.Second), uint64(freq))
	ticks, _ := bits.Div64(hi, lo, uint64(time.Second))

	return sec*freq + int64(ticks)
}

// LimitFor returns the per-frame tick budget for a target rate of fps frames
// per second, rounded to the nearest tick. fps must be positive, finite and
// lower than freq, since a budget under one tick is meaningless.
func LimitFor(freq int64, fps float64) (int64, error) {
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
		return 0, fmt.Errorf("%w: %v fps must be positive", ErrInvalidRate, fps)
	}
	if fps >= float64(freq) {
		return 0, fmt.Errorf("%w: %v fps must be below the clock frequency %d", ErrInvalidRate, fps, freq)
	}

	limit := int64(math.Round(float64(freq) / fps))
	if limit < 1 {
		limit = 1
	}
	return limit, nil
}
