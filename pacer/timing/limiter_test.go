package timing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-pacer/pacer/clock"
	"github.com/valerio/go-pacer/pacer/timing"
)

func TestFrameLimiter(t *testing.T) {
	m := clock.NewManual(1000)
	timer, err := timing.New(m, 100)
	require.NoError(t, err)

	lim := timing.NewFrameLimiter(timer)

	// first call only begins a frame
	lim.WaitForNextFrame()
	assert.Equal(t, timing.Running, timer.State())
	assert.Empty(t, m.Delays())

	m.Advance(4)
	lim.WaitForNextFrame()
	assert.Equal(t, []time.Duration{6 * time.Millisecond}, m.Delays())
	assert.Equal(t, timing.Running, timer.State())

	// overrun frame is not paced
	m.Advance(25)
	lim.WaitForNextFrame()
	assert.Len(t, m.Delays(), 1)

	lim.Reset()
	assert.Equal(t, timing.Idle, timer.State())

	lim.WaitForNextFrame()
	assert.Len(t, m.Delays(), 1, "a reset frame is not paced")
	assert.Equal(t, timing.Running, timer.State())
}

func TestFrameLimiterResetKeepsLastFrame(t *testing.T) {
	m := clock.NewManual(1000)
	timer, err := timing.New(m, 100)
	require.NoError(t, err)

	lim := timing.NewFrameLimiter(timer)
	lim.WaitForNextFrame()
	m.Advance(4)
	lim.WaitForNextFrame()
	require.Equal(t, int64(10), timer.ElapsedTicks())

	// a long pause inside the running frame
	m.Advance(500)
	lim.Reset()

	assert.Equal(t, timing.Idle, timer.State())
	assert.Equal(t, int64(10), timer.ElapsedTicks())
	assert.Equal(t, 100.0, timer.CurrentRate())

	// reset on an idle limiter is a no-op
	lim.Reset()
	assert.Equal(t, int64(10), timer.ElapsedTicks())
}

func TestFrameLimiterImplementsLimiter(t *testing.T) {
	var _ timing.Limiter = (*timing.FrameLimiter)(nil)
}
