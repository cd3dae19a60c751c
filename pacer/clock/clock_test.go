package clock_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-pacer/pacer/clock"
)

func TestPlatformSource(t *testing.T) {
	src, err := clock.New()
	require.NoError(t, err)

	t.Run("frequency is positive and constant", func(t *testing.T) {
		freq := src.Frequency()
		assert.Greater(t, freq, int64(0))
		assert.Equal(t, freq, src.Frequency())
	})

	t.Run("counter never decreases", func(t *testing.T) {
		prev := src.Counter()
		for i := 0; i < 10000; i++ {
			now := src.Counter()
			require.GreaterOrEqual(t, now, prev)
			prev = now
		}
	})

	t.Run("delay blocks for at least the requested duration", func(t *testing.T) {
		const d = 2 * time.Millisecond
		freq := src.Frequency()

		start := src.Counter()
		require.NoError(t, src.Delay(d))
		elapsed := src.Counter() - start

		// compare in ticks, rounding the request down to avoid false failures
		// from the conversion itself
		want := int64(d) * freq / int64(time.Second)
		assert.GreaterOrEqual(t, elapsed, want-1)
	})

	t.Run("non-positive delay returns immediately", func(t *testing.T) {
		assert.NoError(t, src.Delay(0))
		assert.NoError(t, src.Delay(-time.Second))
	})
}

func TestManual(t *testing.T) {
	t.Run("counter only moves when told", func(t *testing.T) {
		m := clock.NewManual(1_000_000)
		assert.Equal(t, int64(0), m.Counter())
		assert.Equal(t, int64(1_000_000), m.Frequency())

		m.Advance(250)
		assert.Equal(t, int64(250), m.Counter())

		m.Set(100)
		assert.Equal(t, int64(100), m.Counter(), "manual clock may go backwards")
	})

	t.Run("delay records and advances", func(t *testing.T) {
		m := clock.NewManual(1_000_000)

		require.NoError(t, m.Delay(11667*time.Microsecond))
		require.NoError(t, m.Delay(1500*time.Millisecond))

		assert.Equal(t, []time.Duration{11667 * time.Microsecond, 1500 * time.Millisecond}, m.Delays())
		assert.Equal(t, int64(11667+1_500_000), m.Counter())
	})

	t.Run("delay at a 10GHz frequency", func(t *testing.T) {
		m := clock.NewManual(10_000_000_000)

		require.NoError(t, m.Delay(999*time.Millisecond))
		assert.Equal(t, int64(9_990_000_000), m.Counter())

		require.NoError(t, m.Delay(1500*time.Millisecond))
		assert.Equal(t, int64(9_990_000_000+15_000_000_000), m.Counter())
	})

	t.Run("injected delay failure", func(t *testing.T) {
		m := clock.NewManual(1000)
		m.FailDelays(clock.ErrDelayUnavailable)

		err := m.Delay(time.Second)
		assert.True(t, errors.Is(err, clock.ErrDelayUnavailable))
		assert.Empty(t, m.Delays())
		assert.Equal(t, int64(0), m.Counter())

		m.FailDelays(nil)
		assert.NoError(t, m.Delay(time.Second))
		assert.Equal(t, int64(1000), m.Counter())
	})

	t.Run("invalid frequency panics", func(t *testing.T) {
		assert.Panics(t, func() { clock.NewManual(0) })
		assert.Panics(t, func() { clock.NewManual(-1) })
	})
}

func TestManualImplementsSource(t *testing.T) {
	var _ clock.Source = (*clock.Manual)(nil)
}
