package hud_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-pacer/pacer/clock"
	"github.com/valerio/go-pacer/pacer/hud"
	"github.com/valerio/go-pacer/pacer/stats"
	"github.com/valerio/go-pacer/pacer/timing"
)

func newHUD(t *testing.T) (*hud.HUD, tcell.SimulationScreen, *clock.Manual) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	m := clock.NewManual(1000)
	timer, err := timing.New(m, 10)
	require.NoError(t, err)

	h, err := hud.New(screen, timing.NewFrameLimiter(timer))
	require.NoError(t, err)
	screen.SetSize(80, 10)
	return h, screen, m
}

func screenText(screen tcell.SimulationScreen) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%width == 0 {
			b.WriteByte('\n')
		}
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func TestDraw(t *testing.T) {
	h, screen, _ := newHUD(t)
	defer h.Close()

	h.Draw(hud.Panel{
		Target: 60,
		Stats: stats.Snapshot{
			Frames:   120,
			Sleeps:   118,
			Overruns: 2,
			LastWork: 5 * time.Millisecond,
			LastRate: 59.99,
		},
	})
	screen.Show()

	text := screenText(screen)
	assert.Contains(t, text, "frame pacer")
	assert.Contains(t, text, "target      60.00 fps")
	assert.Contains(t, text, "current     59.99 fps")
	assert.Contains(t, text, "frames        120  slept 118  overruns 2")
}

func TestRunQuitsOnKey(t *testing.T) {
	h, screen, m := newHUD(t)
	defer h.Close()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() {
		done <- h.Run(context.Background(), func() hud.Panel { return hud.Panel{Target: 10} })
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("HUD did not quit")
	}

	_, open := <-h.Done()
	assert.False(t, open)
	for _, d := range m.Delays() {
		assert.Equal(t, 100*time.Millisecond, d, "redraws are paced by the limiter")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	h, _, _ := newHUD(t)
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, h.Run(ctx, func() hud.Panel { return hud.Panel{} }))
}
