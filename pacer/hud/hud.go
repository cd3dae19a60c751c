// Package hud draws live pacing figures in the terminal.
package hud

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-pacer/pacer/stats"
	"github.com/valerio/go-pacer/pacer/timing"
)

// Panel is the data shown on one refresh.
type Panel struct {
	Target float64
	Stats  stats.Snapshot
}

// HUD redraws a Panel on a terminal screen at the pace of its own limiter,
// independently of the loop it reports on.
type HUD struct {
	screen  tcell.Screen
	limiter timing.Limiter
	quit    chan struct{}
	once    sync.Once
}

// New initialises screen and returns a HUD drawing on it.
func New(screen tcell.Screen, limiter timing.Limiter) (*HUD, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	return &HUD{
		screen:  screen,
		limiter: limiter,
		quit:    make(chan struct{}),
	}, nil
}

// Run redraws panel() until ctx is done or the user quits with q, Esc or
// Ctrl-C.
func (h *HUD) Run(ctx context.Context, panel func() Panel) error {
	go h.handleInput()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.quit:
			slog.Info("HUD closed by user")
			return nil
		default:
		}

		h.Draw(panel())
		h.screen.Show()
		h.limiter.WaitForNextFrame()
	}
}

// Done is closed when the user asks to quit.
func (h *HUD) Done() <-chan struct{} {
	return h.quit
}

// Close restores the terminal.
func (h *HUD) Close() {
	h.screen.Fini()
}

func (h *HUD) handleInput() {
	for {
		ev := h.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// screen finalized
			return
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				h.stop()
				return
			case tcell.KeyRune:
				if ev.Rune() == 'q' {
					h.stop()
					return
				}
			}
		case *tcell.EventResize:
			h.screen.Sync()
		}
	}
}

func (h *HUD) stop() {
	h.once.Do(func() { close(h.quit) })
}

// Draw renders p without showing it.
func (h *HUD) Draw(p Panel) {
	h.screen.Clear()

	s := p.Stats
	lines := []string{
		"frame pacer",
		fmt.Sprintf("target   %8.2f fps", p.Target),
		fmt.Sprintf("current  %8.2f fps", s.LastRate),
		fmt.Sprintf("work     %8.3f ms  (mean %.3f ms, stddev %.3f ms)", ms(s.LastWork.Seconds()), ms(s.MeanWork.Seconds()), ms(s.StdWork.Seconds())),
		fmt.Sprintf("frames   %8d  slept %d  overruns %d", s.Frames, s.Sleeps, s.Overruns),
		"",
		"q to quit",
	}

	title := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	body := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if s.Overruns > 0 && s.LastRate < p.Target {
		body = body.Foreground(tcell.ColorRed)
	}

	for y, line := range lines {
		style := body
		if y == 0 {
			style = title
		}
		h.drawText(0, y, line, style)
	}
}

func (h *HUD) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		h.screen.SetContent(x+i, y, r, nil, style)
	}
}

func ms(seconds float64) float64 {
	return seconds * 1000
}
