package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"github.com/valerio/go-pacer/pacer"
	"github.com/valerio/go-pacer/pacer/clock"
	"github.com/valerio/go-pacer/pacer/hud"
	"github.com/valerio/go-pacer/pacer/stats"
	"github.com/valerio/go-pacer/pacer/timing"
)

const hudRefreshRate = 10

func main() {
	app := cli.NewApp()
	app.Name = "pacer"
	app.Description = "Runs a simulated workload paced to a target frame rate"
	app.Usage = "pacer [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.Float64Flag{
			Name:  "fps",
			Usage: "Target frame rate",
			Value: timing.DefaultTargetRate,
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run (0 = until interrupted)",
			Value: 0,
		},
		cli.DurationFlag{
			Name:  "work",
			Usage: "Simulated work per frame",
			Value: 5 * time.Millisecond,
		},
		cli.BoolFlag{
			Name:  "measured",
			Usage: "Report the rate of the work alone instead of the paced rate",
		},
		cli.BoolFlag{
			Name:  "unpaced",
			Usage: "Measure frames without sleeping",
		},
		cli.BoolFlag{
			Name:  "simulate",
			Usage: "Use a simulated clock; nothing actually sleeps",
		},
		cli.Int64Flag{
			Name:  "sim-frequency",
			Usage: "Tick frequency of the simulated clock",
			Value: 1_000_000,
		},
		cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "Serve Prometheus metrics on this address (e.g. :9090)",
		},
		cli.BoolFlag{
			Name:  "hud",
			Usage: "Show live figures in the terminal",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log every frame",
		},
	}
	app.Action = run

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running pacer", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	setupLogging(c.Bool("verbose"), c.Bool("hud"))

	frames := c.Int("frames")
	if frames < 0 {
		return errors.New("--frames must not be negative")
	}
	work := c.Duration("work")
	if work < 0 {
		return errors.New("--work must not be negative")
	}

	src, workFn, err := newSource(c.Bool("simulate"), c.Int64("sim-frequency"), work)
	if err != nil {
		return err
	}

	timer, err := timing.New(src, c.Float64("fps"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	recorder := stats.NewRecorder()

	if addr := c.String("metrics-addr"); addr != "" {
		exporter, err := stats.NewExporter(recorder, timer.TargetRate)
		if err != nil {
			return err
		}
		go func() {
			if err := exporter.Serve(ctx, addr); err != nil {
				slog.Error("Metrics server failed", "addr", addr, "error", err)
			}
		}()
	}

	slog.Info("Running paced loop",
		"fps", timer.TargetRate(),
		"budget", timer.Budget(),
		"frames", frames,
		"work", work,
		"simulate", c.Bool("simulate"))

	loop := pacer.NewLoop(timer, recorder, pacer.Config{
		Frames:   frames,
		Measured: c.Bool("measured"),
		Unpaced:  c.Bool("unpaced"),
		OnFrame: func(i int, f stats.Frame) {
			if (i+1)%60 == 0 {
				slog.Info("Frame progress", "completed", i+1, "rate", f.Rate, "work", f.Work)
			}
		},
	})

	var wg sync.WaitGroup
	if c.Bool("hud") {
		// the HUD paces its redraws on its own timer over the platform clock
		hudClock, err := clock.New()
		if err != nil {
			return err
		}
		hudTimer, err := timing.New(hudClock, hudRefreshRate)
		if err != nil {
			return err
		}
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		display, err := hud.New(screen, timing.NewFrameLimiter(hudTimer))
		if err != nil {
			return err
		}

		target := timer.TargetRate()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer display.Close()
			if err := display.Run(ctx, func() hud.Panel {
				return hud.Panel{Target: target, Stats: recorder.Snapshot()}
			}); err != nil {
				slog.Error("HUD failed", "error", err)
			}
			cancel()
		}()
	}

	err = loop.Run(ctx, workFn)
	cancel()
	wg.Wait()

	s := recorder.Snapshot()
	slog.Info("Pacer finished",
		"frames", s.Frames,
		"sleeps", s.Sleeps,
		"overruns", s.Overruns,
		"mean_work", s.MeanWork,
		"last_rate", s.LastRate)
	return err
}

// newSource returns the clock and a matching simulated workload. On the
// simulated clock the work advances the counter; on the platform clock it
// blocks for real.
func newSource(simulate bool, freq int64, work time.Duration) (clock.Source, pacer.WorkFunc, error) {
	if simulate {
		if freq <= 0 {
			return nil, nil, errors.New("--sim-frequency must be positive")
		}
		m := clock.NewManual(freq)
		ticks := timing.DurationToTicks(work, freq)
		return m, func(context.Context, int) error {
			m.Advance(ticks)
			return nil
		}, nil
	}

	src, err := clock.New()
	if err != nil {
		return nil, nil, err
	}
	return src, func(ctx context.Context, _ int) error {
		select {
		case <-time.After(work):
			return nil
		case <-ctx.Done():
			return nil
		}
	}, nil
}

func setupLogging(verbose, quiet bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if quiet {
		// the terminal belongs to the HUD
		out = io.Discard
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
