package stats

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter publishes a Recorder on its own Prometheus registry.
type Exporter struct {
	registry *prometheus.Registry
	recorder *Recorder
}

// NewExporter registers the recorder's metrics. target reports the timer's
// configured rate at scrape time.
func NewExporter(recorder *Recorder, target func() float64) (*Exporter, error) {
	e := &Exporter{registry: prometheus.NewRegistry(), recorder: recorder}

	collectors := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "pacer_frames_total",
			Help: "Frames measured by the loop.",
		}, func() float64 { return float64(recorder.Snapshot().Frames) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "pacer_sleeps_total",
			Help: "Frames that slept off unused budget.",
		}, func() float64 { return float64(recorder.Snapshot().Sleeps) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "pacer_overruns_total",
			Help: "Frames whose work used the whole budget.",
		}, func() float64 { return float64(recorder.Snapshot().Overruns) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pacer_frame_rate",
			Help: "Frame rate reported after the last frame.",
		}, func() float64 { return recorder.Snapshot().LastRate }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pacer_target_frame_rate",
			Help: "Configured target frame rate.",
		}, target),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pacer_work_seconds_mean",
			Help: "Running mean of frame work time.",
		}, func() float64 { return recorder.Snapshot().MeanWork.Seconds() }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pacer_work_seconds_stddev",
			Help: "Running standard deviation of frame work time.",
		}, func() float64 { return recorder.Snapshot().StdWork.Seconds() }),
	}

	for _, c := range collectors {
		if err := e.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{
		// Opt into OpenMetrics to support exemplars.
		EnableOpenMetrics: true,
	})
}

// Serve listens on addr and serves /metrics until ctx is done.
func (e *Exporter) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-done:
			return
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Metrics server shutdown", "error", err)
		}
	}()

	slog.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
