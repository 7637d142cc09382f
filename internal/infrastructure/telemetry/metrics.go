package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/younwookim/scenekit/internal/domain/entity"
)

// Metrics owns a private registry so several runtimes (and tests) never
// collide on the default one. Label sets are bounded: event kinds and
// registered scene types only.
type Metrics struct {
	registry    *prometheus.Registry
	events      *prometheus.CounterVec
	transitions *prometheus.CounterVec
	frame       prometheus.Histogram
	live        prometheus.Gauge
	pending     prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenekit_events_total",
			Help: "Lifecycle events published by game objects",
		}, []string{"kind"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenekit_scene_activations_total",
			Help: "Scenes made current by the scene manager",
		}, []string{"scene"}),
		frame: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scenekit_frame_duration_seconds",
			Help:    "Time spent in one update step",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.016, 0.033, 0.1},
		}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scenekit_objects_live",
			Help: "Objects owned by the object manager",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scenekit_objects_pending_destroy",
			Help: "Objects waiting for the end-of-frame destroy flush",
		}),
	}
	m.registry.MustRegister(m.events, m.transitions, m.frame, m.live, m.pending)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// OnEvent counts lifecycle events by kind.
func (m *Metrics) OnEvent(ev entity.EventContext) {
	m.events.WithLabelValues(ev.Kind.String()).Inc()
}

// ObserveObjects records the object manager's live and queued counts. It is
// called from the game loop; scrapes only read the gauges.
func (m *Metrics) ObserveObjects(live, pending int) {
	m.live.Set(float64(live))
	m.pending.Set(float64(pending))
}

// SceneActivated counts a scene becoming current.
func (m *Metrics) SceneActivated(scene string) {
	m.transitions.WithLabelValues(scene).Inc()
}

// ObserveFrame records the duration of one update step.
func (m *Metrics) ObserveFrame(d time.Duration) {
	m.frame.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}

// Serve runs the metrics endpoint until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics endpoint listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down metrics server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
