// Package telemetry exports tick loop counters to Prometheus.
package telemetry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/strafe/internal/combat"
)

const namespace = "strafe"

// Metrics holds the collectors updated once per committed tick.
type Metrics struct {
	ticks       prometheus.Counter
	tickErrors  prometheus.Counter
	shots       *prometheus.CounterVec
	projectiles prometheus.Counter
	retired     prometheus.Counter
	aimMisses   prometheus.Counter
	live        prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Committed simulation ticks.",
		}),
		tickErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tick_errors_total",
			Help:      "Ticks aborted by an internal invariant violation.",
		}),
		shots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shots_total",
			Help:      "Trigger pulls that emitted projectiles, by weapon.",
		}, []string{"weapon"}),
		projectiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projectiles_spawned_total",
			Help:      "Projectiles created by spawn strategies.",
		}),
		retired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projectiles_retired_total",
			Help:      "Projectiles removed after reaching their travel limit.",
		}),
		aimMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aim_retained_total",
			Help:      "Actor ticks that kept the previous barrel pose.",
		}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "projectiles_live",
			Help:      "Projectiles in flight after the last tick.",
		}),
	}

	reg.MustRegister(m.ticks, m.tickErrors, m.shots, m.projectiles, m.retired, m.aimMisses, m.live)
	return m
}

// Observe records one committed tick.
func (m *Metrics) Observe(r combat.StepResult) {
	m.ticks.Inc()
	for _, s := range r.Shots {
		m.shots.WithLabelValues(s.Weapon).Inc()
	}
	m.projectiles.Add(float64(r.Spawned()))
	m.retired.Add(float64(len(r.Retired)))
	m.aimMisses.Add(float64(len(r.AimMisses)))
	m.live.Set(float64(r.Live))
}

// TickFailed records an aborted tick.
func (m *Metrics) TickFailed() {
	m.tickErrors.Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
