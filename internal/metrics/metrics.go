// Package metrics exposes storefront metrics to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/store"
)

const namespace = "storefront"

// StatsSource provides event bus statistics.
type StatsSource interface {
	Stats() event.Stats
}

// Metrics owns the storefront's collectors and their registry.
type Metrics struct {
	registry *prometheus.Registry

	orders      *prometheus.CounterVec
	basketItems prometheus.Gauge
	basketTotal prometheus.Gauge
	apiLatency  *prometheus.HistogramVec
}

// New creates the collectors and registers them, along with a collector
// for bus statistics when bus is not nil.
func New(bus StatsSource) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Order submissions by result.",
		}, []string{"result"}),
		basketItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "basket_items",
			Help:      "Entries currently in the basket.",
		}),
		basketTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "basket_total",
			Help:      "Sum of basket prices.",
		}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Remote API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "outcome"}),
	}

	m.registry.MustRegister(m.orders, m.basketItems, m.basketTotal, m.apiLatency)
	if bus != nil {
		m.registry.MustRegister(newBusCollector(bus))
	}
	return m
}

// Registry returns the registry backing the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one remote API call.
func (m *Metrics) ObserveRequest(op string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.apiLatency.WithLabelValues(op, outcome).Observe(d.Seconds())
}

// Subscribe keeps the basket and order metrics current from bus notifications.
func (m *Metrics) Subscribe(bus event.Subscriber) ([]event.Subscription, error) {
	handlers := []struct {
		sel event.Selector
		h   event.Handler
	}{
		{event.Exact(store.TopicBasketChanged), event.Typed(func(_ context.Context, basket []store.BasketEntry) error {
			m.basketItems.Set(float64(len(basket)))
			total, _ := store.Sum(basket).Float64()
			m.basketTotal.Set(total)
			return nil
		})},
		{event.Exact(store.TopicOrderSubmitted), event.HandlerFunc(func(context.Context, event.Event) error {
			m.orders.WithLabelValues("submitted").Inc()
			return nil
		})},
		{event.Exact(store.TopicOrderFailed), event.HandlerFunc(func(context.Context, event.Event) error {
			m.orders.WithLabelValues("failed").Inc()
			return nil
		})},
	}

	subs := make([]event.Subscription, 0, len(handlers))
	for _, h := range handlers {
		sub, err := bus.Subscribe(h.sel, h.h)
		if err != nil {
			return subs, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// Serve exposes Handler on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logger.Info("metrics listening", zap.String("addr", addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
