package metrics

import "github.com/prometheus/client_golang/prometheus"

// busCollector reads bus statistics at scrape time.
type busCollector struct {
	source StatsSource

	emitted  *prometheus.Desc
	queued   *prometheus.Desc
	dropped  *prometheus.Desc
	executed *prometheus.Desc
	errors   *prometheus.Desc
	panics   *prometheus.Desc
	active   *prometheus.Desc
}

func newBusCollector(source StatsSource) *busCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "bus", name), help, nil, nil)
	}
	return &busCollector{
		source:   source,
		emitted:  desc("events_emitted_total", "Events dispatched."),
		queued:   desc("events_queued_total", "Events emitted during dispatch and deferred."),
		dropped:  desc("events_dropped_total", "Queued events dropped on cancellation."),
		executed: desc("handlers_executed_total", "Handler invocations."),
		errors:   desc("handler_errors_total", "Handlers that returned an error."),
		panics:   desc("handler_panics_total", "Handlers that panicked."),
		active:   desc("subscribers", "Active subscriptions."),
	}
}

func (c *busCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{c.emitted, c.queued, c.dropped, c.executed, c.errors, c.panics, c.active} {
		ch <- d
	}
}

func (c *busCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	counter(c.emitted, s.EventsEmitted)
	counter(c.queued, s.EventsQueued)
	counter(c.dropped, s.EventsDropped)
	counter(c.executed, s.HandlersExecuted)
	counter(c.errors, s.HandlerErrors)
	counter(c.panics, s.HandlerPanics)
	ch <- prometheus.MustNewConstMetric(c.active, prometheus.GaugeValue, float64(s.ActiveSubscribers))
}
