// Package observability exports renderer activity as Prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/tether/pkg/proxy"
)

const namespace = "tether"

// Metrics implements vdom.Metrics with Prometheus collectors.
type Metrics struct {
	patches  prometheus.Counter
	duration prometheus.Histogram
	nodes    prometheus.Counter
	proxies  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. When
// proxies is non-nil, a gauge reports how many handles it retains.
func NewMetrics(reg prometheus.Registerer, proxies *proxy.Registry) (*Metrics, error) {
	m := &Metrics{
		patches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patches_total",
			Help:      "Total number of completed patches.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "patch_duration_seconds",
			Help:      "Time spent building and attaching a tree.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_created_total",
			Help:      "Total number of host nodes created by patches.",
		}),
		proxies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proxies_created_total",
			Help:      "Total number of event handler proxies created.",
		}),
	}

	collectors := []prometheus.Collector{m.patches, m.duration, m.nodes, m.proxies}
	if proxies != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "proxies_retained",
			Help:      "Number of proxies currently kept alive by the registry.",
		}, func() float64 {
			return float64(proxies.Len())
		}))
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObservePatch records a completed patch.
func (m *Metrics) ObservePatch(d time.Duration, nodes int) {
	m.patches.Inc()
	m.duration.Observe(d.Seconds())
	m.nodes.Add(float64(nodes))
}

// ObserveProxy records a proxy created for a raw callback.
func (m *Metrics) ObserveProxy() {
	m.proxies.Inc()
}
