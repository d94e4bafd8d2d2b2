package precompute

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	kindTriple = "triple"
	kindUnit   = "two_triples_and_a_quadruple"
)

var (
	// Metrics holds every precompute collector, the CLI exposes it over http.
	Metrics = prometheus.NewRegistry()

	// QueueSize (Precompute) how many items are buffered
	QueueSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "precompute_queue_size",
		Help: "Number of precomputed items waiting to be used",
	}, []string{"kind"})
	// Produced (Precompute) how many items the worker has made
	Produced = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "precompute_produced_total",
		Help: "Number of precomputed items produced",
	}, []string{"kind"})
	// Pops (Precompute) how many pops were served or found the queue empty
	Pops = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "precompute_pop_total",
		Help: "Number of requests for a precomputed item, by result",
	}, []string{"kind", "result"})

	bindOnce sync.Once
)

func bindMetrics() {
	bindOnce.Do(func() {
		for _, c := range []prometheus.Collector{QueueSize, Produced, Pops} {
			Metrics.MustRegister(c)
		}
	})
}

func init() {
	bindMetrics()
}
