package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return metrics{
		hits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "object_cache_hits_total",
				Help: "Number of hits for a cache lookup.",
			},
			[]string{"scheme"},
		),
		misses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "object_cache_misses_total",
				Help: "Number of misses for a cache lookup.",
			},
			[]string{"scheme"},
		),
	}
}
